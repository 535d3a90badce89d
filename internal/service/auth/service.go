package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffdeck/attendance-backend-go/internal/domain/auth"
	"github.com/staffdeck/attendance-backend-go/internal/domain/user"
	"github.com/staffdeck/attendance-backend-go/internal/pkg/database"
	"github.com/staffdeck/attendance-backend-go/internal/pkg/jwt"
	"github.com/staffdeck/attendance-backend-go/internal/repository/postgresql"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	jwt.Service
	postgresql.RefreshTokenRepository
}

func NewAuthService(db *database.DB, userRepository user.UserRepository, jwtService jwt.Service, refreshTokenRepository postgresql.RefreshTokenRepository) auth.AuthService {
	return &AuthServiceImpl{
		db:                     db,
		UserRepository:         userRepository,
		Service:                jwtService,
		RefreshTokenRepository: refreshTokenRepository,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func toUserResponse(u user.User) auth.UserResponse {
	return auth.UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		Department: u.Department,
		JoinDate:   u.JoinDate.Format("2006-01-02"),
	}
}

// issueTokens generates an access/refresh pair and persists the
// refresh token inside a transaction.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse

	err := postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		err = a.CreateRefreshToken(txCtx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, sessionReq)
		if err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, registerReq auth.RegisterRequest, sessionReq auth.SessionTrackingRequest) (auth.AuthResponse, error) {
	if err := registerReq.Validate(); err != nil {
		return auth.AuthResponse{}, err
	}

	exists, err := a.UserRepository.ExistsByEmail(ctx, registerReq.Email)
	if err != nil {
		return auth.AuthResponse{}, fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return auth.AuthResponse{}, user.ErrEmailExists
	}

	hashedPassword, err := a.hashPassword(registerReq.Password)
	if err != nil {
		return auth.AuthResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return auth.AuthResponse{}, fmt.Errorf("failed to generate user id: %w", err)
	}

	joinDate, err := time.Parse("2006-01-02", registerReq.JoinDate)
	if err != nil {
		return auth.AuthResponse{}, fmt.Errorf("failed to parse join date: %w", err)
	}

	newUser, err := a.UserRepository.Create(ctx, user.User{
		ID:           id.String(),
		Name:         registerReq.Name,
		Email:        registerReq.Email,
		PasswordHash: &hashedPassword,
		Role:         user.Role(strings.ToLower(registerReq.Role)),
		Department:   registerReq.Department,
		JoinDate:     joinDate,
	})
	if err != nil {
		return auth.AuthResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	tokenResponse, err := a.issueTokens(ctx, newUser, sessionReq)
	if err != nil {
		return auth.AuthResponse{}, err
	}

	return auth.AuthResponse{Token: tokenResponse, User: toUserResponse(newUser)}, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, sessionReq auth.SessionTrackingRequest) (auth.AuthResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.AuthResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AuthResponse{}, auth.ErrInvalidCredentials
		}
		return auth.AuthResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.AuthResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.AuthResponse{}, auth.ErrInvalidCredentials
	}

	tokenResponse, err := a.issueTokens(ctx, userData, sessionReq)
	if err != nil {
		return auth.AuthResponse{}, err
	}

	return auth.AuthResponse{Token: tokenResponse, User: toUserResponse(userData)}, nil
}

// LoginWithGoogle implements auth.AuthService. A first-time Google
// sign-in creates an employee account without a password.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, googleEmail string, googleID string, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, googleEmail)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, fmt.Errorf("failed to get user data by email: %w", err)
		}

		id, idErr := uuid.NewV7()
		if idErr != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to generate user id: %w", idErr)
		}

		provider := "google"
		now := time.Now()
		userData, err = a.UserRepository.Create(ctx, user.User{
			ID:              id.String(),
			Name:            googleEmail[:strings.Index(googleEmail, "@")],
			Email:           googleEmail,
			Role:            user.RoleEmployee,
			Department:      "unassigned",
			JoinDate:        time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
			OAuthProvider:   &provider,
			OAuthProviderID: &googleID,
		})
		if err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to create user: %w", err)
		}
	}

	if userData.OAuthProvider == nil || userData.OAuthProviderID == nil {
		userData, err = a.UserRepository.LinkGoogleAccount(ctx, googleID, userData.Email)
		if err != nil {
			return auth.TokenResponse{}, err
		}
	}

	return a.issueTokens(ctx, userData, sessionReq)
}

// Refresh implements auth.AuthService.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.AccessTokenResponse, error) {
	var accessTokenResponse auth.AccessTokenResponse

	userID, err := a.Service.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	isRevoked, err := a.RefreshTokenRepository.IsRefreshTokenRevoked(ctx, refreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if isRevoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.AccessTokenResponse{}, user.ErrUserNotFound
	}

	accessTokenResponse.AccessToken, accessTokenResponse.AccessTokenExpiresIn, err =
		a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessTokenResponse, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	return postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		isRevoked, err := a.RefreshTokenRepository.IsRefreshTokenRevoked(txCtx, refreshToken)
		if err != nil {
			return fmt.Errorf("failed to check if refresh token is revoked: %w", err)
		}
		if !isRevoked {
			if err := a.RefreshTokenRepository.RevokeRefreshToken(txCtx, refreshToken); err != nil {
				return fmt.Errorf("failed to revoke refresh token: %w", err)
			}
		}
		return nil
	})
}

// callerID extracts the authenticated user id from the JWT claims.
func callerID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (auth.UserResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return auth.UserResponse{}, err
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.UserResponse{}, err
	}

	return toUserResponse(userData), nil
}

// UpdateProfile implements auth.AuthService.
func (a *AuthServiceImpl) UpdateProfile(ctx context.Context, req auth.UpdateProfileRequest) (auth.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.UserResponse{}, err
	}

	userID, err := callerID(ctx)
	if err != nil {
		return auth.UserResponse{}, err
	}

	if req.Email != nil {
		existing, err := a.UserRepository.GetByEmail(ctx, *req.Email)
		if err != nil && !errors.Is(err, user.ErrUserNotFound) {
			return auth.UserResponse{}, fmt.Errorf("failed to check email availability: %w", err)
		}
		if err == nil && existing.ID != userID {
			return auth.UserResponse{}, user.ErrEmailExists
		}
	}

	updated, err := a.UserRepository.UpdateProfile(ctx, userID, req.Name, req.Email)
	if err != nil {
		return auth.UserResponse{}, err
	}

	return toUserResponse(updated), nil
}
