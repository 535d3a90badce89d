package auth

import "context"

type AuthService interface {
	// Register creates a new user account and issues a token pair
	Register(ctx context.Context, req RegisterRequest, session SessionTrackingRequest) (AuthResponse, error)

	// Login verifies credentials and issues a token pair
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (AuthResponse, error)

	// LoginWithGoogle issues a token pair for a verified Google
	// identity, creating the account on first sign-in
	LoginWithGoogle(ctx context.Context, email string, googleID string, session SessionTrackingRequest) (TokenResponse, error)

	// Refresh exchanges a valid refresh token for a new access token
	Refresh(ctx context.Context, refreshToken string) (AccessTokenResponse, error)

	// Logout revokes the refresh token
	Logout(ctx context.Context, refreshToken string) error

	// Me returns the authenticated user's profile
	Me(ctx context.Context) (UserResponse, error)

	// UpdateProfile updates the caller's name and/or email
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (UserResponse, error)
}
