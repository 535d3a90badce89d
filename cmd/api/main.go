package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/staffdeck/attendance-backend-go/internal/config"
	appHTTP "github.com/staffdeck/attendance-backend-go/internal/handler/http"
	"github.com/staffdeck/attendance-backend-go/internal/pkg/database"
	"github.com/staffdeck/attendance-backend-go/internal/pkg/jwt"
	"github.com/staffdeck/attendance-backend-go/internal/pkg/oauth"
	"github.com/staffdeck/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/staffdeck/attendance-backend-go/internal/service/attendance"
	authService "github.com/staffdeck/attendance-backend-go/internal/service/auth"
	leaveService "github.com/staffdeck/attendance-backend-go/internal/service/leave"
	reportService "github.com/staffdeck/attendance-backend-go/internal/service/report"
	"github.com/staffdeck/attendance-backend-go/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	dsn := cfg.DatabaseURL()
	if err := database.Migrate(context.Background(), dsn, migrations.FS); err != nil {
		log.Fatal("Error running migrations: ", err)
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	authSvc := authService.NewAuthService(db, userRepo, jwtService, refreshTokenRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo)
	reportSvc := reportService.NewReportService(attendanceRepo, leaveRequestRepo, userRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{Env: cfg.App.Env, FrontendURL: cfg.App.FrontendURL},
		jwtService,
		authHandler,
		attendanceHandler,
		leaveHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
