package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/workmate-hq/attendance-backend-go/internal/config"
	appHTTP "github.com/workmate-hq/attendance-backend-go/internal/handler/http"
	"github.com/workmate-hq/attendance-backend-go/internal/pkg/cron"
	"github.com/workmate-hq/attendance-backend-go/internal/pkg/database"
	"github.com/workmate-hq/attendance-backend-go/internal/pkg/holiday"
	"github.com/workmate-hq/attendance-backend-go/internal/pkg/jwt"
	"github.com/workmate-hq/attendance-backend-go/internal/repository/postgresql"
	authService "github.com/workmate-hq/attendance-backend-go/internal/service/auth"
	companyService "github.com/workmate-hq/attendance-backend-go/internal/service/company"
	leaveService "github.com/workmate-hq/attendance-backend-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	holidayClient := holiday.NewClient(cfg.Holiday.BaseURL, holiday.NewMemoryCache(), logger)

	consumptionCalculator := leaveService.NewConsumptionCalculator(holidayClient)
	requestService := leaveService.NewRequestService(leaveRequestRepo, userRepo, companyRepo, consumptionCalculator, postgresql.NewTransactor(db), logger)
	balanceService := leaveService.NewBalanceService(userRepo, logger)
	companySvc := companyService.NewCompanyService(companyRepo, logger)
	authSvc := authService.NewAuthService(userRepo, jwtService)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	leaveHandler := appHTTP.NewLeaveHandler(requestService, balanceService)
	companyHandler := appHTTP.NewCompanyHandler(companySvc)

	router := appHTTP.NewRouter(jwtService, cfg.App.FrontendURL, cfg.App.Env, authHandler, leaveHandler, companyHandler)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("entitlement-recompute", 24*time.Hour, balanceService.RecomputeEntitlements)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		slog.Info("server listening", "addr", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	_ = server.Close()
}
