package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/personnel-hq/personnel-backend-go/internal/config"
	appHTTP "github.com/personnel-hq/personnel-backend-go/internal/handler/http"
	"github.com/personnel-hq/personnel-backend-go/internal/pkg/clock"
	"github.com/personnel-hq/personnel-backend-go/internal/pkg/database"
	"github.com/personnel-hq/personnel-backend-go/internal/pkg/sse"
	"github.com/personnel-hq/personnel-backend-go/internal/repository/postgresql"
	directoryService "github.com/personnel-hq/personnel-backend-go/internal/service/directory"
	leaveService "github.com/personnel-hq/personnel-backend-go/internal/service/leave"
	notificationService "github.com/personnel-hq/personnel-backend-go/internal/service/notification"
	presenceService "github.com/personnel-hq/personnel-backend-go/internal/service/presence"
	reportService "github.com/personnel-hq/personnel-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	sessionRepo := postgresql.NewSessionRepository(db)
	timeEntryRepo := postgresql.NewTimeEntryRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	txManager := postgresql.NewTxManager(db)
	clk := clock.System()
	hub := sse.NewHub()
	tokenAuth := jwtauth.New("HS256", []byte(cfg.JWT.Secret), nil)

	notifSvc := notificationService.NewService(notificationRepo, employeeRepo, hub, nil)
	directorySvc := directoryService.NewService(employeeRepo)
	presenceSvc := presenceService.NewService(sessionRepo, timeEntryRepo, employeeRepo, notifSvc, txManager, clk, nil)
	leaveSvc := leaveService.NewService(leaveRequestRepo, employeeRepo, directorySvc, notifSvc, txManager, clk, nil)
	reportSvc := reportService.NewService(reportRepo)

	presenceHandler := appHTTP.NewPresenceHandler(presenceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notifSvc, hub)
	directoryHandler := appHTTP.NewDirectoryHandler(directorySvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		cfg,
		tokenAuth,
		presenceHandler,
		leaveHandler,
		notificationHandler,
		directoryHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
