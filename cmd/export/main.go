package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/personnel-hq/personnel-backend-go/internal/config"
	"github.com/personnel-hq/personnel-backend-go/internal/domain/report"
	"github.com/personnel-hq/personnel-backend-go/internal/pkg/database"
	"github.com/personnel-hq/personnel-backend-go/internal/repository/postgresql"
	reportService "github.com/personnel-hq/personnel-backend-go/internal/service/report"
)

// Exports the monthly timesheet CSV without going through the HTTP API.
func main() {
	var (
		month    = flag.String("month", "", "month to export (YYYY-MM)")
		username = flag.String("user", "", "restrict the export to one employee username")
		out      = flag.String("out", "", "output file (defaults to stdout)")
	)
	flag.Parse()

	if *month == "" {
		log.Fatal("-month is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	svc := reportService.NewService(postgresql.NewReportRepository(db))

	req := report.MonthlyTimesheetRequest{Month: *month}
	if *username != "" {
		req.Username = username
	}

	rows, err := svc.MonthlyTimesheet(context.Background(), req)
	if err != nil {
		log.Fatalf("failed to build timesheet: %v", err)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("failed to create %s: %v", *out, err)
		}
		defer f.Close()
		w = f
	}

	if err := svc.WriteCSV(w, rows); err != nil {
		log.Fatalf("failed to write csv: %v", err)
	}
}
