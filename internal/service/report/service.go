package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/personnel-hq/personnel-backend-go/internal/domain/report"
)

type service struct {
	repo report.Repository
}

func NewService(repo report.Repository) report.Service {
	return &service{repo: repo}
}

func (s *service) MonthlyTimesheet(ctx context.Context, req report.MonthlyTimesheetRequest) ([]report.TimesheetRow, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	monthStart, _ := time.Parse("2006-01", req.Month)
	monthEnd := monthStart.AddDate(0, 1, 0)

	sessions, err := s.repo.GetClosedSessions(ctx, monthStart, monthEnd, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	return Aggregate(sessions), nil
}

type dayKey struct {
	username string
	date     string
}

// Aggregate sums session durations into per-(employee, date) hour totals.
// Sessions are attributed to the date they started on. Negative durations
// count as zero.
func Aggregate(sessions []report.SessionSlice) []report.TimesheetRow {
	totals := make(map[dayKey]int64)
	for _, s := range sessions {
		secs := int64(s.EndTime.Sub(s.StartTime).Seconds())
		if secs < 0 {
			secs = 0
		}
		key := dayKey{username: s.Username, date: s.StartTime.Format("2006-01-02")}
		totals[key] += secs
	}

	rows := make([]report.TimesheetRow, 0, len(totals))
	for key, secs := range totals {
		rows = append(rows, report.TimesheetRow{
			Username: key.username,
			Date:     key.date,
			Hours:    math.Round(float64(secs)/3600*100) / 100,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Username != rows[j].Username {
			return rows[i].Username < rows[j].Username
		}
		return rows[i].Date < rows[j].Date
	})

	return rows
}

func (s *service) WriteCSV(w io.Writer, rows []report.TimesheetRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"username", "date", "hours"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.Username, row.Date, FormatHours(row.Hours)}); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// FormatHours renders hours with up to two decimal places, keeping at least
// one: 3.5 -> "3.5", 1 -> "1.0", 7.25 -> "7.25".
func FormatHours(hours float64) string {
	s := strconv.FormatFloat(hours, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}
