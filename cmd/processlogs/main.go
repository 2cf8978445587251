package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"fichaje.app/fichaje/config"
	"fichaje.app/fichaje/core"
	"fichaje.app/fichaje/core/models"
	"fichaje.app/fichaje/shifts"
	"fichaje.app/fichaje/store"
	"fichaje.app/fichaje/utils"
)

// logStore is the slice of the store this migration needs.
type logStore interface {
	CreateClockLogs(ctx context.Context, logs []models.ClockLog) error
	ListClockLogs(ctx context.Context, companyID string) ([]models.ClockLog, error)
	CreateTimeEntry(ctx context.Context, entry *models.TimeEntry) error
}

// One-shot migration of the legacy append-only log into unified time entries.
// With -csv it first imports a sheet export into clock_logs, then it pairs
// the ENTRADA/SALIDA rows and writes one time entry per reconstructed shift.
func main() {
	csvPath := flag.String("csv", "", "Legacy sheet export to import into clock_logs first (employee_id,kind,timestamp)")
	companyID := flag.String("company", os.Getenv("FICHAJE_COMPANY_ID"), "Company id to process")
	flag.Parse()

	if *companyID == "" {
		fmt.Println("missing -company (or FICHAJE_COMPANY_ID)")
		os.Exit(1)
	}

	dsn := os.Getenv("DSN")
	if dsn == "" {
		dsn = "root:development@tcp(localhost:3306)/fichaje?parseTime=true"
	}

	dm, err := core.New(dsn, 5)
	if err != nil {
		fmt.Printf("Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer dm.Close()

	ctx := context.Background()
	st := store.New(dm)

	if *csvPath != "" {
		n, err := importCSV(ctx, st, *csvPath, *companyID)
		if err != nil {
			fmt.Printf("Error importing %s: %v\n", *csvPath, err)
			os.Exit(1)
		}
		fmt.Printf("Imported %d log rows from %s\n", n, *csvPath)
	}

	if err := Run(ctx, st, *companyID); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func importCSV(ctx context.Context, st logStore, path, companyID string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	rows, err := utils.ParseCSV(f)
	if err != nil {
		return 0, fmt.Errorf("parse csv: %w", err)
	}

	var logs []models.ClockLog
	for i, row := range rows {
		if len(row) < 3 {
			fmt.Printf("Warning: row %d has %d columns, skipping\n", i+1, len(row))
			continue
		}
		if i == 0 && row[1] == "kind" {
			continue // header
		}
		kind := row[1]
		if kind != models.KindEntrada && kind != models.KindSalida {
			fmt.Printf("Warning: row %d has unknown kind %q, skipping\n", i+1, kind)
			continue
		}
		ts, err := utils.ParseISOTime(row[2])
		if err != nil {
			fmt.Printf("Warning: row %d: %v, skipping\n", i+1, err)
			continue
		}
		logs = append(logs, models.ClockLog{
			ID:         uuid.NewString(),
			EmployeeID: row[0],
			CompanyID:  companyID,
			Kind:       kind,
			Timestamp:  *ts,
			Source:     models.SourceAutomatic,
		})
	}

	if err := st.CreateClockLogs(ctx, logs); err != nil {
		return 0, err
	}
	return len(logs), nil
}

func Run(ctx context.Context, st logStore, companyID string) error {
	logs, err := st.ListClockLogs(ctx, companyID)
	if err != nil {
		return fmt.Errorf("failed to fetch clock logs: %w", err)
	}
	fmt.Printf("Fetched %d log rows\n", len(logs))

	policy := shifts.Policy{MaxShiftDuration: config.DefaultRules().MaxShiftDuration()}
	rebuilt := shifts.RebuildFromLogs(logs, nil, policy, time.Now())

	fmt.Printf("Saving %d time entries...\n", len(rebuilt))
	for _, s := range rebuilt {
		entry := models.TimeEntry{
			ID:         uuid.NewString(),
			EmployeeID: s.EmployeeID,
			CompanyID:  companyID,
			StartTime:  s.Entry,
			EndTime:    s.Exit,
			Source:     models.SourceAutomatic,
		}
		if err := st.CreateTimeEntry(ctx, &entry); err != nil {
			return fmt.Errorf("failed to save time entry: %w", err)
		}
	}

	fmt.Println("Done.")
	return nil
}
