package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fichaje.app/fichaje/core/models"
)

type fakeLogStore struct {
	logs    []models.ClockLog
	entries []models.TimeEntry
}

func (f *fakeLogStore) CreateClockLogs(_ context.Context, logs []models.ClockLog) error {
	f.logs = append(f.logs, logs...)
	return nil
}

func (f *fakeLogStore) ListClockLogs(_ context.Context, companyID string) ([]models.ClockLog, error) {
	var out []models.ClockLog
	for _, l := range f.logs {
		if l.CompanyID == companyID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLogStore) CreateTimeEntry(_ context.Context, entry *models.TimeEntry) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func TestRunPairsLogsIntoTimeEntries(t *testing.T) {
	base := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	st := &fakeLogStore{logs: []models.ClockLog{
		{ID: "1", EmployeeID: "ana", CompanyID: "c1", Kind: models.KindEntrada, Timestamp: base},
		{ID: "2", EmployeeID: "ana", CompanyID: "c1", Kind: models.KindSalida, Timestamp: base.Add(8 * time.Hour)},
		{ID: "3", EmployeeID: "ben", CompanyID: "c1", Kind: models.KindEntrada, Timestamp: base.Add(time.Hour)},
	}}

	require.NoError(t, Run(context.Background(), st, "c1"))
	require.Len(t, st.entries, 2)

	byEmployee := map[string]models.TimeEntry{}
	for _, e := range st.entries {
		byEmployee[e.EmployeeID] = e
	}

	ana := byEmployee["ana"]
	require.NotNil(t, ana.EndTime)
	assert.Equal(t, base, ana.StartTime)
	assert.Equal(t, base.Add(8*time.Hour), *ana.EndTime)

	// ben never clocked out: the migrated entry stays open
	ben := byEmployee["ben"]
	assert.Nil(t, ben.EndTime)
	assert.Equal(t, "c1", ben.CompanyID)
	assert.Equal(t, models.SourceAutomatic, ben.Source)
}
