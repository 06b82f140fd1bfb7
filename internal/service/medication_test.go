package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aarogyavani/companion/internal/store"
	"github.com/aarogyavani/companion/pkg/model"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestFrequency_Times(t *testing.T) {
	tests := []struct {
		name       string
		frequency  Frequency
		customTime string
		expected   []string
		wantErr    bool
	}{
		{
			name:      "once daily",
			frequency: FreqOnceDaily,
			expected:  []string{"08:00"},
		},
		{
			name:      "twice daily",
			frequency: FreqTwiceDaily,
			expected:  []string{"08:00", "20:00"},
		},
		{
			name:      "three times daily",
			frequency: FreqThreeTimesDaily,
			expected:  []string{"08:00", "14:00", "20:00"},
		},
		{
			name:       "custom",
			frequency:  FreqCustom,
			customTime: "09:30",
			expected:   []string{"09:30"},
		},
		{
			name:       "custom with invalid time",
			frequency:  FreqCustom,
			customTime: "25:99",
			wantErr:    true,
		},
		{
			name:       "custom with empty time",
			frequency:  FreqCustom,
			customTime: "",
			wantErr:    true,
		},
		{
			name:      "unknown frequency",
			frequency: Frequency("hourly"),
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			times, err := tt.frequency.Times(tt.customTime)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, times)
		})
	}
}

func TestAddMedication_Defaults(t *testing.T) {
	svc := NewMedicationService(newTestStore(t), zap.NewNop())

	med, err := svc.Add(AddMedicationParams{
		Name:      "  Metformin  ",
		Frequency: FreqTwiceDaily,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, med.ID)
	assert.Equal(t, "Metformin", med.Name)
	assert.Equal(t, "1 tablet", med.Dosage)
	assert.Equal(t, "en-US", med.Language)
	assert.Equal(t, []string{"08:00", "20:00"}, med.Times)
	assert.Nil(t, med.Notes)
}

func TestAddMedication_ValidationErrors(t *testing.T) {
	svc := NewMedicationService(newTestStore(t), zap.NewNop())

	tests := []struct {
		name   string
		params AddMedicationParams
	}{
		{
			name:   "empty name",
			params: AddMedicationParams{Frequency: FreqOnceDaily},
		},
		{
			name:   "whitespace name",
			params: AddMedicationParams{Name: "   ", Frequency: FreqOnceDaily},
		},
		{
			name:   "bad custom time",
			params: AddMedicationParams{Name: "Aspirin", Frequency: FreqCustom, CustomTime: "8am"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(tt.params)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	assert.Empty(t, svc.List(), "failed adds must not persist anything")
}

func TestAddMedication_PersistsAcrossServices(t *testing.T) {
	st := newTestStore(t)

	first := NewMedicationService(st, zap.NewNop())
	_, err := first.Add(AddMedicationParams{Name: "Aspirin", Frequency: FreqOnceDaily})
	require.NoError(t, err)

	second := NewMedicationService(st, zap.NewNop())
	meds := second.List()
	require.Len(t, meds, 1)
	assert.Equal(t, "Aspirin", meds[0].Name)
}

func TestDeleteMedication(t *testing.T) {
	svc := NewMedicationService(newTestStore(t), zap.NewNop())

	a, err := svc.Add(AddMedicationParams{Name: "A", Frequency: FreqOnceDaily})
	require.NoError(t, err)
	b, err := svc.Add(AddMedicationParams{Name: "B", Frequency: FreqOnceDaily})
	require.NoError(t, err)

	svc.Delete(a.ID)

	meds := svc.List()
	require.Len(t, meds, 1)
	assert.Equal(t, b.ID, meds[0].ID)

	// Deleting an absent id is a no-op.
	svc.Delete("no-such-id")
	assert.Len(t, svc.List(), 1)
}

func TestLogDose_UpsertsOnSameSlot(t *testing.T) {
	svc := NewMedicationService(newTestStore(t), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 8, 5, 0, 0, time.UTC) }

	med, err := svc.Add(AddMedicationParams{Name: "Aspirin", Frequency: FreqOnceDaily})
	require.NoError(t, err)

	require.NoError(t, svc.LogDose(*med, "08:00", model.DoseTaken))
	require.NoError(t, svc.LogDose(*med, "08:00", model.DoseSkipped))

	logs := svc.Logs()
	require.Len(t, logs, 1, "second confirmation for the same slot must replace, not append")
	assert.Equal(t, model.DoseSkipped, logs[0].Status)
	assert.Equal(t, "2026-03-14", logs[0].Date)
	assert.Equal(t, "Aspirin", logs[0].MedicationName)
}

func TestLogDose_RejectsInvalidInput(t *testing.T) {
	svc := NewMedicationService(newTestStore(t), zap.NewNop())

	med, err := svc.Add(AddMedicationParams{Name: "Aspirin", Frequency: FreqOnceDaily})
	require.NoError(t, err)

	err = svc.LogDose(*med, "08:00", model.DoseStatus("forgotten"))
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.LogDose(*med, "13:00", model.DoseTaken)
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, svc.Logs())
}

func TestLogFor(t *testing.T) {
	svc := NewMedicationService(newTestStore(t), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 8, 5, 0, 0, time.UTC) }

	med, err := svc.Add(AddMedicationParams{Name: "Aspirin", Frequency: FreqTwiceDaily})
	require.NoError(t, err)
	require.NoError(t, svc.LogDose(*med, "08:00", model.DoseTaken))

	found := svc.LogFor(med.ID, "2026-03-14", "08:00")
	require.NotNil(t, found)
	assert.Equal(t, model.DoseTaken, found.Status)

	assert.Nil(t, svc.LogFor(med.ID, "2026-03-14", "20:00"))
	assert.Nil(t, svc.LogFor(med.ID, "2026-03-15", "08:00"))
	assert.Nil(t, svc.LogFor("other-med", "2026-03-14", "08:00"))
}

func TestRecentLogs_MostRecentFirst(t *testing.T) {
	svc := NewMedicationService(newTestStore(t), zap.NewNop())

	clock := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	med, err := svc.Add(AddMedicationParams{Name: "Aspirin", Frequency: FreqThreeTimesDaily})
	require.NoError(t, err)

	require.NoError(t, svc.LogDose(*med, "08:00", model.DoseTaken))
	clock = clock.Add(6 * time.Hour)
	require.NoError(t, svc.LogDose(*med, "14:00", model.DoseSkipped))
	clock = clock.Add(6 * time.Hour)
	require.NoError(t, svc.LogDose(*med, "20:00", model.DoseTaken))

	recent := svc.RecentLogs(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "20:00", recent[0].Time)
	assert.Equal(t, "14:00", recent[1].Time)
}

func TestTotalDosesPerDay(t *testing.T) {
	svc := NewMedicationService(newTestStore(t), zap.NewNop())

	assert.Equal(t, 0, svc.TotalDosesPerDay())

	_, err := svc.Add(AddMedicationParams{Name: "A", Frequency: FreqOnceDaily})
	require.NoError(t, err)
	_, err = svc.Add(AddMedicationParams{Name: "B", Frequency: FreqThreeTimesDaily})
	require.NoError(t, err)

	assert.Equal(t, 4, svc.TotalDosesPerDay())
}
