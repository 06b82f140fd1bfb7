package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aarogyavani/companion/internal/store"
	"github.com/aarogyavani/companion/pkg/model"
)

// Frequency is a closed set of dosing schedules resolved into reminder times.
type Frequency string

const (
	FreqOnceDaily       Frequency = "once_daily"
	FreqTwiceDaily      Frequency = "twice_daily"
	FreqThreeTimesDaily Frequency = "three_times_daily"
	FreqCustom          Frequency = "custom"
)

// Times resolves the frequency preset into the set of HH:MM reminder times.
// FreqCustom takes its single time from customTime.
func (f Frequency) Times(customTime string) ([]string, error) {
	switch f {
	case FreqOnceDaily:
		return []string{"08:00"}, nil
	case FreqTwiceDaily:
		return []string{"08:00", "20:00"}, nil
	case FreqThreeTimesDaily:
		return []string{"08:00", "14:00", "20:00"}, nil
	case FreqCustom:
		if _, err := time.Parse("15:04", customTime); err != nil {
			return nil, fmt.Errorf("%w: custom time must be HH:MM, got %q", ErrValidation, customTime)
		}
		return []string{customTime}, nil
	default:
		return nil, fmt.Errorf("%w: unknown frequency %q", ErrValidation, string(f))
	}
}

// MedicationService manages medications and their dose logs
type MedicationService struct {
	store  *store.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewMedicationService creates a new MedicationService
func NewMedicationService(st *store.Store, logger *zap.Logger) *MedicationService {
	return &MedicationService{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

// AddMedicationParams holds the user-entered fields for a new medication
type AddMedicationParams struct {
	Name       string
	Dosage     string
	Frequency  Frequency
	CustomTime string
	Notes      string
	Language   string
}

// Add validates the params, resolves the frequency preset into reminder
// times, and appends the medication to the persisted collection.
func (s *MedicationService) Add(p AddMedicationParams) (*model.Medication, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: medication name is required", ErrValidation)
	}

	times, err := p.Frequency.Times(p.CustomTime)
	if err != nil {
		return nil, err
	}

	dosage := strings.TrimSpace(p.Dosage)
	if dosage == "" {
		dosage = "1 tablet"
	}

	lang := p.Language
	if lang == "" {
		lang = "en-US"
	}

	med := model.Medication{
		ID:       uuid.New().String(),
		Name:     name,
		Dosage:   dosage,
		Times:    times,
		Language: lang,
	}
	if notes := strings.TrimSpace(p.Notes); notes != "" {
		med.Notes = &notes
	}

	meds := s.List()
	meds = append(meds, med)
	store.Save(s.store, store.KeyMedications, meds)

	s.logger.Info("medication added",
		zap.String("medication_id", med.ID),
		zap.String("name", med.Name),
		zap.Strings("times", med.Times),
	)

	return &med, nil
}

// Delete removes the medication by id. No-op if absent. Existing dose logs
// referencing the medication are kept; they carry a denormalized name.
func (s *MedicationService) Delete(id string) {
	meds := s.List()
	kept := meds[:0]
	for _, m := range meds {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(meds) {
		return
	}
	store.Save(s.store, store.KeyMedications, kept)

	s.logger.Info("medication deleted", zap.String("medication_id", id))
}

// List returns all medications in insertion order.
func (s *MedicationService) List() []model.Medication {
	return store.Load(s.store, store.KeyMedications, []model.Medication{})
}

// LogDose upserts a dose log for (medication, today, time). A second log for
// the same tuple replaces the first, so repeated confirmations never append.
func (s *MedicationService) LogDose(med model.Medication, doseTime string, status model.DoseStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown dose status %q", ErrValidation, string(status))
	}
	if !containsTime(med.Times, doseTime) {
		return fmt.Errorf("%w: %s is not a configured time for %s", ErrValidation, doseTime, med.Name)
	}

	today := s.today()
	entry := model.MedLog{
		ID:             uuid.New().String(),
		MedicationID:   med.ID,
		MedicationName: med.Name,
		Date:           today,
		Time:           doseTime,
		Status:         status,
		LoggedAt:       s.now().UnixMilli(),
	}

	logs := s.Logs()
	replaced := false
	for i, l := range logs {
		if l.MedicationID == med.ID && l.Date == today && l.Time == doseTime {
			logs[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		logs = append(logs, entry)
	}
	store.Save(s.store, store.KeyMedLogs, logs)

	s.logger.Info("dose logged",
		zap.String("medication_id", med.ID),
		zap.String("time", doseTime),
		zap.String("status", string(status)),
		zap.Bool("replaced", replaced),
	)

	return nil
}

// Logs returns all dose logs.
func (s *MedicationService) Logs() []model.MedLog {
	return store.Load(s.store, store.KeyMedLogs, []model.MedLog{})
}

// LogFor returns the log for (medicationID, date, time), or nil if none exists.
func (s *MedicationService) LogFor(medicationID, date, doseTime string) *model.MedLog {
	for _, l := range s.Logs() {
		if l.MedicationID == medicationID && l.Date == date && l.Time == doseTime {
			return &l
		}
	}
	return nil
}

// RecentLogs returns up to n logs, most recently logged first.
func (s *MedicationService) RecentLogs(n int) []model.MedLog {
	logs := s.Logs()
	sortLogsByRecency(logs)
	if len(logs) > n {
		logs = logs[:n]
	}
	return logs
}

// TotalDosesPerDay returns the number of doses scheduled across all medications.
func (s *MedicationService) TotalDosesPerDay() int {
	total := 0
	for _, m := range s.List() {
		total += len(m.Times)
	}
	return total
}

func (s *MedicationService) today() string {
	return s.now().Format("2006-01-02")
}

func containsTime(times []string, t string) bool {
	for _, v := range times {
		if v == t {
			return true
		}
	}
	return false
}

func sortLogsByRecency(logs []model.MedLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].LoggedAt > logs[j].LoggedAt
	})
}
