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

// AppointmentService manages the appointment calendar. The persisted
// collection is always kept sorted by (date, time) ascending.
type AppointmentService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewAppointmentService creates a new AppointmentService
func NewAppointmentService(st *store.Store, logger *zap.Logger) *AppointmentService {
	return &AppointmentService{
		store:  st,
		logger: logger,
	}
}

// AddAppointmentParams holds the user-entered fields for a new appointment
type AddAppointmentParams struct {
	Title    string
	Doctor   string
	Location string
	Date     string // YYYY-MM-DD
	Time     string // HH:MM
	Notes    string
}

// Add validates the params and inserts the appointment, re-sorting the full
// collection by (date, time) before persisting.
func (s *AppointmentService) Add(p AddAppointmentParams) (*model.Appointment, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: appointment title is required", ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", p.Date); err != nil {
		return nil, fmt.Errorf("%w: appointment date must be YYYY-MM-DD, got %q", ErrValidation, p.Date)
	}
	if _, err := time.Parse("15:04", p.Time); err != nil {
		return nil, fmt.Errorf("%w: appointment time must be HH:MM, got %q", ErrValidation, p.Time)
	}

	appt := model.Appointment{
		ID:    uuid.New().String(),
		Title: title,
		Date:  p.Date,
		Time:  p.Time,
	}
	if doctor := strings.TrimSpace(p.Doctor); doctor != "" {
		appt.Doctor = &doctor
	}
	if location := strings.TrimSpace(p.Location); location != "" {
		appt.Location = &location
	}
	if notes := strings.TrimSpace(p.Notes); notes != "" {
		appt.Notes = &notes
	}

	appts := s.List()
	appts = append(appts, appt)
	sort.SliceStable(appts, func(i, j int) bool {
		return appts[i].Date+appts[i].Time < appts[j].Date+appts[j].Time
	})
	store.Save(s.store, store.KeyAppointments, appts)

	s.logger.Info("appointment added",
		zap.String("appointment_id", appt.ID),
		zap.String("title", appt.Title),
		zap.String("date", appt.Date),
		zap.String("time", appt.Time),
	)

	return &appt, nil
}

// Delete removes the appointment by id. No-op if absent.
func (s *AppointmentService) Delete(id string) {
	appts := s.List()
	kept := appts[:0]
	for _, a := range appts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(appts) {
		return
	}
	store.Save(s.store, store.KeyAppointments, kept)

	s.logger.Info("appointment deleted", zap.String("appointment_id", id))
}

// List returns all appointments sorted by (date, time) ascending.
func (s *AppointmentService) List() []model.Appointment {
	return store.Load(s.store, store.KeyAppointments, []model.Appointment{})
}

// Upcoming returns appointments on or after today, capped to limit.
// YYYY-MM-DD sorts lexicographically, so a plain string compare suffices.
func (s *AppointmentService) Upcoming(today string, limit int) []model.Appointment {
	var out []model.Appointment
	for _, a := range s.List() {
		if a.Date >= today {
			out = append(out, a)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// OnDate returns the appointments scheduled for the given day.
func (s *AppointmentService) OnDate(date string) []model.Appointment {
	var out []model.Appointment
	for _, a := range s.List() {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out
}
