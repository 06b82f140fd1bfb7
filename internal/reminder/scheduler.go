package reminder

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aarogyavani/companion/internal/service"
)

// Scheduler polls the medication list once per minute and fires the
// notification/speech/haptic triple for every dose due in the current minute
// that has not already been logged. Firing is at most once per
// (medication, date, time): the cron entry runs exactly once per minute, and
// a logged dose suppresses the reminder. A process suspended across the
// matching minute misses that reminder entirely, a known gap of the
// minute-granularity poll, accepted rather than patched.
type Scheduler struct {
	meds     *service.MedicationService
	notifier Notifier
	speaker  Speaker
	haptic   Haptic
	cron     *cron.Cron
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a scheduler over the given providers.
func NewScheduler(meds *service.MedicationService, notifier Notifier, speaker Speaker, haptic Haptic, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		meds:     meds,
		notifier: notifier,
		speaker:  speaker,
		haptic:   haptic,
		cron:     cron.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// Start requests notification permission once, then begins the minute tick.
func (s *Scheduler) Start() error {
	if err := s.notifier.RequestPermission(); err != nil {
		return fmt.Errorf("request notification permission: %w", err)
	}

	if _, err := s.cron.AddFunc("* * * * *", s.tick); err != nil {
		return fmt.Errorf("register reminder job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("reminder scheduler started")
	return nil
}

// Stop cancels the timer and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("reminder scheduler stopped")
}

// tick compares every configured dose time against the minute-truncated
// current time and fires side effects for unlogged matches.
func (s *Scheduler) tick() {
	now := s.now().Truncate(time.Minute)
	hhmm := now.Format("15:04")
	today := now.Format("2006-01-02")

	for _, med := range s.meds.List() {
		for _, t := range med.Times {
			if t != hhmm {
				continue
			}
			if s.meds.LogFor(med.ID, today, t) != nil {
				continue
			}
			s.fire(med.Name, med.Dosage, med.Language)
		}
	}
}

func (s *Scheduler) fire(name, dosage, locale string) {
	s.logger.Info("reminder due",
		zap.String("medication", name),
		zap.String("locale", locale),
	)

	if err := s.notifier.Notify(fmt.Sprintf("💊 Time to take %s", name), "Dosage: "+dosage); err != nil {
		s.logger.Warn("notification failed", zap.Error(err), zap.String("medication", name))
	}
	if err := s.speaker.Speak(SpokenReminder(name, dosage, locale), locale); err != nil {
		s.logger.Warn("speech failed", zap.Error(err), zap.String("medication", name))
	}
	if err := s.haptic.Vibrate(VibratePattern); err != nil {
		s.logger.Warn("vibration failed", zap.Error(err), zap.String("medication", name))
	}
}
