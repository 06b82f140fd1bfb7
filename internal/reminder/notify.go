// Package reminder fires medication reminders on a once-per-minute schedule.
// The notification, speech, and vibration channels are browser capabilities
// on the real device; here they are provider interfaces so the host can plug
// in whatever the platform offers.
package reminder

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Notifier delivers a visual notification. RequestPermission is called once,
// lazily, before the scheduler starts; implementations without a permission
// model return nil.
type Notifier interface {
	RequestPermission() error
	Notify(title, body string) error
}

// Speaker speaks text aloud in the given locale.
type Speaker interface {
	Speak(text, locale string) error
}

// Haptic plays a vibration pattern of alternating on/off millisecond durations.
type Haptic interface {
	Vibrate(pattern []int) error
}

// SpokenReminder builds the localized announcement for a due dose.
// Hand-authored phrasings exist for English, Hindi and Kannada; other
// locales fall back to the English phrasing.
func SpokenReminder(name, dosage, locale string) string {
	switch {
	case strings.HasPrefix(locale, "hi"):
		return fmt.Sprintf("आपकी दवा लेने का समय हो गया है: %s. खुराक: %s", name, dosage)
	case strings.HasPrefix(locale, "kn"):
		return fmt.Sprintf("ನಿಮ್ಮ ಔಷಧಿಯನ್ನು ತೆಗೆದುಕೊಳ್ಳುವ ಸಮಯ: %s. ಡೋಸೇಜ್: %s", name, dosage)
	default:
		return fmt.Sprintf("Time to take your medicine: %s. Dosage: %s", name, dosage)
	}
}

// VibratePattern is the pulse played when a reminder fires.
var VibratePattern = []int{200, 100, 200}

// ConsoleNotifier logs notifications instead of displaying them. Stands in
// for the platform notification center on headless hosts.
type ConsoleNotifier struct {
	Logger *zap.Logger
}

func (n *ConsoleNotifier) RequestPermission() error { return nil }

func (n *ConsoleNotifier) Notify(title, body string) error {
	n.Logger.Info("notification",
		zap.String("title", title),
		zap.String("body", body),
	)
	return nil
}

// ConsoleSpeaker logs spoken announcements instead of synthesizing them.
type ConsoleSpeaker struct {
	Logger *zap.Logger
}

func (s *ConsoleSpeaker) Speak(text, locale string) error {
	s.Logger.Info("speech",
		zap.String("locale", locale),
		zap.String("text", text),
	)
	return nil
}

// ConsoleHaptic logs vibration requests.
type ConsoleHaptic struct {
	Logger *zap.Logger
}

func (h *ConsoleHaptic) Vibrate(pattern []int) error {
	h.Logger.Info("vibration", zap.Ints("pattern", pattern))
	return nil
}
