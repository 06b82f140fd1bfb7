package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/aarogyavani/companion/pkg/model"
)

// BuildSummary renders the caregiver digest: today's adherence counts, the
// medicine list, up to five upcoming appointments, and the emergency
// contacts. Pure and deterministic: the only date that appears is the
// caller-supplied today string, so identical inputs produce byte-identical
// output.
func BuildSummary(
	today string,
	meds []model.Medication,
	logs []model.MedLog,
	appts []model.Appointment,
	contacts []model.EmergencyContact,
) string {
	taken, skipped := 0, 0
	for _, l := range logs {
		if l.Date != today {
			continue
		}
		switch l.Status {
		case model.DoseTaken:
			taken++
		case model.DoseSkipped:
			skipped++
		}
	}

	totalDoses := 0
	for _, m := range meds {
		totalDoses += len(m.Times)
	}

	var upcoming []model.Appointment
	for _, a := range appts {
		if a.Date >= today {
			upcoming = append(upcoming, a)
			if len(upcoming) == 5 {
				break
			}
		}
	}

	lines := []string{
		fmt.Sprintf("📋 AarogyaVani Care Summary — %s", today),
		"",
		fmt.Sprintf("💊 Medications Today: %d taken, %d skipped (of %d doses)", taken, skipped, totalDoses),
	}
	if len(meds) > 0 {
		lines = append(lines, "  Medicines:")
		for _, m := range meds {
			lines = append(lines, fmt.Sprintf("  • %s %s at %s", m.Name, m.Dosage, strings.Join(m.Times, ", ")))
		}
	}
	lines = append(lines, "")

	if len(upcoming) > 0 {
		lines = append(lines, "📅 Upcoming Appointments:")
		for _, a := range upcoming {
			line := fmt.Sprintf("  • %s %s — %s", a.Date, a.Time, a.Title)
			if a.Doctor != nil {
				line += fmt.Sprintf(" (%s)", *a.Doctor)
			}
			lines = append(lines, line)
		}
	} else {
		lines = append(lines, "📅 No upcoming appointments.")
	}
	lines = append(lines, "")

	if len(contacts) > 0 {
		lines = append(lines, "🆘 Emergency Contacts:")
		for _, c := range contacts {
			line := "  • " + c.Name
			if c.Relation != nil {
				line += fmt.Sprintf(" (%s)", *c.Relation)
			}
			line += ": " + c.Phone
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n")
}

// Adherence returns the percentage of scheduled doses logged taken, rounded
// to the nearest integer, or -1 when no doses are scheduled.
func Adherence(taken, totalDoses int) int {
	if totalDoses == 0 {
		return -1
	}
	return int(math.Round(float64(taken) / float64(totalDoses) * 100))
}
