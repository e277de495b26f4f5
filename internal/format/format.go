// Package format holds the presentational helpers shared by the bot and the
// CLI: human date labels, status labels and emoji, and the feeding energy
// arithmetic.
package format

import (
	"fmt"
	"time"
)

// timezone is the IANA timezone for formatting times (set during startup).
var timezone *time.Location

// SetTimezone sets the timezone for date and time labels.
func SetTimezone(tz string) error {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid timezone %s: %w", tz, err)
	}
	timezone = loc
	return nil
}

func localize(t time.Time) time.Time {
	if timezone != nil {
		return t.In(timezone)
	}
	return t
}

// Time formats a clock time in the configured timezone.
func Time(t time.Time) string {
	return localize(t).Format("15:04")
}

// DateLabel renders a date as Today, Tomorrow, Yesterday, a weekday for the
// near future, or a plain date otherwise.
func DateLabel(t time.Time, now time.Time) string {
	t = localize(t)
	now = localize(now)

	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	diff := int(day.Sub(today).Hours() / 24)

	switch {
	case diff == 0:
		return "Today"
	case diff == 1:
		return "Tomorrow"
	case diff == -1:
		return "Yesterday"
	case diff > 1 && diff < 7:
		return t.Format("Monday")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// AnimalStatusLabel maps an animal status to a display label.
func AnimalStatusLabel(status string) string {
	switch status {
	case "intake":
		return "In intake"
	case "available":
		return "Available"
	case "fostered":
		return "In foster care"
	case "adopted":
		return "Adopted"
	case "hotel":
		return "Hotel guest"
	default:
		return status
	}
}

// AnimalStatusEmoji maps an animal status to an emoji.
func AnimalStatusEmoji(status string) string {
	switch status {
	case "intake":
		return "📥"
	case "available":
		return "🏠"
	case "fostered":
		return "🤝"
	case "adopted":
		return "🎉"
	case "hotel":
		return "🛎"
	default:
		return "🐾"
	}
}

// SpeciesEmoji maps a species to an emoji.
func SpeciesEmoji(species string) string {
	switch species {
	case "dog":
		return "🐶"
	case "cat":
		return "🐱"
	case "rabbit":
		return "🐰"
	case "bird":
		return "🐦"
	default:
		return "🐾"
	}
}

// TaskTypeEmoji maps a task type to an emoji.
func TaskTypeEmoji(taskType string) string {
	switch taskType {
	case "feeding":
		return "🍽"
	case "walk":
		return "🦮"
	case "cleaning":
		return "🧹"
	case "medical":
		return "💉"
	default:
		return "📋"
	}
}

// ReservationStatusLabel maps a hotel reservation status to a display label.
func ReservationStatusLabel(status string) string {
	switch status {
	case "booked":
		return "Booked"
	case "checked_in":
		return "Checked in"
	case "checked_out":
		return "Checked out"
	case "cancelled":
		return "Cancelled"
	default:
		return status
	}
}
