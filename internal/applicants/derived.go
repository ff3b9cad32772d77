package applicants

import (
	"strings"
	"time"
)

// LocationNotAvailable is shown when neither city nor province is known.
const LocationNotAvailable = "Not available"

// Age is the number of whole years between dob and now, counting the
// current year only once the birthday has passed.
func Age(dob, now time.Time) int {
	dob = dob.UTC()
	now = now.UTC()

	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// ComposeLocation joins city and province as "city, province", falling back
// to whichever is present.
func ComposeLocation(city, province *string) string {
	if loc := joinLocation(city, province); loc != "" {
		return loc
	}
	return LocationNotAvailable
}

func joinLocation(city, province *string) string {
	parts := make([]string, 0, 2)
	if present(city) {
		parts = append(parts, strings.TrimSpace(*city))
	}
	if present(province) {
		parts = append(parts, strings.TrimSpace(*province))
	}
	return strings.Join(parts, ", ")
}

// FullName composes "first last" and trims whatever is missing.
func FullName(first, last *string) string {
	var f, l string
	if first != nil {
		f = *first
	}
	if last != nil {
		l = *last
	}
	return strings.TrimSpace(strings.TrimSpace(f) + " " + strings.TrimSpace(l))
}

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// startOfDay truncates t to midnight UTC.
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
