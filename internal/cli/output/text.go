package output

import (
	"strings"
	"time"
)

// hazardous characters stripped from user-supplied display text before
// rendering. Sanitization happens at the display boundary only.
const hazardousChars = `<>"'&-`

// Sanitize strips hazardous characters from display text and trims it.
func Sanitize(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if strings.ContainsRune(hazardousChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// FormatDate renders an ISO-8601 timestamp as MM/DD/YYYY, or "-" when
// the input is blank or unparseable.
func FormatDate(iso string) string {
	iso = strings.TrimSpace(iso)
	if iso == "" {
		return "-"
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		// Date-only values are also accepted.
		t, err = time.Parse("2006-01-02", iso)
		if err != nil {
			return "-"
		}
	}
	return t.Format("01/02/2006")
}

// FormatTime renders a timestamp as MM/DD/YYYY, or "-" for the zero time.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("01/02/2006")
}
