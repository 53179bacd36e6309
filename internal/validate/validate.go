package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"snapbook/internal/domain"
)

var (
	reEmail    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reUsername = regexp.MustCompile(`^[A-Za-z0-9._-]{3,32}$`)
	reID       = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// MinPasswordLen is the shortest password accepted at registration.
const MinPasswordLen = 6

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func Username(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reUsername.MatchString(s)
}

// ID validates a resource identifier taken from a path segment.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 80 {
		return "", false
	}
	return s, true
}

func Password(s string) bool {
	return len(s) >= MinPasswordLen && len(s) <= 72
}

// Clock validates a 24h time of day and returns it zero-padded as HH:MM,
// so "9:30" and "09:30" name the same slot.
func Clock(s string) (string, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return t.Format("15:04"), true
}

// Rate parses a positive integer price.
func Rate(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Experience parses a non-negative number of years.
func Experience(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 80 {
		return 0, false
	}
	return n, true
}

// Weekdays keeps the submitted order, drops duplicates and rejects unknown names.
func Weekdays(in []string) ([]string, bool) {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, d := range in {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if !domain.IsWeekday(d) {
			return nil, false
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out, true
}

// Tags splits a comma separated list, trimming blanks.
func Tags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ImageType returns the file extension for an allowed image content type.
func ImageType(contentType string) (string, bool) {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := imageTypes[ct]
	return ext, ok
}
