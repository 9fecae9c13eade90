package youtube

import (
	"fmt"
	"strings"
)

// ParseWarning reports a duration string that could not be parsed. It is
// recoverable: the parser still returns 0 and callers carry on.
type ParseWarning struct {
	Input  string
	Reason string
}

func (w *ParseWarning) Error() string {
	return fmt.Sprintf("unparseable duration %q: %s", w.Input, w.Reason)
}

// ParseDuration converts an ISO-8601 duration of the form PT[nH][nM][nS]
// into total seconds. Missing components count as zero. Malformed input
// yields 0 and a *ParseWarning.
func ParseDuration(s string) (int64, error) {
	if s == "" {
		return 0, &ParseWarning{Input: s, Reason: "empty"}
	}
	if !strings.HasPrefix(s, "PT") {
		return 0, &ParseWarning{Input: s, Reason: "missing PT prefix"}
	}

	body := s[2:]
	if body == "" {
		return 0, &ParseWarning{Input: s, Reason: "no components"}
	}

	var total, n int64
	digits := 0
	// index into "HMS" of the last unit seen; units must be strictly increasing
	last := -1
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch >= '0' && ch <= '9' {
			n = n*10 + int64(ch-'0')
			digits++
			continue
		}

		if ch == '.' {
			// fractional seconds are truncated
			j := i + 1
			for j < len(body) && body[j] >= '0' && body[j] <= '9' {
				j++
			}
			if digits == 0 || j == i+1 || j >= len(body) || body[j] != 'S' {
				return 0, &ParseWarning{Input: s, Reason: "fraction outside seconds"}
			}
			i = j - 1
			continue
		}

		unit := strings.IndexByte("HMS", ch)
		if unit < 0 {
			return 0, &ParseWarning{Input: s, Reason: fmt.Sprintf("unexpected character %q", ch)}
		}
		if digits == 0 {
			return 0, &ParseWarning{Input: s, Reason: fmt.Sprintf("unit %c without value", ch)}
		}
		if unit <= last {
			return 0, &ParseWarning{Input: s, Reason: fmt.Sprintf("unit %c out of order", ch)}
		}

		switch ch {
		case 'H':
			total += n * 3600
		case 'M':
			total += n * 60
		case 'S':
			total += n
		}
		last = unit
		n, digits = 0, 0
	}

	if digits > 0 {
		return 0, &ParseWarning{Input: s, Reason: "trailing value without unit"}
	}
	return total, nil
}

// FormatDuration renders seconds as "1h 2m 3s", or "2m 3s" under an hour
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes, secs := seconds/60, seconds%60
	hours, minutes := minutes/60, minutes%60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, secs)
	}
	return fmt.Sprintf("%dm %ds", minutes, secs)
}
