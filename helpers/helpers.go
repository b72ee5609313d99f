package helpers

import (
	"strings"
	"time"

	"github.com/hako/durafmt"
	"github.com/lrstanley/girc"
)

func TimeToHumanReadable(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	return durafmt.Parse(time.Since(t).Truncate(time.Second)).LimitFirstN(2).String()
}

func DurationToHumanReadable(d time.Duration) string {
	if d < time.Second {
		return d.Truncate(time.Millisecond).String()
	}
	return durafmt.Parse(d.Truncate(time.Millisecond)).LimitFirstN(2).String()
}

// StringToStatusIndicator converts a string to a status indicator string.
func StringToStatusIndicator(s string) string {
	if s == "" {
		return "[N/A]" // ASCII for empty or not available
	}
	if s == "true" {
		return "[YES]"
	} else if s == "false" {
		return "[NO]"
	}
	return "[?]"
}

// StripFormatting removes girc colour and style codes, for output that is
// not going to an IRC client
func StripFormatting(s string) string {
	return girc.StripRaw(s)
}

func IsChannelName(name string) bool {
	return strings.HasPrefix(name, "#") || strings.HasPrefix(name, "&")
}
