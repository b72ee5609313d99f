package helpers

import (
	"testing"
	"time"

	"github.com/lrstanley/girc"
	"github.com/stretchr/testify/assert"
)

func TestStringToStatusIndicator(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "[N/A]"},
		{"true", "[YES]"},
		{"false", "[NO]"},
		{"maybe", "[?]"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StringToStatusIndicator(tt.in))
	}
}

func TestTimeToHumanReadable(t *testing.T) {
	assert.Equal(t, "never", TimeToHumanReadable(time.Time{}))
	assert.Contains(t, TimeToHumanReadable(time.Now().Add(-2*time.Hour)), "2 hours")
}

func TestDurationToHumanReadable(t *testing.T) {
	assert.Equal(t, "12ms", DurationToHumanReadable(12*time.Millisecond+300*time.Microsecond))
	assert.Equal(t, "1 minute 30 seconds", DurationToHumanReadable(90*time.Second))
}

func TestStripFormatting(t *testing.T) {
	assert.Equal(t, "Name: x", StripFormatting(girc.Fmt("{b}Name{b}: x")))
}

func TestIsChannelName(t *testing.T) {
	assert.True(t, IsChannelName("#go-nuts"))
	assert.True(t, IsChannelName("&local"))
	assert.False(t, IsChannelName("room@conference.jabber.org"))
}
