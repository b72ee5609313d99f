package accounts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r, err := NewRegistry(
		Account{UniqueName: "irc/me1", Protocol: "irc"},
		Account{UniqueName: "irc/me0", Protocol: "irc", DisplayName: "Me"},
	)
	require.NoError(t, err)

	a, ok := r.Lookup("irc/me0")
	require.True(t, ok)
	assert.Equal(t, "Me", a.DisplayName)

	_, ok = r.Lookup("nope")
	assert.False(t, ok)

	_, err = r.Get("nope")
	assert.True(t, errors.Is(err, ErrUnknownAccount))

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "irc/me0", all[0].UniqueName)
	assert.Equal(t, "irc/me1", all[1].UniqueName)
}

func TestRegistryRejects(t *testing.T) {
	_, err := NewRegistry(Account{UniqueName: ""})
	assert.Error(t, err)

	_, err = NewRegistry(Account{UniqueName: "a", Protocol: "carrier-pigeon"})
	assert.Error(t, err)

	_, err = NewRegistry(Account{UniqueName: "a"}, Account{UniqueName: "a"})
	assert.Error(t, err)
}

func TestAccountEqual(t *testing.T) {
	a := &Account{UniqueName: "x", DisplayName: "one"}
	b := &Account{UniqueName: "x", DisplayName: "two"}
	c := &Account{UniqueName: "y"}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))

	var none *Account
	assert.True(t, none.Equal(nil))
}
