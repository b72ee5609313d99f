package servers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingOwner struct {
	count int
}

func (o *countingOwner) ServerModified(*Server) { o.count++ }

func TestNew(t *testing.T) {
	s := New("irc.freenode.net", 6667, false)

	assert.Equal(t, "irc.freenode.net", s.Address())
	assert.Equal(t, uint16(6667), s.Port())
	assert.False(t, s.SSL())
	assert.Equal(t, "irc.freenode.net:6667", s.HostPort())
	assert.Nil(t, s.Owner())
}

func TestPropertyChange(t *testing.T) {
	s := New("server1", 6667, false)

	s.SetAddress("server2")
	s.SetPort(6668)
	s.SetSSL(true)

	assert.Equal(t, "server2", s.Address())
	assert.Equal(t, uint16(6668), s.Port())
	assert.True(t, s.SSL())
}

func TestModifiedNotification(t *testing.T) {
	owner := &countingOwner{}
	s := New("server1", 6667, false)
	require.NoError(t, s.Attach(owner))

	s.SetAddress("server2")
	assert.Equal(t, 1, owner.count)
	s.SetAddress("server2")
	assert.Equal(t, 1, owner.count, "unchanged address must not notify")

	s.SetPort(6668)
	assert.Equal(t, 2, owner.count)
	s.SetPort(6668)
	assert.Equal(t, 2, owner.count)

	s.SetSSL(true)
	assert.Equal(t, 3, owner.count)
	s.SetSSL(true)
	assert.Equal(t, 3, owner.count)

	s.Detach(owner)
	s.SetAddress("server3")
	assert.Equal(t, 3, owner.count, "detached server must not notify")
}

func TestAttachTwice(t *testing.T) {
	s := New("server1", 6667, false)
	first, second := &countingOwner{}, &countingOwner{}

	require.NoError(t, s.Attach(first))
	assert.ErrorIs(t, s.Attach(second), ErrAttached)

	s.Detach(second)
	assert.Equal(t, first, s.Owner())

	s.Detach(first)
	assert.NoError(t, s.Attach(second))
}
