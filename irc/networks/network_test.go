package networks

import (
	"empathy/irc/servers"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingListener struct {
	count int
}

func (l *countingListener) networkModified(*Network) { l.count++ }

func newWatched(t *testing.T, name string) (*Network, *countingListener) {
	t.Helper()

	l := &countingListener{}
	n := New(name)
	n.owner = l
	return n, l
}

func serverAddresses(n *Network) []string {
	var out []string
	for _, s := range n.Servers() {
		out = append(out, s.Address())
	}
	return out
}

func TestNewNetwork(t *testing.T) {
	n := New("Network1")

	assert.Equal(t, "Network1", n.Name())
	assert.Equal(t, DefaultCharset, n.Charset())
	assert.Empty(t, n.Servers())
	assert.Nil(t, n.DefaultServer())
	assert.False(t, n.Modified())
}

func TestSetProperties(t *testing.T) {
	n, l := newWatched(t, "Network1")

	n.SetName("Network2")
	n.SetCharset("ISO-8859-1")
	assert.Equal(t, "Network2", n.Name())
	assert.Equal(t, "ISO-8859-1", n.Charset())
	assert.Equal(t, 2, l.count)
	assert.True(t, n.Modified())

	n.SetName("Network2")
	n.SetCharset("ISO-8859-1")
	assert.Equal(t, 2, l.count, "unchanged values must not notify")
}

func TestAddServer(t *testing.T) {
	n, l := newWatched(t, "Network1")

	for _, addr := range []string{"server1", "server2", "server3", "server4"} {
		require.NoError(t, n.AppendServer(servers.New(addr, 6667, false)))
	}
	assert.Equal(t, 4, l.count)
	assert.Equal(t, []string{"server1", "server2", "server3", "server4"}, serverAddresses(n))
	assert.Equal(t, "server1", n.DefaultServer().Address())

	list := n.Servers()
	n.RemoveServer(list[1])
	n.RemoveServer(list[3])
	assert.Equal(t, 6, l.count)
	assert.Equal(t, []string{"server1", "server3"}, serverAddresses(n))

	// removed servers no longer report to the network
	list[1].SetPort(7000)
	assert.Equal(t, 6, l.count)
	assert.Nil(t, list[1].Owner())

	n.RemoveServer(list[1])
	assert.Equal(t, 6, l.count, "unknown server must be ignored")
}

func TestAppendAttachedServer(t *testing.T) {
	s := servers.New("server1", 6667, false)
	require.NoError(t, New("a").AppendServer(s))

	err := New("b").AppendServer(s)
	assert.ErrorIs(t, err, servers.ErrAttached)
}

func TestServerModifiedPropagates(t *testing.T) {
	n, l := newWatched(t, "Network1")
	s := servers.New("server1", 6667, false)
	require.NoError(t, n.AppendServer(s))
	l.count = 0

	s.SetAddress("server2")
	s.SetSSL(true)
	assert.Equal(t, 2, l.count)
}

func TestSetServerPosition(t *testing.T) {
	n, l := newWatched(t, "Network1")

	var s []*servers.Server
	for _, addr := range []string{"server1", "server2", "server3", "server4"} {
		srv := servers.New(addr, 6667, false)
		require.NoError(t, n.AppendServer(srv))
		s = append(s, srv)
	}

	n.SetServerPosition(s[0], -1)
	n.SetServerPosition(s[1], 0)
	n.SetServerPosition(s[2], 2)
	n.SetServerPosition(s[3], 1)

	assert.Equal(t, []string{"server2", "server4", "server3", "server1"}, serverAddresses(n))

	l.count = 0
	n.SetServerPosition(s[1], 0)
	assert.Equal(t, 0, l.count, "moving to the current position must not notify")

	n.SetServerPosition(s[1], 42)
	assert.Equal(t, 1, l.count)
	assert.Equal(t, "server1", n.Servers()[2].Address())
	assert.Equal(t, "server2", n.Servers()[3].Address())
}

func TestServersIsSnapshot(t *testing.T) {
	n := New("Network1")
	require.NoError(t, n.AppendServer(servers.New("server1", 6667, false)))

	list := n.Servers()
	list[0] = nil
	assert.NotNil(t, n.Servers()[0])
}
