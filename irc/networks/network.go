package networks

import (
	"empathy/helpers"
	"empathy/irc/servers"
	"fmt"
	"slices"
	"strconv"

	"github.com/lrstanley/girc"
)

func New(name string) *Network {
	return &Network{
		name:    name,
		charset: DefaultCharset,
	}
}

func (n *Network) String() string {
	return girc.Fmt(fmt.Sprintf("{b}Name{b}: %s, {b}Charset{b}: %s, {b}Servers{b}: %d, {b}Modified{b}: %s",
		n.name,
		n.charset,
		len(n.servers),
		helpers.StringToStatusIndicator(strconv.FormatBool(n.userDefined))))
}

// ID is the identifier the network is persisted under. Empty until the
// network has been added to a Manager.
func (n *Network) ID() string      { return n.id }
func (n *Network) Name() string    { return n.name }
func (n *Network) Charset() string { return n.charset }

// Modified reports whether the network differs from, or is absent from, the
// global file and so belongs in the user file
func (n *Network) Modified() bool { return n.userDefined }

// Servers returns the servers in connection order. The slice is a copy.
func (n *Network) Servers() []*servers.Server {
	return slices.Clone(n.servers)
}

// DefaultServer is the first server, nil when the network has none
func (n *Network) DefaultServer() *servers.Server {
	if len(n.servers) == 0 {
		return nil
	}
	return n.servers[0]
}

func (n *Network) SetName(name string) {
	if n.name == name {
		return
	}
	n.name = name
	n.modified()
}

func (n *Network) SetCharset(charset string) {
	if n.charset == charset {
		return
	}
	n.charset = charset
	n.modified()
}

// AppendServer adds s at the last position. The server must not belong to
// any network yet.
func (n *Network) AppendServer(s *servers.Server) error {
	if err := n.appendServer(s); err != nil {
		return err
	}
	n.modified()
	return nil
}

func (n *Network) appendServer(s *servers.Server) error {
	if err := s.Attach(n); err != nil {
		return fmt.Errorf("append %s to %s: %w", s.Address(), n.name, err)
	}
	n.servers = append(n.servers, s)
	return nil
}

// RemoveServer drops s from the list. Unknown servers are ignored.
func (n *Network) RemoveServer(s *servers.Server) {
	i := slices.Index(n.servers, s)
	if i < 0 {
		return
	}

	n.servers = slices.Delete(n.servers, i, i+1)
	s.Detach(n)
	n.modified()
}

// SetServerPosition moves s to index pos. A negative pos, or one past the end
// of the list, moves it to the last position.
func (n *Network) SetServerPosition(s *servers.Server, pos int) {
	i := slices.Index(n.servers, s)
	if i < 0 {
		return
	}

	last := len(n.servers) - 1
	if pos < 0 || pos > last {
		pos = last
	}
	if pos == i {
		return
	}

	n.servers = slices.Delete(n.servers, i, i+1)
	n.servers = slices.Insert(n.servers, pos, s)
	n.modified()
}

// ServerModified is called by attached servers
func (n *Network) ServerModified(*servers.Server) {
	n.modified()
}

func (n *Network) modified() {
	n.userDefined = true
	if n.owner != nil {
		n.owner.networkModified(n)
	}
}
