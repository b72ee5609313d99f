package servers

import (
	"empathy/helpers"
	"fmt"
	"net"
	"strconv"

	"github.com/lrstanley/girc"
)

func New(address string, port uint16, ssl bool) *Server {
	return &Server{
		address: address,
		port:    port,
		ssl:     ssl,
	}
}

func (s *Server) String() string {
	return girc.Fmt(fmt.Sprintf("{b}Address{b}: %s {b}Port{b}: %d {b}SSL{b}: %s",
		s.address,
		s.port,
		helpers.StringToStatusIndicator(strconv.FormatBool(s.ssl))))
}

func (s *Server) Address() string { return s.address }
func (s *Server) Port() uint16    { return s.port }
func (s *Server) SSL() bool       { return s.ssl }

// HostPort joins address and port for dialing
func (s *Server) HostPort() string {
	return net.JoinHostPort(s.address, strconv.Itoa(int(s.port)))
}

func (s *Server) SetAddress(address string) {
	if s.address == address {
		return
	}
	s.address = address
	s.modified()
}

func (s *Server) SetPort(port uint16) {
	if s.port == port {
		return
	}
	s.port = port
	s.modified()
}

func (s *Server) SetSSL(ssl bool) {
	if s.ssl == ssl {
		return
	}
	s.ssl = ssl
	s.modified()
}

// Owner returns the network the server is attached to, if any
func (s *Server) Owner() Owner {
	return s.owner
}

// Attach makes o the receiver of modification notices
func (s *Server) Attach(o Owner) error {
	if s.owner != nil {
		return ErrAttached
	}
	s.owner = o
	return nil
}

// Detach stops notifying o. Detaching from a non-owner is a no-op.
func (s *Server) Detach(o Owner) {
	if s.owner == o {
		s.owner = nil
	}
}

func (s *Server) modified() {
	if s.owner != nil {
		s.owner.ServerModified(s)
	}
}
