package servers

import "errors"

// DefaultPort is used when a stored port is missing or out of range
const DefaultPort = 6667

var ErrAttached = errors.New("server already belongs to a network")

type (
	// Owner is notified whenever an attached server changes
	Owner interface {
		ServerModified(s *Server)
	}

	// Server is one connectable endpoint of a network
	Server struct {
		address string
		port    uint16
		ssl     bool
		owner   Owner
	}
)
