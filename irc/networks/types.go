package networks

import (
	"empathy/irc/servers"
)

// DefaultCharset is the charset of a newly created network
const DefaultCharset = "UTF-8"

type (
	// listener receives modification notices from an attached network
	listener interface {
		networkModified(n *Network)
	}

	// Network is a named IRC service definition with an ordered server list.
	// The first server is the default connect target.
	Network struct {
		id      string
		name    string
		charset string
		servers []*servers.Server

		// userDefined is set once the network has to be written to the user file
		userDefined bool
		// dropped marks a removed network that still needs a tombstone
		dropped bool

		owner listener
	}
)
