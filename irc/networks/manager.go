package networks

import (
	"empathy/logger"
	"empathy/xmlstore"
	"errors"
	"io/fs"
	"log/slog"
	"slices"

	"github.com/google/uuid"
)

// ErrManaged is returned when adding a network that already belongs to a
// manager
var ErrManaged = errors.New("network is already managed")

// Manager holds the union of the global and user network files. Edits are
// only ever written back to the user file.
type Manager struct {
	globalFile string
	userFile   string

	// networks keeps load order and includes tombstoned entries
	networks  []*Network
	byID      map[string]*Network
	globalIDs map[string]bool
}

// NewManager loads globalFile then userFile. An empty path means the file is
// not used. Load failures are logged and never fatal.
func NewManager(globalFile, userFile string) *Manager {
	m := &Manager{
		globalFile: globalFile,
		userFile:   userFile,
		byID:       make(map[string]*Network),
		globalIDs:  make(map[string]bool),
	}

	m.load(globalFile, false)
	m.load(userFile, true)

	return m
}

func (m *Manager) GlobalFile() string { return m.globalFile }
func (m *Manager) UserFile() string   { return m.userFile }

// Networks returns the live networks. The slice is a snapshot.
func (m *Manager) Networks() []*Network {
	list := make([]*Network, 0, len(m.networks))
	for _, n := range m.networks {
		if !n.dropped {
			list = append(list, n)
		}
	}
	return list
}

// Add registers n under a fresh id and saves the user file
func (m *Manager) Add(n *Network) error {
	if n.owner != nil {
		return ErrManaged
	}

	n.id = uuid.NewString()
	n.userDefined = true
	m.insert(n)

	logger.Network(n.id, n.name).Debug("Network added")
	m.save()
	return nil
}

// Remove drops n from the live set and saves the user file. Networks that
// come from the global file leave a tombstone behind so they stay removed.
func (m *Manager) Remove(n *Network) {
	if n.owner != m || n.dropped {
		return
	}
	n.owner = nil

	tombstone := m.globalIDs[n.id]
	if tombstone {
		// the caller keeps a clean detached network
		tomb := &Network{id: n.id, name: n.name, dropped: true, userDefined: true}
		m.networks[slices.Index(m.networks, n)] = tomb
		m.byID[n.id] = tomb
	} else {
		m.networks = slices.DeleteFunc(m.networks, func(o *Network) bool { return o == n })
		delete(m.byID, n.id)
	}

	logger.Network(n.id, n.name).Debug("Network removed", "tombstone", tombstone)
	m.save()
}

// FindNetworkByAddress returns the first network owning a server with the
// exact given address
func (m *Manager) FindNetworkByAddress(address string) *Network {
	for _, n := range m.networks {
		if n.dropped {
			continue
		}
		for _, s := range n.servers {
			if s.Address() == address {
				return n
			}
		}
	}
	return nil
}

// Save writes the user file. Mutations already save on their own.
func (m *Manager) Save() error {
	return m.save()
}

func (m *Manager) networkModified(n *Network) {
	logger.Network(n.id, n.name).Debug("Network modified")
	m.save()
}

func (m *Manager) save() error {
	if m.userFile == "" {
		return nil
	}

	doc := networksDoc{}
	for _, n := range m.networks {
		if n.userDefined {
			doc.Networks = append(doc.Networks, toXML(n))
		}
	}

	if err := xmlstore.Save(m.userFile, &doc); err != nil {
		logger.File(m.userFile).Warn("Failed to save networks", "error", err)
		return err
	}

	logger.File(m.userFile).Debug("Networks saved", "count", len(doc.Networks))
	return nil
}

func (m *Manager) insert(n *Network) {
	n.owner = m

	if old, ok := m.byID[n.id]; ok {
		old.owner = nil
		i := slices.Index(m.networks, old)
		m.networks[i] = n
	} else {
		m.networks = append(m.networks, n)
	}
	m.byID[n.id] = n
}

func (m *Manager) load(path string, userFile bool) {
	if path == "" {
		return
	}
	log := logger.File(path)

	var doc networksDoc
	if err := xmlstore.Load(path, &doc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("Networks file doesn't exist")
		} else {
			log.Warn("Failed to load networks file", "error", err)
		}
		return
	}

	seen := make(map[string]bool, len(doc.Networks))
	for _, x := range doc.Networks {
		m.loadNetwork(x, userFile, seen, log)
	}

	log.Debug("Networks file loaded", "count", len(doc.Networks))
}

func (m *Manager) loadNetwork(x networkXML, userFile bool, seen map[string]bool, log *slog.Logger) {
	id := x.ID
	if id == "" {
		id = x.derivedID()
		if seen[id] {
			// same name twice in one file, neither can be overridden by id
			id = uuid.NewString()
		}
	}
	seen[id] = true

	if x.dropped() {
		if !userFile {
			log.Warn("Ignoring dropped network in global file", "id", id)
			return
		}

		n, ok := m.byID[id]
		if !ok {
			log.Debug("Dropping stale tombstone", "id", id)
			return
		}
		n.owner = nil
		n.dropped = true
		n.userDefined = true
		return
	}

	n := x.build()
	n.id = id
	n.userDefined = userFile
	if !userFile {
		m.globalIDs[id] = true
	}
	m.insert(n)
}
