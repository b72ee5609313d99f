package chatrooms

import (
	"empathy/accounts"
	"empathy/logger"
	"empathy/xmlstore"
	"errors"
	"io/fs"
	"slices"
	"sync"
)

var (
	singletonsMu sync.Mutex
	singletons   = make(map[string]*Manager)
)

// Manager holds the chatrooms of every account. Only favorite chatrooms are
// written to its file.
type Manager struct {
	path     string
	accounts accounts.Store
	cache    *InfoCache

	chatrooms []*Chatroom

	added   []Listener
	removed []Listener
}

// WithInfoCache restores room info from cache on load and keeps it updated
func WithInfoCache(cache *InfoCache) ManagerOption {
	return func(m *Manager) {
		m.cache = cache
	}
}

// DupSingleton returns the manager of path, creating it on first use. Later
// calls for the same path ignore store and opts.
func DupSingleton(path string, store accounts.Store, opts ...ManagerOption) *Manager {
	singletonsMu.Lock()
	defer singletonsMu.Unlock()

	if m, ok := singletons[path]; ok {
		return m
	}

	m := NewManager(path, store, opts...)
	singletons[path] = m
	return m
}

// NewManager loads the chatrooms file at path. A missing or unreadable file
// leaves the manager empty.
func NewManager(path string, store accounts.Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		path:     path,
		accounts: store,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.load()
	return m
}

func (m *Manager) Path() string { return m.path }

// Chatrooms lists the chatrooms of account, all of them when account is nil
func (m *Manager) Chatrooms(account *accounts.Account) []*Chatroom {
	if account == nil {
		return slices.Clone(m.chatrooms)
	}

	var list []*Chatroom
	for _, c := range m.chatrooms {
		if c.account.Equal(account) {
			list = append(list, c)
		}
	}
	return list
}

func (m *Manager) Count(account *accounts.Account) int {
	if account == nil {
		return len(m.chatrooms)
	}
	return len(m.Chatrooms(account))
}

func (m *Manager) Find(account *accounts.Account, room string) *Chatroom {
	for _, c := range m.chatrooms {
		if c.room == room && c.account.Equal(account) {
			return c
		}
	}
	return nil
}

// Add inserts c unless an equal chatroom is already known. Favorites are
// saved right away.
func (m *Manager) Add(c *Chatroom) bool {
	if c.account == nil || c.room == "" || c.owner != nil || m.Find(c.account, c.room) != nil {
		return false
	}

	c.owner = m
	m.chatrooms = append(m.chatrooms, c)
	logger.Chatroom(c.account.UniqueName, c.room).Debug("Chatroom added", "favorite", c.favorite)

	if c.favorite {
		m.save()
	}

	for _, fn := range m.added {
		fn(c)
	}
	return true
}

// Remove drops the chatroom equal to c and saves
func (m *Manager) Remove(c *Chatroom) {
	i := slices.IndexFunc(m.chatrooms, c.Equal)
	if i < 0 {
		return
	}

	found := m.chatrooms[i]
	m.chatrooms = slices.Delete(m.chatrooms, i, i+1)
	found.owner = nil
	if m.cache != nil {
		m.cache.Forget(found)
	}

	logger.Chatroom(found.account.UniqueName, found.room).Debug("Chatroom removed")
	m.save()

	for _, fn := range m.removed {
		fn(found)
	}
}

// UpdateInfo sets the runtime info of c and caches it when a cache is set
func (m *Manager) UpdateInfo(c *Chatroom, info RoomInfo) {
	c.SetInfo(info)
	if m.cache == nil {
		return
	}

	if err := m.cache.Store(c, info); err != nil {
		logger.Chatroom(c.account.UniqueName, c.room).Warn("Failed to cache room info", "error", err)
	}
}

func (m *Manager) OnChatroomAdded(fn Listener) {
	m.added = append(m.added, fn)
}

func (m *Manager) OnChatroomRemoved(fn Listener) {
	m.removed = append(m.removed, fn)
}

// Store writes every favorite chatroom to the file
func (m *Manager) Store() error {
	return m.save()
}

func (m *Manager) chatroomModified(c *Chatroom) {
	logger.Chatroom(c.account.UniqueName, c.room).Debug("Chatroom modified",
		"favorite", c.favorite, "auto_connect", c.autoConnect)
	m.save()
}

func (m *Manager) roomTaken(c *Chatroom, room string) bool {
	other := m.Find(c.account, room)
	return other != nil && other != c
}

func (m *Manager) save() error {
	if m.path == "" {
		return nil
	}

	doc := chatroomsDoc{}
	for _, c := range m.chatrooms {
		if c.favorite {
			doc.Chatrooms = append(doc.Chatrooms, toXML(c))
		}
	}

	if err := xmlstore.Save(m.path, &doc); err != nil {
		logger.File(m.path).Warn("Failed to save chatrooms", "error", err)
		return err
	}

	logger.File(m.path).Debug("Chatrooms saved", "count", len(doc.Chatrooms))
	return nil
}

func (m *Manager) load() {
	if m.path == "" {
		return
	}
	log := logger.File(m.path)

	var doc chatroomsDoc
	if err := xmlstore.Load(m.path, &doc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("Chatrooms file doesn't exist")
		} else {
			log.Warn("Failed to load chatrooms file", "error", err)
		}
		return
	}

	for _, x := range doc.Chatrooms {
		var account *accounts.Account
		if m.accounts != nil {
			account, _ = m.accounts.Lookup(x.Account)
		}
		if account == nil {
			log.Warn("Skipping chatroom of unknown account", "account", x.Account, "room", x.Room)
			continue
		}
		if x.Room == "" || m.Find(account, x.Room) != nil {
			log.Debug("Skipping duplicate chatroom", "account", x.Account, "room", x.Room)
			continue
		}

		c := New(account, x.Room, x.Name, x.autoConnect())
		c.favorite = true
		if m.cache != nil {
			if info, ok := m.cache.Load(c); ok {
				c.info = info
			}
		}

		c.owner = m
		m.chatrooms = append(m.chatrooms, c)
	}

	log.Debug("Chatrooms file loaded", "count", len(m.chatrooms))
}
