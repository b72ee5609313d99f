// Package autojoin connects an account to one of its network's servers and
// joins the account's auto-connect chatrooms once registered.
package autojoin

import (
	"context"
	"empathy/accounts"
	"empathy/helpers"
	"empathy/irc/chatrooms"
	"empathy/irc/networks"
	"empathy/irc/servers"
	"empathy/logger"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lrstanley/girc"
)

var ErrNoServers = errors.New("network has no servers")

// Session is one connection attempt of an account to a network
type Session struct {
	network *networks.Network
	account *accounts.Account

	// guards manager, client handlers run concurrently
	mu      sync.Mutex
	manager *chatrooms.Manager
}

// Rooms returns the auto-connect chatrooms of account in manager order
func Rooms(manager *chatrooms.Manager, account *accounts.Account) []*chatrooms.Chatroom {
	var rooms []*chatrooms.Chatroom
	for _, c := range manager.Chatrooms(account) {
		if c.AutoConnect() {
			rooms = append(rooms, c)
		}
	}
	return rooms
}

func NewSession(network *networks.Network, account *accounts.Account, manager *chatrooms.Manager) *Session {
	return &Session{
		network: network,
		account: account,
		manager: manager,
	}
}

// Config builds the client configuration for s
func (s *Session) Config(srv *servers.Server) girc.Config {
	nick := s.account.Nick
	if nick == "" {
		nick = s.account.UniqueName
	}
	user := s.account.User
	if user == "" {
		user = nick
	}
	name := s.account.RealName
	if name == "" {
		name = nick
	}

	return girc.Config{
		Server:    srv.Address(),
		Port:      int(srv.Port()),
		SSL:       srv.SSL(),
		Nick:      nick,
		User:      user,
		Name:      name,
		Version:   "empathy",
		PingDelay: 30 * time.Second,
	}
}

// Channels lists the rooms to join, skipping those that are not IRC channels
func (s *Session) Channels() []string {
	var channels []string
	for _, c := range Rooms(s.manager, s.account) {
		if !helpers.IsChannelName(c.Room()) {
			logger.Chatroom(s.account.UniqueName, c.Room()).Warn("Not an IRC channel, skipping")
			continue
		}
		channels = append(channels, c.Room())
	}
	return channels
}

// Connect tries the servers of the network in order. It returns once a
// registered connection ends, ctx is cancelled, or every server failed.
func (s *Session) Connect(ctx context.Context) error {
	list := s.network.Servers()
	if len(list) == 0 {
		return fmt.Errorf("%s: %w", s.network.Name(), ErrNoServers)
	}

	if !strings.EqualFold(s.network.Charset(), networks.DefaultCharset) {
		logger.Network(s.network.ID(), s.network.Name()).Warn("Charset is not supported, using UTF-8", "charset", s.network.Charset())
	}

	var errs []error
	for _, srv := range list {
		registered, err := s.connect(ctx, srv)
		if registered || ctx.Err() != nil {
			return err
		}

		logger.Network(s.network.ID(), s.network.Name()).Warn("Server failed, trying next", "server", srv.HostPort(), "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", srv.HostPort(), err))
	}

	return fmt.Errorf("all servers of %s failed: %w", s.network.Name(), errors.Join(errs...))
}

func (s *Session) connect(ctx context.Context, srv *servers.Server) (bool, error) {
	client := girc.New(s.Config(srv))

	var registered atomic.Bool
	client.Handlers.Add(girc.CONNECTED, func(c *girc.Client, e girc.Event) {
		registered.Store(true)
		logger.Network(s.network.ID(), s.network.Name()).Info("Connected", "server", srv.HostPort())
		s.mu.Lock()
		channels := s.Channels()
		s.mu.Unlock()

		if len(channels) > 0 {
			c.Cmd.Join(channels...)
		}
	})
	client.Handlers.Add(girc.RPL_TOPIC, func(c *girc.Client, e girc.Event) {
		if len(e.Params) < 2 {
			return
		}
		s.topic(e.Params[1], e.Last())
	})
	client.Handlers.Add(girc.RPL_ENDOFNAMES, func(c *girc.Client, e girc.Event) {
		if len(e.Params) < 2 {
			return
		}
		if ch := c.LookupChannel(e.Params[1]); ch != nil {
			s.members(e.Params[1], len(ch.UserList))
		}
	})
	client.Handlers.Add(girc.ERR_INVITEONLYCHAN, func(c *girc.Client, e girc.Event) {
		if len(e.Params) >= 2 {
			s.inviteOnly(e.Params[1])
		}
	})
	client.Handlers.Add(girc.ERR_BADCHANNELKEY, func(c *girc.Client, e girc.Event) {
		if len(e.Params) >= 2 {
			s.needPassword(e.Params[1])
		}
	})

	done := make(chan error, 1)
	go func() {
		done <- client.Connect()
	}()

	select {
	case <-ctx.Done():
		client.Close()
		<-done
		return registered.Load(), ctx.Err()
	case err := <-done:
		return registered.Load(), err
	}
}

// find matches the channel name a server sent against the bookmarks using
// RFC 1459 casemapping
func (s *Session) find(channel string) *chatrooms.Chatroom {
	want := girc.ToRFC1459(channel)
	for _, c := range s.manager.Chatrooms(s.account) {
		if girc.ToRFC1459(c.Room()) == want {
			return c
		}
	}
	return nil
}

func (s *Session) update(room string, fn func(info *chatrooms.RoomInfo)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.find(room)
	if c == nil {
		return
	}

	info := c.Info()
	fn(&info)
	info.UpdatedAt = time.Now()
	s.manager.UpdateInfo(c, info)
}

func (s *Session) topic(room, topic string) {
	s.update(room, func(info *chatrooms.RoomInfo) { info.Subject = topic })
}

func (s *Session) members(room string, count int) {
	s.update(room, func(info *chatrooms.RoomInfo) { info.MembersCount = count })
}

func (s *Session) inviteOnly(room string) {
	s.update(room, func(info *chatrooms.RoomInfo) { info.InviteOnly = true })
}

func (s *Session) needPassword(room string) {
	s.update(room, func(info *chatrooms.RoomInfo) { info.NeedPassword = true })
}
