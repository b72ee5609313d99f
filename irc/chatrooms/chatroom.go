package chatrooms

import (
	"empathy/accounts"
	"empathy/helpers"
	"errors"
	"fmt"
	"strconv"

	"github.com/lrstanley/girc"
)

var (
	ErrEmptyRoom = errors.New("chatroom room is empty")
	ErrRoomTaken = errors.New("chatroom already exists on this account")
)

// New creates a chatroom. Auto-connect implies favorite.
func New(account *accounts.Account, room, name string, autoConnect bool) *Chatroom {
	return &Chatroom{
		account:     account,
		room:        room,
		name:        name,
		autoConnect: autoConnect,
		favorite:    autoConnect,
	}
}

func (c *Chatroom) String() string {
	return girc.Fmt(fmt.Sprintf("{b}%s{b} (%s) on %s, {b}Favorite{b}: %s, {b}Auto-connect{b}: %s",
		c.Name(),
		c.room,
		c.account.String(),
		helpers.StringToStatusIndicator(strconv.FormatBool(c.favorite)),
		helpers.StringToStatusIndicator(strconv.FormatBool(c.autoConnect))))
}

func (c *Chatroom) Account() *accounts.Account { return c.account }
func (c *Chatroom) Room() string               { return c.room }
func (c *Chatroom) AutoConnect() bool          { return c.autoConnect }
func (c *Chatroom) Favorite() bool             { return c.favorite }
func (c *Chatroom) Info() RoomInfo             { return c.info }

// Name is the display name, the room itself when none was set
func (c *Chatroom) Name() string {
	if c.name == "" {
		return c.room
	}
	return c.name
}

// Equal reports whether both chatrooms point at the same room of the same
// account
func (c *Chatroom) Equal(other *Chatroom) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.room == other.room && c.account.Equal(other.account)
}

func (c *Chatroom) SetName(name string) {
	if c.name == name {
		return
	}
	c.name = name
	c.modified()
}

// SetRoom moves the bookmark to another room. The owning manager refuses a
// room it already holds for the same account.
func (c *Chatroom) SetRoom(room string) error {
	if c.room == room {
		return nil
	}
	if room == "" {
		return ErrEmptyRoom
	}
	if c.owner != nil && c.owner.roomTaken(c, room) {
		return fmt.Errorf("%w: %s", ErrRoomTaken, room)
	}
	c.room = room
	c.modified()
	return nil
}

// SetAutoConnect turns favorite on along with auto-connect. Clearing
// auto-connect leaves favorite alone.
func (c *Chatroom) SetAutoConnect(autoConnect bool) {
	if c.autoConnect == autoConnect {
		return
	}
	c.autoConnect = autoConnect
	if autoConnect {
		c.favorite = true
	}
	c.modified()
}

// SetFavorite turns auto-connect off along with favorite
func (c *Chatroom) SetFavorite(favorite bool) {
	if c.favorite == favorite {
		return
	}
	c.favorite = favorite
	if !favorite {
		c.autoConnect = false
	}
	c.modified()
}

// SetInfo replaces the runtime room info. It does not trigger a save.
func (c *Chatroom) SetInfo(info RoomInfo) {
	c.info = info
}

func (c *Chatroom) modified() {
	if c.owner != nil {
		c.owner.chatroomModified(c)
	}
}
