package chatrooms

import (
	"empathy/accounts"
	"time"
)

type (
	listener interface {
		chatroomModified(c *Chatroom)
		roomTaken(c *Chatroom, room string) bool
	}

	// Chatroom is a bookmark for a room on an account. Identity is the
	// account unique name plus the room.
	Chatroom struct {
		account     *accounts.Account
		room        string
		name        string
		autoConnect bool
		favorite    bool

		info RoomInfo

		owner listener
	}

	// RoomInfo is what the server last told us about a room. It is never
	// written to the chatrooms file.
	RoomInfo struct {
		Subject      string    `json:"subject,omitempty"`
		MembersCount int       `json:"members_count"`
		InviteOnly   bool      `json:"invite_only"`
		NeedPassword bool      `json:"need_password"`
		UpdatedAt    time.Time `json:"updated_at"`
	}

	// Listener is called when a chatroom enters or leaves a Manager
	Listener func(c *Chatroom)

	ManagerOption func(*Manager)
)
