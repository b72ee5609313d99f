package chatrooms

import (
	"encoding/xml"
)

type (
	chatroomsDoc struct {
		XMLName   xml.Name      `xml:"chatrooms"`
		Chatrooms []chatroomXML `xml:"chatroom" validate:"dive"`
	}

	chatroomXML struct {
		Name        string `xml:"name,omitempty"`
		Room        string `xml:"room" validate:"required"`
		Account     string `xml:"account" validate:"required"`
		AutoConnect string `xml:"auto_connect,omitempty"`
	}
)

func (chatroomsDoc) Schema() string { return "chatrooms" }

// autoConnect defaults to yes when the element is missing
func (x chatroomXML) autoConnect() bool {
	return x.AutoConnect == "" || x.AutoConnect == "yes"
}

func toXML(c *Chatroom) chatroomXML {
	autoConnect := "no"
	if c.autoConnect {
		autoConnect = "yes"
	}

	return chatroomXML{
		Name:        c.name,
		Room:        c.room,
		Account:     c.account.UniqueName,
		AutoConnect: autoConnect,
	}
}
