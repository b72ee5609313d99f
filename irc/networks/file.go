package networks

import (
	"empathy/irc/servers"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// idNamespace derives stable ids for file entries that carry none, so an
// edited copy in the user file still overrides its global original
var idNamespace = uuid.MustParse("6f1c3a52-2a0e-4b7e-9d8e-0c7a1d9e4b11")

type (
	networksDoc struct {
		XMLName  xml.Name     `xml:"irc-networks"`
		Networks []networkXML `xml:"network" validate:"dive"`
	}

	networkXML struct {
		ID            string         `xml:"id,attr,omitempty" validate:"required_with=Dropped"`
		Name          string         `xml:"name,attr,omitempty"`
		Charset       string         `xml:"charset,attr,omitempty"`
		LegacyCharset string         `xml:"network_charset,attr,omitempty"`
		Dropped       string         `xml:"dropped,attr,omitempty" validate:"omitempty,oneof=1 true TRUE"`
		Servers       []serverXML    `xml:"server" validate:"dive"`
		Legacy        *legacyServers `xml:"servers,omitempty"`
	}

	legacyServers struct {
		Servers []serverXML `xml:"server" validate:"dive"`
	}

	serverXML struct {
		Address string `xml:"address,attr"`
		Port    string `xml:"port,attr,omitempty"`
		SSL     string `xml:"ssl,attr,omitempty"`
	}
)

func (networksDoc) Schema() string { return "irc-networks" }

func (x networkXML) dropped() bool {
	return x.Dropped != ""
}

func (x networkXML) charset() string {
	switch {
	case x.Charset != "":
		return x.Charset
	case x.LegacyCharset != "":
		return x.LegacyCharset
	default:
		return DefaultCharset
	}
}

func (x networkXML) servers() []serverXML {
	if x.Legacy == nil {
		return x.Servers
	}
	return append(x.Servers, x.Legacy.Servers...)
}

func (x networkXML) derivedID() string {
	return uuid.NewSHA1(idNamespace, []byte(x.Name)).String()
}

// build creates the network without emitting any modification notice
func (x networkXML) build() *Network {
	n := New(x.Name)
	n.charset = x.charset()

	for _, sx := range x.servers() {
		// a fresh server cannot already be attached
		_ = n.appendServer(sx.build())
	}
	return n
}

func (x serverXML) build() *servers.Server {
	port, err := strconv.Atoi(x.Port)
	if err != nil || port <= 0 || port > 65535 {
		port = servers.DefaultPort
	}

	ssl := x.SSL == "" || x.SSL == "1" || strings.EqualFold(x.SSL, "true")

	return servers.New(x.Address, uint16(port), ssl)
}

func toXML(n *Network) networkXML {
	if n.dropped {
		return networkXML{ID: n.id, Dropped: "1"}
	}

	x := networkXML{
		ID:      n.id,
		Name:    n.name,
		Charset: n.charset,
	}
	for _, s := range n.servers {
		ssl := "0"
		if s.SSL() {
			ssl = "1"
		}
		x.Servers = append(x.Servers, serverXML{
			Address: s.Address(),
			Port:    strconv.Itoa(int(s.Port())),
			SSL:     ssl,
		})
	}
	return x
}
