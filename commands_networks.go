package main

import (
	"empathy/helpers"
	"empathy/irc/networks"
	"empathy/irc/servers"
	"flag"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

type (
	exportedServer struct {
		Address string `yaml:"address"`
		Port    uint16 `yaml:"port"`
		SSL     bool   `yaml:"ssl"`
	}

	exportedNetwork struct {
		ID       string           `yaml:"id"`
		Name     string           `yaml:"name"`
		Charset  string           `yaml:"charset"`
		Modified bool             `yaml:"modified"`
		Servers  []exportedServer `yaml:"servers"`
	}
)

func (a *app) networksCommand(args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	m := a.networkManager()
	switch args[0] {
	case "list":
		return a.listNetworks(m)
	case "add":
		return a.addNetwork(m, args[1:])
	case "remove":
		if len(args) != 2 {
			return errUsage
		}
		n, err := findNetwork(m, args[1])
		if err != nil {
			return err
		}
		m.Remove(n)
		fmt.Fprintf(a.out, "Removed %s\n", n.Name())
		return nil
	case "find":
		if len(args) != 2 {
			return errUsage
		}
		n := m.FindNetworkByAddress(args[1])
		if n == nil {
			return fmt.Errorf("no network has server %s", args[1])
		}
		printNetwork(a.out, n)
		return nil
	case "move":
		return a.moveServer(m, args[1:])
	case "export":
		return a.exportNetworks(m)
	case "probe":
		return a.probeNetworks(m, args[1:])
	default:
		return fmt.Errorf("%w: unknown networks command %q", errUsage, args[0])
	}
}

// findNetwork matches id first, then the first network with that name
func findNetwork(m *networks.Manager, key string) (*networks.Network, error) {
	list := m.Networks()
	for _, n := range list {
		if n.ID() == key {
			return n, nil
		}
	}
	for _, n := range list {
		if n.Name() == key {
			return n, nil
		}
	}
	return nil, fmt.Errorf("unknown network %q", key)
}

func printNetwork(w io.Writer, n *networks.Network) {
	fmt.Fprintf(w, "%s [%s]\n", helpers.StripFormatting(n.String()), n.ID())
	for i, s := range n.Servers() {
		fmt.Fprintf(w, "  %d. %s\n", i, helpers.StripFormatting(s.String()))
	}
}

func (a *app) listNetworks(m *networks.Manager) error {
	list := m.Networks()
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No networks")
		return nil
	}

	for _, n := range list {
		printNetwork(a.out, n)
	}
	return nil
}

func parsePort(s string) (uint16, error) {
	port, err := strconv.ParseUint(s, 10, 16)
	if err != nil || port == 0 {
		return 0, fmt.Errorf("invalid port %q", s)
	}
	return uint16(port), nil
}

func (a *app) addNetwork(m *networks.Manager, args []string) error {
	fs := flag.NewFlagSet("networks add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	ssl := fs.Bool("ssl", false, "Connect with TLS")
	charset := fs.String("charset", networks.DefaultCharset, "Network charset")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	rest := fs.Args()
	if len(rest) < 2 || len(rest) > 3 {
		return errUsage
	}

	port := uint16(servers.DefaultPort)
	if len(rest) == 3 {
		p, err := parsePort(rest[2])
		if err != nil {
			return err
		}
		port = p
	}

	n := networks.New(rest[0])
	n.SetCharset(*charset)
	if err := n.AppendServer(servers.New(rest[1], port, *ssl)); err != nil {
		return err
	}
	if err := m.Add(n); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Added %s [%s]\n", n.Name(), n.ID())
	return nil
}

func (a *app) moveServer(m *networks.Manager, args []string) error {
	if len(args) != 3 {
		return errUsage
	}

	n, err := findNetwork(m, args[0])
	if err != nil {
		return err
	}

	pos, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid position %q", args[2])
	}

	for _, s := range n.Servers() {
		if s.Address() == args[1] {
			n.SetServerPosition(s, pos)
			printNetwork(a.out, n)
			return nil
		}
	}
	return fmt.Errorf("%s has no server %s", n.Name(), args[1])
}

func (a *app) exportNetworks(m *networks.Manager) error {
	var list []exportedNetwork
	for _, n := range m.Networks() {
		e := exportedNetwork{
			ID:       n.ID(),
			Name:     n.Name(),
			Charset:  n.Charset(),
			Modified: n.Modified(),
		}
		for _, s := range n.Servers() {
			e.Servers = append(e.Servers, exportedServer{
				Address: s.Address(),
				Port:    s.Port(),
				SSL:     s.SSL(),
			})
		}
		list = append(list, e)
	}

	enc := yaml.NewEncoder(a.out)
	enc.SetIndent(2)
	if err := enc.Encode(list); err != nil {
		return fmt.Errorf("encode networks: %w", err)
	}
	return enc.Close()
}
