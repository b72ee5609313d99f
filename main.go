package main

import (
	"empathy/accounts"
	"empathy/birdbase"
	"empathy/irc/chatrooms"
	"empathy/irc/networks"
	"empathy/logger"
	"empathy/settings"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

var errUsage = errors.New("usage")

const usage = `usage: empathy [-c settings.toml] <command> [arguments]

commands:
  networks list
  networks add [-ssl] <name> <address> [port]
  networks remove <network>
  networks find <address>
  networks move <network> <address> <position>
  networks export
  networks probe [-timeout 5s]
  rooms list [account]
  rooms add [-auto] <account> <room> [name]
  rooms remove <account> <room>
  rooms favorite <account> <room> on|off
  rooms autoconnect <account> <room> on|off
  connect <network> <account>
`

// app holds what commands share. Managers are opened on first use.
type app struct {
	config   *settings.Config
	accounts *accounts.Registry
	out      io.Writer

	networks  *networks.Manager
	chatrooms *chatrooms.Manager
	cache     *birdbase.DB
}

func newApp(config *settings.Config, out io.Writer) (*app, error) {
	registry, err := accounts.NewRegistry(config.Accounts...)
	if err != nil {
		return nil, err
	}

	if err := config.EnsureConfigDir(); err != nil {
		return nil, err
	}

	return &app{
		config:   config,
		accounts: registry,
		out:      out,
	}, nil
}

func (a *app) networkManager() *networks.Manager {
	if a.networks == nil {
		a.networks = networks.NewManager(a.config.Paths.GlobalNetworks, a.config.UserNetworksFile())
	}
	return a.networks
}

func (a *app) chatroomManager() *chatrooms.Manager {
	if a.chatrooms != nil {
		return a.chatrooms
	}

	var opts []chatrooms.ManagerOption
	db, err := birdbase.Open(a.config.CacheDB())
	if err != nil {
		logger.Warn("Room info cache disabled", "error", err)
	} else {
		a.cache = db
		opts = append(opts, chatrooms.WithInfoCache(chatrooms.NewInfoCache(db)))
	}

	a.chatrooms = chatrooms.DupSingleton(a.config.ChatroomsFile(), a.accounts, opts...)
	return a.chatrooms
}

func (a *app) close() {
	if a.cache == nil {
		return
	}
	if err := a.cache.Close(); err != nil {
		logger.Error("Failed to close cache", "error", err)
	}
}

func (a *app) run(args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "networks":
		return a.networksCommand(args[1:])
	case "rooms":
		return a.roomsCommand(args[1:])
	case "connect":
		return a.connectCommand(args[1:])
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func main() {
	configPath := flag.String("c", "settings.toml", "Path to configuration file")
	debug := flag.Bool("d", false, "Enable debug logging")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	config, err := settings.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}

	if *debug {
		config.Logging.Level = logger.LevelDebug
	}
	logger.InitWithWriter(config.Logging, os.Stderr)

	a, err := newApp(config, os.Stdout)
	if err != nil {
		logger.Fatal("Failed to start", "error", err)
	}
	defer a.close()

	if err := a.run(flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		logger.Error("Command failed", "error", err)
		a.close()
		os.Exit(1)
	}
}
