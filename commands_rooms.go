package main

import (
	"context"
	"empathy/accounts"
	"empathy/helpers"
	"empathy/irc/autojoin"
	"empathy/irc/chatrooms"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func (a *app) roomsCommand(args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "list":
		return a.listRooms(args[1:])
	case "add":
		return a.addRoom(args[1:])
	case "remove":
		c, err := a.findRoom(args[1:], 2)
		if err != nil {
			return err
		}
		a.chatroomManager().Remove(c)
		fmt.Fprintf(a.out, "Removed %s\n", c.Room())
		return nil
	case "favorite", "autoconnect":
		c, err := a.findRoom(args[1:], 3)
		if err != nil {
			return err
		}
		on, err := parseSwitch(args[3])
		if err != nil {
			return err
		}
		if args[0] == "favorite" {
			c.SetFavorite(on)
		} else {
			c.SetAutoConnect(on)
		}
		fmt.Fprintln(a.out, helpers.StripFormatting(c.String()))
		return nil
	default:
		return fmt.Errorf("%w: unknown rooms command %q", errUsage, args[0])
	}
}

func parseSwitch(s string) (bool, error) {
	switch s {
	case "on", "yes", "true":
		return true, nil
	case "off", "no", "false":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

// findRoom resolves <account> <room> from args, which must have want entries
func (a *app) findRoom(args []string, want int) (*chatrooms.Chatroom, error) {
	if len(args) != want {
		return nil, errUsage
	}

	account, err := a.accounts.Get(args[0])
	if err != nil {
		return nil, err
	}

	c := a.chatroomManager().Find(account, args[1])
	if c == nil {
		return nil, fmt.Errorf("no chatroom %s on %s", args[1], account.UniqueName)
	}
	return c, nil
}

func (a *app) listRooms(args []string) error {
	var account *accounts.Account
	switch len(args) {
	case 0:
	case 1:
		found, err := a.accounts.Get(args[0])
		if err != nil {
			return err
		}
		account = found
	default:
		return errUsage
	}

	list := a.chatroomManager().Chatrooms(account)
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No chatrooms")
		return nil
	}

	for _, c := range list {
		fmt.Fprintln(a.out, helpers.StripFormatting(c.String()))

		info := c.Info()
		if info.UpdatedAt.IsZero() {
			continue
		}
		fmt.Fprintf(a.out, "  %d members, updated %s ago", info.MembersCount, helpers.TimeToHumanReadable(info.UpdatedAt))
		if info.Subject != "" {
			fmt.Fprintf(a.out, ": %s", helpers.StripFormatting(info.Subject))
		}
		fmt.Fprintln(a.out)
	}
	return nil
}

func (a *app) addRoom(args []string) error {
	fs := flag.NewFlagSet("rooms add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	auto := fs.Bool("auto", false, "Join on connect")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	rest := fs.Args()
	if len(rest) < 2 || len(rest) > 3 {
		return errUsage
	}

	account, err := a.accounts.Get(rest[0])
	if err != nil {
		return err
	}

	name := ""
	if len(rest) == 3 {
		name = rest[2]
	}

	// bookmarks added from here are always kept
	c := chatrooms.New(account, rest[1], name, *auto)
	c.SetFavorite(true)
	if !a.chatroomManager().Add(c) {
		return fmt.Errorf("chatroom %s already exists on %s", c.Room(), account.UniqueName)
	}

	fmt.Fprintln(a.out, helpers.StripFormatting(c.String()))
	return nil
}

func (a *app) connectCommand(args []string) error {
	if len(args) != 2 {
		return errUsage
	}

	n, err := findNetwork(a.networkManager(), args[0])
	if err != nil {
		return err
	}
	account, err := a.accounts.Get(args[1])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = autojoin.NewSession(n, account, a.chatroomManager()).Connect(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
