package accounts

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/lrstanley/girc"
)

var ErrUnknownAccount = errors.New("unknown account")

type (
	// Account is a messaging account chatrooms belong to. UniqueName is the
	// stable identifier written to the chatrooms file.
	Account struct {
		UniqueName  string `toml:"uniqueName" validate:"required"`
		Protocol    string `toml:"protocol" validate:"omitempty,oneof=irc jabber msn sip local-xmpp"`
		DisplayName string `toml:"displayName"`
		Nick        string `toml:"nick"`
		User        string `toml:"user"`
		RealName    string `toml:"realName"`
		Network     string `toml:"network"`
	}

	// Store resolves account references by unique name
	Store interface {
		Lookup(uniqueName string) (*Account, bool)
	}

	// Registry is an in-memory Store
	Registry struct {
		accounts map[string]*Account
	}
)

func (a *Account) String() string {
	if a == nil {
		return "<none>"
	}
	if a.DisplayName != "" {
		return girc.Fmt(fmt.Sprintf("{b}%s{b} (%s)", a.DisplayName, a.UniqueName))
	}
	return a.UniqueName
}

// Equal compares accounts by unique name
func (a *Account) Equal(other *Account) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.UniqueName == other.UniqueName
}

// NewRegistry builds a registry from the given accounts. Invalid and duplicate
// accounts are rejected.
func NewRegistry(list ...Account) (*Registry, error) {
	r := &Registry{accounts: make(map[string]*Account, len(list))}
	for _, account := range list {
		if err := r.Add(account); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add validates and registers an account
func (r *Registry) Add(account Account) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(account); err != nil {
		return fmt.Errorf("invalid account %q: %w", account.UniqueName, err)
	}
	if _, ok := r.accounts[account.UniqueName]; ok {
		return fmt.Errorf("duplicate account %q", account.UniqueName)
	}

	a := account
	r.accounts[a.UniqueName] = &a
	return nil
}

func (r *Registry) Lookup(uniqueName string) (*Account, bool) {
	a, ok := r.accounts[uniqueName]
	return a, ok
}

// Get is Lookup returning ErrUnknownAccount when absent
func (r *Registry) Get(uniqueName string) (*Account, error) {
	a, ok := r.accounts[uniqueName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, uniqueName)
	}
	return a, nil
}

// All returns the registered accounts sorted by unique name
func (r *Registry) All() []*Account {
	list := make([]*Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].UniqueName < list[j].UniqueName
	})
	return list
}
