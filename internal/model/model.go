// Package model holds the chat data shown by the client.
package model

import (
	"sort"
	"strings"
	"time"
)

// Account is one linked phone number.
type Account struct {
	ID     string `yaml:"id"`
	Number string `yaml:"number"`
	Name   string `yaml:"name,omitempty"`
}

// Label is what menus show for the account.
func (a Account) Label() string {
	if a.Name != "" {
		return a.Name + " (" + a.Number + ")"
	}
	return a.Number
}

// Contact is a single correspondent.
type Contact struct {
	ID           string    `yaml:"id"`
	Name         string    `yaml:"name"`
	Number       string    `yaml:"number"`
	LastActivity time.Time `yaml:"last_activity"`
}

// Group is a conversation with several members.
type Group struct {
	ID           string    `yaml:"id"`
	Name         string    `yaml:"name"`
	Members      []string  `yaml:"members"`
	LastActivity time.Time `yaml:"last_activity"`
}

// Message is one chat message. Recipient is the id of the contact or group
// the conversation belongs to.
type Message struct {
	ID        string    `yaml:"id"`
	Recipient string    `yaml:"recipient"`
	Sender    string    `yaml:"sender"`
	Body      string    `yaml:"body"`
	Time      time.Time `yaml:"time"`
	Outgoing  bool      `yaml:"outgoing,omitempty"`
	Read      bool      `yaml:"read,omitempty"`
}

// RecipientKind distinguishes contacts from groups.
type RecipientKind int

const (
	KindContact RecipientKind = iota
	KindGroup
)

// Recipient is the view of a contact or group that the contacts pane shows.
type Recipient struct {
	Kind         RecipientKind
	ID           string
	Name         string
	Number       string
	Members      []string
	LastActivity time.Time
	Unread       int
}

// Recipient returns the contact's recipient view.
func (c Contact) Recipient() Recipient {
	return Recipient{Kind: KindContact, ID: c.ID, Name: c.displayName(), Number: c.Number, LastActivity: c.LastActivity}
}

func (c Contact) displayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Number
}

// Recipient returns the group's recipient view.
func (g Group) Recipient() Recipient {
	return Recipient{Kind: KindGroup, ID: g.ID, Name: g.Name, Members: g.Members, LastActivity: g.LastActivity}
}

// SortByRecency orders recipients by last activity, newest first. Ties
// are broken by name.
func SortByRecency(rs []Recipient) {
	sort.SliceStable(rs, func(i, j int) bool {
		a, b := rs[i], rs[j]
		if !a.LastActivity.Equal(b.LastActivity) {
			return a.LastActivity.After(b.LastActivity)
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}
