// Package feed supplies accounts, recipients and messages to the client
// and reports when they change.
package feed

import (
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/avitaltamir/vibechat/internal/errors"
	"github.com/avitaltamir/vibechat/internal/model"
)

// AccountData is everything known about one account.
type AccountData struct {
	Account  model.Account   `yaml:"account"`
	Contacts []model.Contact `yaml:"contacts"`
	Groups   []model.Group   `yaml:"groups"`
	Messages []model.Message `yaml:"messages"`
}

// Snapshot is the complete content at one point in time.
type Snapshot struct {
	Accounts []AccountData `yaml:"accounts"`
}

// Source produces snapshots.
type Source interface {
	Load() (Snapshot, error)
}

// FileSource reads a YAML or JSON fixture file.
type FileSource struct {
	Path string
}

// Load parses the file. Messages without an id get one derived from their
// content, so reloading an unchanged file yields the same ids.
func (f FileSource) Load() (Snapshot, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return Snapshot{}, errors.FeedLoadFailed(f.Path, err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, errors.FeedLoadFailed(f.Path, err)
	}
	for i := range snap.Accounts {
		assignIDs(snap.Accounts[i].Account.ID, snap.Accounts[i].Messages)
	}
	return snap, nil
}

// assignIDs fills in missing message ids. Identical messages are told apart
// by how many copies came before them.
func assignIDs(accountID string, msgs []model.Message) {
	copies := make(map[string]int)
	for j := range msgs {
		m := &msgs[j]
		if m.ID != "" {
			continue
		}
		key := strings.Join([]string{accountID, m.Recipient, m.Sender, m.Time.UTC().Format(time.RFC3339Nano), m.Body}, "\x00")
		n := copies[key]
		copies[key]++
		m.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(key+"\x00"+strconv.Itoa(n))).String()
	}
}

// LoadedMsg carries the result of Load.
type LoadedMsg struct {
	Snapshot Snapshot
	Err      error
}

// Load returns a command that reads src.
func Load(src Source) tea.Cmd {
	return func() tea.Msg {
		snap, err := src.Load()
		return LoadedMsg{Snapshot: snap, Err: err}
	}
}

// Store is the in-memory copy of the latest snapshot plus the messages
// sent locally since start.
type Store struct {
	snap   Snapshot
	seen   map[string]bool
	read   map[string]bool
	local  map[string][]model.Message
	loaded bool
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{seen: make(map[string]bool), read: make(map[string]bool), local: make(map[string][]model.Message)}
}

// Replace installs snap and returns the incoming messages that were not
// in the previous snapshot. The first snapshot reports nothing new.
// Messages marked read earlier stay read.
func (s *Store) Replace(snap Snapshot) []model.Message {
	var fresh []model.Message
	for i := range snap.Accounts {
		ad := &snap.Accounts[i]
		for j := range ad.Messages {
			if s.read[ad.Messages[j].ID] {
				ad.Messages[j].Read = true
			}
		}
		for _, m := range ad.Messages {
			if s.seen[m.ID] {
				continue
			}
			s.seen[m.ID] = true
			if s.loaded && !m.Outgoing && !m.Read {
				fresh = append(fresh, m)
			}
		}
		for _, m := range s.local[ad.Account.ID] {
			if !containsID(ad.Messages, m.ID) {
				ad.Messages = append(ad.Messages, m)
			}
		}
	}
	s.snap = snap
	s.loaded = true
	return fresh
}

func containsID(ms []model.Message, id string) bool {
	for _, m := range ms {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Accounts returns the accounts in snapshot order.
func (s *Store) Accounts() []model.Account {
	out := make([]model.Account, len(s.snap.Accounts))
	for i, ad := range s.snap.Accounts {
		out[i] = ad.Account
	}
	return out
}

func (s *Store) account(id string) *AccountData {
	for i := range s.snap.Accounts {
		if s.snap.Accounts[i].Account.ID == id {
			return &s.snap.Accounts[i]
		}
	}
	return nil
}

// HasAccount reports whether the account exists.
func (s *Store) HasAccount(id string) bool { return s.account(id) != nil }

// Recipients returns the account's contacts and groups, newest activity
// first, with unread counts filled in.
func (s *Store) Recipients(accountID string) []model.Recipient {
	ad := s.account(accountID)
	if ad == nil {
		return nil
	}
	unread := make(map[string]int)
	last := make(map[string]model.Message)
	for _, m := range ad.Messages {
		if !m.Outgoing && !m.Read {
			unread[m.Recipient]++
		}
		if prev, ok := last[m.Recipient]; !ok || m.Time.After(prev.Time) {
			last[m.Recipient] = m
		}
	}
	out := make([]model.Recipient, 0, len(ad.Contacts)+len(ad.Groups))
	add := func(r model.Recipient) {
		r.Unread = unread[r.ID]
		if m, ok := last[r.ID]; ok && m.Time.After(r.LastActivity) {
			r.LastActivity = m.Time
		}
		out = append(out, r)
	}
	for _, c := range ad.Contacts {
		add(c.Recipient())
	}
	for _, g := range ad.Groups {
		add(g.Recipient())
	}
	model.SortByRecency(out)
	return out
}

// Recipient looks up one recipient of the account.
func (s *Store) Recipient(accountID, id string) (model.Recipient, bool) {
	for _, r := range s.Recipients(accountID) {
		if r.ID == id {
			return r, true
		}
	}
	return model.Recipient{}, false
}

// Conversation returns the messages exchanged with a recipient, oldest
// first.
func (s *Store) Conversation(accountID, recipientID string) []model.Message {
	ad := s.account(accountID)
	if ad == nil {
		return nil
	}
	var out []model.Message
	for _, m := range ad.Messages {
		if m.Recipient == recipientID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

// Append adds a locally sent message. It survives later snapshots.
func (s *Store) Append(accountID string, m model.Message) (model.Message, error) {
	ad := s.account(accountID)
	if ad == nil {
		return m, errors.E(errors.Op("feed.Append"), errors.KindNotFound, "unknown account "+accountID)
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	ad.Messages = append(ad.Messages, m)
	s.local[accountID] = append(s.local[accountID], m)
	s.seen[m.ID] = true
	return m, nil
}

// MarkRead marks every incoming message of a conversation as read and
// returns how many changed.
func (s *Store) MarkRead(accountID, recipientID string) int {
	ad := s.account(accountID)
	if ad == nil {
		return 0
	}
	n := 0
	for i := range ad.Messages {
		m := &ad.Messages[i]
		if m.Recipient == recipientID && !m.Outgoing && !m.Read {
			m.Read = true
			s.read[m.ID] = true
			n++
		}
	}
	return n
}
