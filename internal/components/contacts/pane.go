package contacts

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/avitaltamir/vibechat/internal/components"
	"github.com/avitaltamir/vibechat/internal/components/pad"
	"github.com/avitaltamir/vibechat/internal/keys"
	"github.com/avitaltamir/vibechat/internal/logger"
	"github.com/avitaltamir/vibechat/internal/model"
	"github.com/avitaltamir/vibechat/internal/screen"
	"github.com/avitaltamir/vibechat/internal/theme"
)

// Title is the pane title without a filter.
const Title = "Contacts"

// Pane lists the recipients of the current account. Typing narrows the
// list with a fuzzy filter shown in the title.
type Pane struct {
	*pad.Pad

	contactLook, groupLook theme.ItemLook

	all    []model.Recipient
	shown  []model.Recipient
	filter string
	now    func() time.Time
	onOpen func(model.Recipient) components.Result

	keys keys.Map
	log  *slog.Logger
}

// New creates the contacts pane.
func New(scr *screen.Screen, th *theme.Theme, ext components.Extent, topLeft components.Position) (*Pane, error) {
	p, err := pad.New(scr, th, pad.Options{WindowOptions: components.WindowOptions{ThemeKey: theme.ContactsWindow, Title: Title}}, ext, topLeft)
	if err != nil {
		return nil, err
	}
	contactLook, err := th.Item(theme.ContactItem)
	if err != nil {
		return nil, err
	}
	groupLook, err := th.Item(theme.GroupItem)
	if err != nil {
		return nil, err
	}
	c := &Pane{
		Pad:         p,
		contactLook: contactLook,
		groupLook:   groupLook,
		now:         time.Now,
		keys:        keys.Default(),
		log:         logger.ComponentLogger("contacts"),
	}
	p.SetOnActivate(func(i int, _ components.State) components.Result {
		if c.onOpen == nil || i >= len(c.shown) {
			return components.Continue
		}
		return c.onOpen(c.shown[i])
	})
	return c, nil
}

// SetClock replaces the clock used for "active ... ago".
func (c *Pane) SetClock(now func() time.Time) { c.now = now }

// SetOnOpen installs the hook run when a recipient is activated.
func (c *Pane) SetOnOpen(fn func(model.Recipient) components.Result) { c.onOpen = fn }

// SetRecipients replaces the list. rs is expected in display order. The
// selected recipient stays selected if it is still listed.
func (c *Pane) SetRecipients(rs []model.Recipient) {
	selected, had := c.Selected()
	c.all = rs
	c.apply()
	if had {
		c.SelectID(selected.ID)
	}
}

// Recipients returns the recipients currently listed.
func (c *Pane) Recipients() []model.Recipient { return c.shown }

// Filter returns the type-ahead filter.
func (c *Pane) Filter() string { return c.filter }

// SetFilter narrows the list to recipients whose name fuzzy-matches f.
func (c *Pane) SetFilter(f string) {
	selected, had := c.Selected()
	c.filter = f
	c.apply()
	if had && c.SelectID(selected.ID) {
		return
	}
	if len(c.shown) > 0 {
		_ = c.Select(0)
	}
}

func (c *Pane) apply() {
	c.shown = filter(c.all, c.filter)
	contents := make([]pad.Content, len(c.shown))
	for i, r := range c.shown {
		look := c.contactLook
		if r.Kind == model.KindGroup {
			look = c.groupLook
		}
		contents[i] = Item{Recipient: r, Look: look, Now: c.now}
	}
	c.SetItems(contents)
	if c.filter == "" {
		c.SetTitle(Title)
	} else {
		c.SetTitle(fmt.Sprintf("%s /%s", Title, c.filter))
	}
}

func filter(rs []model.Recipient, query string) []model.Recipient {
	query = strings.TrimSpace(query)
	if query == "" {
		return rs
	}
	out := make([]model.Recipient, 0, len(rs))
	for _, r := range rs {
		if fuzzy.MatchNormalizedFold(query, r.Name) {
			out = append(out, r)
		}
	}
	return out
}

// Selected returns the selected recipient.
func (c *Pane) Selected() (model.Recipient, bool) {
	i, ok := c.Pad.Selected()
	if !ok || i >= len(c.shown) {
		return model.Recipient{}, false
	}
	return c.shown[i], true
}

// SelectID selects the recipient with id. It reports whether it is listed.
func (c *Pane) SelectID(id string) bool {
	for i, r := range c.shown {
		if r.ID == id {
			return c.Select(i) == nil
		}
	}
	return false
}

// ProcessKey edits the filter with printable keys, Backspace and Escape,
// and leaves everything else to the pad.
func (c *Pane) ProcessKey(msg tea.KeyMsg) components.Result {
	if !c.Shown() {
		return components.Continue
	}
	switch {
	case keys.IsPrintable(msg):
		c.SetFilter(c.filter + string(msg.Runes))
		return components.Handled
	case key.Matches(msg, c.keys.Back) && c.filter != "":
		r := []rune(c.filter)
		c.SetFilter(string(r[:len(r)-1]))
		return components.Handled
	case key.Matches(msg, c.keys.Escape) && c.filter != "":
		c.SetFilter("")
		return components.Handled
	}
	return c.Pad.ProcessKey(msg)
}
