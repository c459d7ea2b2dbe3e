// Package messages implements the conversation pane.
package messages

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/avitaltamir/vibechat/internal/components"
	"github.com/avitaltamir/vibechat/internal/components/pad"
	"github.com/avitaltamir/vibechat/internal/model"
	"github.com/avitaltamir/vibechat/internal/screen"
	"github.com/avitaltamir/vibechat/internal/theme"
)

// Title is shown while no conversation is open.
const Title = "Messages"

// TimeFormat is how message times are printed in headers.
const TimeFormat = "Jan 2 15:04"

// Item renders one message: a header with sender and time, then the body
// wrapped to the viewport.
type Item struct {
	Message model.Message
	Look    theme.ItemLook
}

func (it Item) role() string {
	if it.Message.Outgoing {
		return theme.RoleSent
	}
	return theme.RoleReceived
}

// Lines implements pad.Content. Messages are always expanded.
func (it Item) Lines(width int, _, selected bool) []pad.Line {
	role := it.role()
	a := func(part string) screen.Attr { return it.Look.Attr(role, selected, part) }
	bg := a(theme.PartBg)

	head := []pad.Segment{{Text: it.Message.Sender, Attr: a(theme.PartSender)}}
	if !it.Message.Time.IsZero() {
		head = append(head, pad.Segment{Text: "  " + it.Message.Time.Format(TimeFormat), Attr: a(theme.PartTime)})
	}
	lines := []pad.Line{{Bg: bg, Segments: head}}

	wrap := max(width-2, 1)
	for _, para := range strings.Split(it.Message.Body, "\n") {
		for _, l := range wrapWords(para, wrap) {
			lines = append(lines, pad.Line{Bg: bg, Segments: []pad.Segment{{Text: "  " + l, Attr: a(theme.PartBody)}}})
		}
	}
	return lines
}

// wrapWords breaks text at spaces so no line is wider than width. Words
// wider than a line are broken by runewidth.Wrap.
func wrapWords(text string, width int) []string {
	var lines []string
	cur, curWidth := "", 0
	flush := func() {
		lines = append(lines, cur)
		cur, curWidth = "", 0
	}
	for _, word := range strings.Fields(text) {
		w := runewidth.StringWidth(word)
		switch {
		case w > width:
			if cur != "" {
				flush()
			}
			parts := strings.Split(runewidth.Wrap(word, width), "\n")
			lines = append(lines, parts[:len(parts)-1]...)
			cur = parts[len(parts)-1]
			curWidth = runewidth.StringWidth(cur)
		case cur == "":
			cur, curWidth = word, w
		case curWidth+1+w <= width:
			cur += " " + word
			curWidth += 1 + w
		default:
			flush()
			cur, curWidth = word, w
		}
	}
	if cur != "" || len(lines) == 0 {
		flush()
	}
	return lines
}

// Pane shows the conversation with the current recipient.
type Pane struct {
	*pad.Pad

	look     theme.ItemLook
	messages []model.Message
	current  model.Recipient
}

// New creates the messages pane.
func New(scr *screen.Screen, th *theme.Theme, ext components.Extent, topLeft components.Position) (*Pane, error) {
	p, err := pad.New(scr, th, pad.Options{
		WindowOptions: components.WindowOptions{ThemeKey: theme.MessagesWindow, Title: Title},
		Fixed:         true,
	}, ext, topLeft)
	if err != nil {
		return nil, err
	}
	look, err := th.Item(theme.MessageItem)
	if err != nil {
		return nil, err
	}
	return &Pane{Pad: p, look: look}, nil
}

// SetConversation shows msgs, oldest first, and selects the newest.
func (m *Pane) SetConversation(r model.Recipient, msgs []model.Message) {
	m.current = r
	m.messages = msgs
	contents := make([]pad.Content, len(msgs))
	for i, msg := range msgs {
		contents[i] = Item{Message: msg, Look: m.look}
	}
	m.SetItems(contents)
	if r.Name != "" {
		m.SetTitle(r.Name)
	} else {
		m.SetTitle(Title)
	}
	if n := len(msgs); n > 0 {
		_ = m.Select(n - 1)
	}
}

// Clear empties the pane.
func (m *Pane) Clear() {
	m.SetConversation(model.Recipient{}, nil)
}

// Recipient returns whose conversation is shown.
func (m *Pane) Recipient() model.Recipient { return m.current }

// Messages returns the messages shown.
func (m *Pane) Messages() []model.Message { return m.messages }

// Selected returns the selected message.
func (m *Pane) Selected() (model.Message, bool) {
	i, ok := m.Pad.Selected()
	if !ok || i >= len(m.messages) {
		return model.Message{}, false
	}
	return m.messages[i], true
}
