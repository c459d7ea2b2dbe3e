// Package contacts implements the recipient list pane.
package contacts

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/avitaltamir/vibechat/internal/components/pad"
	"github.com/avitaltamir/vibechat/internal/model"
	"github.com/avitaltamir/vibechat/internal/theme"
)

// Item renders one recipient. Collapsed it is a single line of indicator,
// name and unread badge; expanded it adds the number or member list and
// the last activity.
type Item struct {
	Recipient model.Recipient
	Look      theme.ItemLook
	Now       func() time.Time
}

func (it Item) role() string {
	if it.Recipient.Kind == model.KindGroup {
		return theme.RoleGroup
	}
	return theme.RoleContact
}

// Lines implements pad.Content.
func (it Item) Lines(width int, expanded, selected bool) []pad.Line {
	role := it.role()
	attr := func(part string) pad.Segment {
		return pad.Segment{Attr: it.Look.Attr(role, selected, part)}
	}
	bg := it.Look.Attr(role, selected, theme.PartBg)

	indicator := it.Look.Collapsed
	if expanded {
		indicator = it.Look.Expanded
	}
	head := []pad.Segment{
		{Text: string(indicator) + " ", Attr: bg},
		withText(attr(theme.PartName), it.Recipient.Name),
	}
	if n := it.Recipient.Unread; n > 0 {
		head = append(head, withText(attr(theme.PartUnread), fmt.Sprintf(" (%d)", n)))
	}
	lines := []pad.Line{{Bg: bg, Segments: head}}
	if !expanded {
		return lines
	}

	detail := it.Recipient.Number
	if it.Recipient.Kind == model.KindGroup {
		detail = fmt.Sprintf("%d members: %s", len(it.Recipient.Members), strings.Join(it.Recipient.Members, ", "))
	}
	if detail != "" {
		lines = append(lines, pad.Line{Bg: bg, Segments: []pad.Segment{withText(attr(theme.PartDetail), "  "+detail)}})
	}
	lines = append(lines, pad.Line{Bg: bg, Segments: []pad.Segment{withText(attr(theme.PartTime), "  "+it.activity())}})
	return lines
}

func (it Item) activity() string {
	if it.Recipient.LastActivity.IsZero() {
		return "no activity"
	}
	now := time.Now()
	if it.Now != nil {
		now = it.Now()
	}
	return "active " + humanize.RelTime(it.Recipient.LastActivity, now, "ago", "from now")
}

func withText(s pad.Segment, text string) pad.Segment {
	s.Text = text
	return s
}
