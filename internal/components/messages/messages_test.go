package messages

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avitaltamir/vibechat/internal/components"
	"github.com/avitaltamir/vibechat/internal/model"
	"github.com/avitaltamir/vibechat/internal/screen"
	"github.com/avitaltamir/vibechat/internal/theme"
)

var at = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func TestItem_Lines(t *testing.T) {
	look, err := theme.DefaultTheme().Item(theme.MessageItem)
	require.NoError(t, err)

	it := Item{Message: model.Message{Sender: "Alice", Time: at, Body: "the quick brown fox jumps"}, Look: look}
	var got []string
	for _, l := range it.Lines(14, true, false) {
		got = append(got, l.Text())
	}
	assert.Equal(t, []string{"Alice  May 1 09:30", "  the quick", "  brown fox", "  jumps"}, got)

	for _, l := range it.Lines(14, true, false)[1:] {
		assert.LessOrEqual(t, l.Width(), 14, l.Text())
	}
}

func TestWrapWords(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"", 10, []string{""}},
		{"short", 10, []string{"short"}},
		{"a b c d", 3, []string{"a b", "c d"}},
		{"abcdefghij xy", 4, []string{"abcd", "efgh", "ij", "xy"}},
		{"ab abcdefghij", 4, []string{"ab", "abcd", "efgh", "ij"}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapWords(tt.text, tt.width))
		})
	}
}

func TestItem_RoleDrivesAttrs(t *testing.T) {
	look, err := theme.DefaultTheme().Item(theme.MessageItem)
	require.NoError(t, err)

	in := Item{Message: model.Message{Sender: "Bob", Body: "x"}, Look: look}
	out := Item{Message: model.Message{Sender: "me", Body: "x", Outgoing: true}, Look: look}

	assert.Equal(t, look.Attr(theme.RoleReceived, false, theme.PartSender), in.Lines(20, true, false)[0].Segments[0].Attr)
	assert.Equal(t, look.Attr(theme.RoleSent, true, theme.PartSender), out.Lines(20, true, true)[0].Segments[0].Attr)
}

func TestItem_MultipleParagraphs(t *testing.T) {
	look, err := theme.DefaultTheme().Item(theme.MessageItem)
	require.NoError(t, err)

	it := Item{Message: model.Message{Sender: "a", Body: "one\ntwo"}, Look: look}
	lines := it.Lines(20, true, false)
	require.Len(t, lines, 3)
	assert.Equal(t, "  two", lines[2].Text())
}

func newPane(t *testing.T) *Pane {
	t.Helper()
	p, err := New(screen.New(10, 30, io.Discard), theme.DefaultTheme(), components.Extent{Rows: 10, Cols: 30}, components.Position{})
	require.NoError(t, err)
	return p
}

func TestPane_SetConversation(t *testing.T) {
	p := newPane(t)
	msgs := []model.Message{
		{ID: "1", Sender: "Alice", Body: "hello"},
		{ID: "2", Sender: "me", Body: strings.Repeat("long ", 20), Outgoing: true},
	}

	p.SetConversation(model.Recipient{ID: "c1", Name: "Alice"}, msgs)

	assert.Equal(t, "Alice", p.Title())
	sel, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, "2", sel.ID, "newest is selected")
	assert.True(t, p.Records()[0].Expanded)

	assert.Equal(t, components.Rejected, p.ProcessKey(tea.KeyMsg{Type: tea.KeySpace}), "messages do not collapse")

	p.ProcessKey(tea.KeyMsg{Type: tea.KeyUp})
	sel, _ = p.Selected()
	assert.Equal(t, "1", sel.ID)

	p.Clear()
	assert.Equal(t, Title, p.Title())
	_, ok = p.Selected()
	assert.False(t, ok)
}
