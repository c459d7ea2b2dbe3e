package app

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avitaltamir/vibechat/internal/clipboard"
	"github.com/avitaltamir/vibechat/internal/components"
	"github.com/avitaltamir/vibechat/internal/config"
	"github.com/avitaltamir/vibechat/internal/errors"
	"github.com/avitaltamir/vibechat/internal/feed"
	"github.com/avitaltamir/vibechat/internal/logger"
	"github.com/avitaltamir/vibechat/internal/model"
	"github.com/avitaltamir/vibechat/internal/state"
	"github.com/avitaltamir/vibechat/internal/theme"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type staticSource struct {
	snap feed.Snapshot
	err  error
}

func (s staticSource) Load() (feed.Snapshot, error) { return s.snap, s.err }

type recordingNotifier struct {
	titles []string
}

func (n *recordingNotifier) Notify(title, _ string) error {
	n.titles = append(n.titles, title)
	return nil
}

func snapshot() feed.Snapshot {
	return feed.Snapshot{Accounts: []feed.AccountData{
		{
			Account: model.Account{ID: "a1", Number: "+15550001", Name: "Personal"},
			Contacts: []model.Contact{
				{ID: "c1", Name: "Alice", Number: "+15550002", LastActivity: t0.Add(-2 * time.Hour)},
				{ID: "c2", Name: "Bob", Number: "+15550003", LastActivity: t0.Add(-3 * time.Hour)},
			},
			Messages: []model.Message{
				{ID: "m1", Recipient: "c1", Sender: "Alice", Body: "hello", Time: t0.Add(-time.Hour)},
			},
		},
		{Account: model.Account{ID: "a2", Number: "+15550009"}},
	}}
}

type fixture struct {
	*Model
	cfg      config.Config
	clip     *clipboard.Memory
	notifier *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.Default()
	cfg.StateDir = t.TempDir()
	cfg.ContactsPercent = 25
	cfg.Notify = true
	cfg.Bell = false
	th, err := theme.Builtin("mono")
	require.NoError(t, err)

	f := &fixture{cfg: cfg, clip: &clipboard.Memory{}, notifier: &recordingNotifier{}}
	f.Model, err = New(Options{
		Config:    cfg,
		Theme:     th,
		Source:    staticSource{snap: snapshot()},
		Notifier:  f.notifier,
		Clipboard: f.clip,
		Now:       func() time.Time { return t0 },
	})
	require.NoError(t, err)
	f.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	f.Update(feed.LoadedMsg{Snapshot: snapshot()})
	return f
}

func keyMsg(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func focusedIs(t *testing.T, f *fixture, want components.Focusable) {
	t.Helper()
	assert.True(t, f.Focused() == want, "focus is on %T", f.Focused())
}

func TestNew_StartsOnContacts(t *testing.T) {
	f := newFixture(t)

	focusedIs(t, f, f.contacts)
	assert.Equal(t, "a1", f.Account())
	assert.Empty(t, f.Recipient())
	assert.Len(t, f.contacts.Recipients(), 2)
	assert.Contains(t, f.View(), "Contacts")
}

func TestUpdate_FocusCycle(t *testing.T) {
	f := newFixture(t)

	order := []components.Focusable{f.messages, f.typing, f.menuBar, f.contacts}
	for _, want := range order {
		f.Update(keyMsg(tea.KeyTab))
		focusedIs(t, f, want)
	}
	f.Update(keyMsg(tea.KeyShiftTab))
	focusedIs(t, f, f.menuBar)
}

func TestUpdate_CommitsOncePerEvent(t *testing.T) {
	f := newFixture(t)
	scr := f.Screen()

	before := scr.Commits()
	f.Update(keyMsg(tea.KeyDown))
	assert.Equal(t, before+1, scr.Commits())
	assert.Zero(t, scr.Pending())
}

func TestUpdate_UnclaimedKeyDrawsNothing(t *testing.T) {
	f := newFixture(t)
	scr := f.Screen()
	frame := f.View()

	f.Update(keyMsg(tea.KeyCtrlT))

	assert.Zero(t, scr.Pending())
	assert.Equal(t, frame, f.View())
}

func TestUpdate_WindowTooSmall(t *testing.T) {
	th, err := theme.Builtin("mono")
	require.NoError(t, err)
	m, err := New(Options{Config: config.Default(), Theme: th})
	require.NoError(t, err)

	_, cmd := m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})

	require.Error(t, m.Err())
	assert.True(t, errors.Is(m.Err(), errors.KindWindowTooSmall))
	assert.Equal(t, errors.ExitWindowTooSmall, errors.ExitCode(m.Err()))
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestUpdate_Resize(t *testing.T) {
	f := newFixture(t)

	f.Update(tea.WindowSizeMsg{Width: 100, Height: 42})

	assert.Equal(t, 25, f.Layout().ContactsWidth)
	assert.Equal(t, components.Extent{Rows: 40, Cols: 25}, f.contacts.RealExtent())
	assert.Equal(t, components.Position{Row: 1, Col: 25}, f.messages.RealTopLeft())
	assert.Equal(t, 100, f.status.RealExtent().Cols)
}

func openAlice(t *testing.T, f *fixture) {
	t.Helper()
	require.True(t, f.contacts.SelectID("c1"))
	f.Update(keyMsg(tea.KeyEnter))
	require.Equal(t, "c1", f.Recipient())
}

func TestOpenConversation(t *testing.T) {
	f := newFixture(t)

	openAlice(t, f)

	focusedIs(t, f, f.typing)
	require.Len(t, f.messages.Messages(), 1)
	assert.Equal(t, "hello", f.messages.Messages()[0].Body)
	r, ok := f.store.Recipient("a1", "c1")
	require.True(t, ok)
	assert.Zero(t, r.Unread)
	assert.Equal(t, "Personal (+15550001) › Alice", f.status.Text())
}

func TestSend(t *testing.T) {
	f := newFixture(t)
	openAlice(t, f)

	f.Update(runes("hi"))
	f.Update(keyMsg(tea.KeyEnter))

	msgs := f.messages.Messages()
	require.Len(t, msgs, 2)
	last := msgs[1]
	assert.Equal(t, "hi", last.Body)
	assert.True(t, last.Outgoing)
	assert.Equal(t, "Personal", last.Sender)
	assert.Equal(t, t0, last.Time)
	assert.Empty(t, f.typing.Value())
}

func TestSend_WithoutConversation(t *testing.T) {
	f := newFixture(t)
	f.Update(keyMsg(tea.KeyTab))
	f.Update(keyMsg(tea.KeyTab))
	focusedIs(t, f, f.typing)

	f.Update(runes("x"))
	f.Update(keyMsg(tea.KeyEnter))

	assert.Equal(t, "x", f.typing.Value())
	assert.Equal(t, "open a conversation first", f.status.Text())
}

func TestCopySelected(t *testing.T) {
	f := newFixture(t)
	openAlice(t, f)

	f.Update(keyMsg(tea.KeyCtrlY))

	assert.Equal(t, "Alice [2024-05-01 11:00]: hello", f.clip.Text)
	assert.Equal(t, "message copied", f.status.Text())
}

func TestCopySelected_Nothing(t *testing.T) {
	f := newFixture(t)

	f.Update(keyMsg(tea.KeyCtrlY))

	assert.Empty(t, f.clip.Text)
	assert.Equal(t, "nothing to copy", f.status.Text())
}

func TestLoaded_NotifiesIncoming(t *testing.T) {
	f := newFixture(t)
	openAlice(t, f)

	snap := snapshot()
	snap.Accounts[0].Messages = append(snap.Accounts[0].Messages,
		model.Message{ID: "m2", Recipient: "c2", Sender: "Bob", Body: "ping", Time: t0},
		model.Message{ID: "m3", Recipient: "c1", Sender: "Alice", Body: "again", Time: t0},
	)
	f.Update(feed.LoadedMsg{Snapshot: snap})

	assert.Equal(t, []string{"vchat: Bob"}, f.notifier.titles)
	assert.Equal(t, "new message from Bob", f.status.Text())
	assert.Len(t, f.messages.Messages(), 2)
}

func TestLoaded_ErrorKeepsContent(t *testing.T) {
	f := newFixture(t)

	f.Update(feed.LoadedMsg{Err: assert.AnError})

	assert.Equal(t, "a1", f.Account())
	assert.Equal(t, "cannot load messages", f.status.Text())
}

func TestLoaded_RestoresSavedConversation(t *testing.T) {
	th, err := theme.Builtin("mono")
	require.NoError(t, err)
	m, err := New(Options{
		Config: config.Config{StateDir: t.TempDir(), ContactsPercent: 25},
		Theme:  th,
		State:  state.State{LastAccount: "a1", LastRecipient: "c2"},
	})
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.Update(feed.LoadedMsg{Snapshot: snapshot()})

	assert.Equal(t, "a1", m.Account())
	assert.Equal(t, "c2", m.Recipient())
	sel, ok := m.contacts.Selected()
	require.True(t, ok)
	assert.Equal(t, "c2", sel.ID)
}

func TestMenu_OpenAndClose(t *testing.T) {
	f := newFixture(t)

	f.Update(keyMsg(tea.KeyF1))
	focusedIs(t, f, f.menuBar)
	assert.True(t, f.menuBar.ActiveMenu() == f.fileMenu)

	f.Update(keyMsg(tea.KeyEsc))
	assert.Nil(t, f.menuBar.ActiveMenu())
	focusedIs(t, f, f.menuBar)
	assert.Zero(t, f.Screen().Pending())
}

func TestMenu_SwitchAccount(t *testing.T) {
	f := newFixture(t)
	openAlice(t, f)

	f.Update(keyMsg(tea.KeyF2))
	require.Len(t, f.accountsMenu.Items(), 2)
	f.Update(runes("2"))

	assert.Equal(t, "a2", f.Account())
	assert.Empty(t, f.Recipient())
	assert.Empty(t, f.contacts.Recipients())
	assert.Nil(t, f.menuBar.ActiveMenu())
}

func TestMenu_CopyNeedsSelection(t *testing.T) {
	t.Run("disabled without a message", func(t *testing.T) {
		f := newFixture(t)

		f.Update(keyMsg(tea.KeyF1))
		assert.False(t, f.fileMenu.Items()[0].Enabled())
		f.Update(runes("c"))

		assert.Empty(t, f.clip.Text)
	})

	t.Run("enabled once a message is selected", func(t *testing.T) {
		f := newFixture(t)
		openAlice(t, f)

		f.Update(keyMsg(tea.KeyF1))
		assert.True(t, f.fileMenu.Items()[0].Enabled())
		f.Update(runes("c"))

		assert.Equal(t, "Alice [2024-05-01 11:00]: hello", f.clip.Text)
	})
}

func TestAboutDialog_ShowsLogPath(t *testing.T) {
	t.Run("no log file", func(t *testing.T) {
		logger.Reset()
		t.Cleanup(logger.Reset)
		f := newFixture(t)

		f.openAboutDialog()
		require.NotNil(t, f.Dialog())
		assert.Equal(t, []string{"vchat " + Version, "a terminal chat client"}, f.Dialog().Lines())
	})

	t.Run("log file", func(t *testing.T) {
		logger.Reset()
		t.Cleanup(logger.Reset)
		t.Chdir(t.TempDir())
		require.NoError(t, logger.Init("vchat.log"))
		f := newFixture(t)

		f.openAboutDialog()
		require.NotNil(t, f.Dialog())
		assert.Contains(t, f.Dialog().Lines(), "log: vchat.log")
	})
}

func TestQuitDialog(t *testing.T) {
	t.Run("no closes it", func(t *testing.T) {
		f := newFixture(t)

		f.Update(keyMsg(tea.KeyCtrlQ))
		require.NotNil(t, f.Dialog())
		assert.Equal(t, 1, f.Dialog().Selected())

		f.Update(runes("n"))
		assert.Nil(t, f.Dialog())
		focusedIs(t, f, f.contacts)
		assert.NotEmpty(t, f.View())
	})

	t.Run("yes saves state and quits", func(t *testing.T) {
		f := newFixture(t)
		openAlice(t, f)

		f.Update(keyMsg(tea.KeyCtrlQ))
		_, cmd := f.Update(runes("y"))

		assert.NotNil(t, cmd)
		assert.Empty(t, f.View())
		saved := state.LoadFrom(f.cfg.StateDir)
		assert.Equal(t, "a1", saved.LastAccount)
		assert.Equal(t, "c1", saved.LastRecipient)
		assert.Equal(t, 25, saved.ContactsPercent)
		assert.Equal(t, "mono", saved.Theme)
	})

	t.Run("second quit key quits", func(t *testing.T) {
		f := newFixture(t)

		f.Update(keyMsg(tea.KeyCtrlQ))
		f.Update(keyMsg(tea.KeyCtrlQ))

		assert.Empty(t, f.View())
	})

	t.Run("keys it does not use are swallowed", func(t *testing.T) {
		f := newFixture(t)

		f.Update(keyMsg(tea.KeyCtrlQ))
		f.Update(keyMsg(tea.KeyF1))

		assert.NotNil(t, f.Dialog())
		assert.Nil(t, f.menuBar.ActiveMenu())
	})
}

func TestMouse_ClickFocuses(t *testing.T) {
	f := newFixture(t)

	f.Update(press(40, 5))
	focusedIs(t, f, f.messages)

	f.Update(press(40, 20))
	focusedIs(t, f, f.typing)

	f.Update(press(5, 5))
	focusedIs(t, f, f.contacts)
}

func TestMouse_DragDivider(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, 20, f.Layout().ContactsWidth)

	f.Update(press(20, 5))
	f.Update(tea.MouseMsg{X: 32, Y: 5, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	f.Update(tea.MouseMsg{X: 32, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	assert.Equal(t, 40, f.contactsPercent)
	assert.Equal(t, 32, f.Layout().ContactsWidth)
	assert.Equal(t, 32, f.messages.RealTopLeft().Col)
}

func TestClickTracker(t *testing.T) {
	now := t0
	c := clickTracker{threshold: 400 * time.Millisecond, now: func() time.Time { return now }}
	at := components.Position{Row: 3, Col: 4}
	left := tea.MouseButtonLeft

	tests := []struct {
		name    string
		advance time.Duration
		button  tea.MouseButton
		pos     components.Position
		double  bool
	}{
		{"first press", 0, left, at, false},
		{"second press in time", 100 * time.Millisecond, left, at, true},
		{"third press starts over", 100 * time.Millisecond, left, at, false},
		{"too slow", time.Second, left, at, false},
		{"other cell", 100 * time.Millisecond, left, components.Position{Row: 3, Col: 5}, false},
		{"other button", 100 * time.Millisecond, tea.MouseButtonRight, components.Position{Row: 3, Col: 5}, false},
		{"right double", 100 * time.Millisecond, tea.MouseButtonRight, components.Position{Row: 3, Col: 5}, true},
	}
	for _, tt := range tests {
		now = now.Add(tt.advance)
		assert.Equal(t, tt.double, c.press(tt.button, tt.pos), tt.name)
	}
}

func TestKeyHelpLines(t *testing.T) {
	f := newFixture(t)

	lines := keyHelpLines(f.Model)

	require.NotEmpty(t, lines)
	assert.Contains(t, strings.Join(lines, "\n"), "ctrl+q")
	assert.Equal(t, "arrows, pgup/pgdown, home/end move", lines[len(lines)-1])
}
