// Package app is the main window of vchat: it owns the screen, the panes
// and the application state, and dispatches every terminal event.
package app

import (
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avitaltamir/vibechat/internal/clipboard"
	"github.com/avitaltamir/vibechat/internal/components"
	"github.com/avitaltamir/vibechat/internal/components/contacts"
	"github.com/avitaltamir/vibechat/internal/components/dialog"
	"github.com/avitaltamir/vibechat/internal/components/menu"
	"github.com/avitaltamir/vibechat/internal/components/messages"
	"github.com/avitaltamir/vibechat/internal/components/typing"
	"github.com/avitaltamir/vibechat/internal/config"
	"github.com/avitaltamir/vibechat/internal/errors"
	"github.com/avitaltamir/vibechat/internal/feed"
	"github.com/avitaltamir/vibechat/internal/focus"
	"github.com/avitaltamir/vibechat/internal/keys"
	"github.com/avitaltamir/vibechat/internal/layout"
	"github.com/avitaltamir/vibechat/internal/logger"
	"github.com/avitaltamir/vibechat/internal/model"
	"github.com/avitaltamir/vibechat/internal/notification"
	"github.com/avitaltamir/vibechat/internal/screen"
	"github.com/avitaltamir/vibechat/internal/state"
	"github.com/avitaltamir/vibechat/internal/theme"
)

// Version is the application version, set at build time via ldflags
var Version = "dev"

// FlashDuration is how long a flash message stays on the status bar.
const FlashDuration = 3 * time.Second

// Options are the collaborators of the main window. Zero values get
// working defaults.
type Options struct {
	Config config.Config
	Theme  *theme.Theme
	// State is what the previous run saved.
	State     state.State
	Source    feed.Source
	Watcher   *feed.Watcher
	Notifier  notification.Notifier
	Clipboard clipboard.Writer
	// BellOut receives BEL characters when Config.Bell is set. It may be the
	// terminal the program renders to.
	BellOut io.Writer
	Now     func() time.Time
}

// Model is the root application model. All application state lives here;
// nothing is kept in package variables.
type Model struct {
	cfg  config.Config
	th   *theme.Theme
	scr  *screen.Screen
	keys keys.Map
	log  *slog.Logger

	// Components
	menuBar      *menu.Bar
	fileMenu     *menu.Menu
	accountsMenu *menu.Menu
	helpMenu     *menu.Menu
	contacts     *contacts.Pane
	messages     *messages.Pane
	typing       *typing.Pane
	status       *components.StatusBar
	ring         *focus.Ring
	dialog       *dialog.Dialog
	quitDialog   bool

	// Layout
	layout          layout.Layout
	contactsPercent int
	width, height   int
	ready           bool
	resizing        bool
	clicks          clickTracker

	// Content
	store    *feed.Store
	source   feed.Source
	watcher  *feed.Watcher
	loaded   bool
	notifier notification.Notifier
	clip     clipboard.Writer
	now      func() time.Time

	// Application state
	account   string
	recipient string
	saved     state.State
	flashSeq  int

	cmds     []tea.Cmd
	err      error
	quitting bool
}

// New builds the main window at the minimum size. The first
// tea.WindowSizeMsg lays it out for the real terminal.
func New(opts Options) (*Model, error) {
	th := opts.Theme
	if th == nil {
		th = theme.DefaultTheme()
	}
	bell := opts.BellOut
	if bell == nil || !opts.Config.Bell {
		bell = io.Discard
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notification.Nop{}
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.System{}
	}
	threshold := opts.Config.DoubleClick
	if threshold <= 0 {
		threshold = config.DefaultDoubleClick
	}

	m := &Model{
		cfg:             opts.Config,
		th:              th,
		scr:             screen.New(layout.MinHeight, layout.MinWidth, bell),
		keys:            keys.Default(),
		log:             logger.ComponentLogger("app"),
		contactsPercent: layout.ClampPercent(opts.Config.ContactsPercent),
		width:           layout.MinWidth,
		height:          layout.MinHeight,
		clicks:          clickTracker{threshold: threshold, now: now},
		store:           feed.NewStore(),
		source:          opts.Source,
		watcher:         opts.Watcher,
		notifier:        notifier,
		clip:            clip,
		now:             now,
		saved:           opts.State,
	}
	m.layout = layout.Calculate(m.width, m.height, m.contactsPercent)
	if err := m.build(); err != nil {
		return nil, err
	}
	m.updateStatus()
	return m, nil
}

func bounds(x, y, w, h int) (components.Extent, components.Position) {
	return components.Extent{Rows: h, Cols: w}, components.Position{Row: y, Col: x}
}

// build creates every component. Any theme key missing from the theme
// fails here, before the terminal is taken over.
func (m *Model) build() error {
	var err error
	l := m.layout

	if m.menuBar, err = menu.NewBar(m.scr, m.th, l.TotalWidth, components.Position{}); err != nil {
		return err
	}
	if m.fileMenu, err = menu.New(m.scr, m.th, theme.FileMenu, m.fileEntries(), components.Position{}); err != nil {
		return err
	}
	if m.accountsMenu, err = menu.New(m.scr, m.th, theme.AccountsMenu, nil, components.Position{}); err != nil {
		return err
	}
	if m.helpMenu, err = menu.New(m.scr, m.th, theme.HelpMenu, m.helpEntries(), components.Position{}); err != nil {
		return err
	}
	for _, item := range []struct {
		label string
		menu  *menu.Menu
	}{
		{"_F_ile", m.fileMenu},
		{"_A_ccounts", m.accountsMenu},
		{"_H_elp", m.helpMenu},
	} {
		if err := m.menuBar.Add(item.label, item.menu); err != nil {
			return err
		}
	}

	ext, pos := bounds(l.ContactsBounds())
	if m.contacts, err = contacts.New(m.scr, m.th, ext, pos); err != nil {
		return err
	}
	ext, pos = bounds(l.MessagesBounds())
	if m.messages, err = messages.New(m.scr, m.th, ext, pos); err != nil {
		return err
	}
	ext, pos = bounds(l.TypingBounds())
	if m.typing, err = typing.New(m.scr, m.th, ext, pos); err != nil {
		return err
	}
	x, y, w, _ := l.StatusBarBounds()
	if m.status, err = components.NewStatusBar(m.scr, m.th, w, components.Position{Row: y, Col: x}); err != nil {
		return err
	}

	m.contacts.SetClock(m.now)
	m.contacts.SetOnOpen(m.openConversation)
	m.typing.SetOnSubmit(m.send)
	m.ring = focus.NewRing(m.contacts, m.messages, m.typing, m.menuBar)
	return nil
}

// Init starts loading content and watching it for changes.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.reload()}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.Wait())
	}
	return tea.Batch(cmds...)
}

// Update dispatches one message and commits the screen exactly once.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	open := m.menuBar.ActiveMenu()
	m.syncMenus()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if m.ready {
			m.handleKey(msg)
		}

	case tea.MouseMsg:
		if m.ready {
			m.handleMouse(msg)
		}

	case feed.LoadedMsg:
		m.handleLoaded(msg)

	case feed.ChangedMsg:
		m.log.Debug("content changed", "path", msg.Path, "op", msg.Op.String())
		m.cmds = append(m.cmds, m.reload(), m.watcher.Wait())

	case flashExpiredMsg:
		if msg.seq == m.flashSeq {
			m.status.ClearFlash()
			m.status.Redraw()
		}

	case StatusMsg:
		m.flash(msg.Text)

	case ErrorMsg:
		m.log.Error("command failed", "error", msg.Err)
		m.flash(msg.Err.Error())
	}

	// A menu that closed or gave way to another leaves its cells behind.
	if open != nil && open != m.menuBar.ActiveMenu() {
		m.redrawAll()
	}
	m.scr.Commit()

	cmds := m.cmds
	m.cmds = nil
	return m, tea.Batch(cmds...)
}

// View returns the last committed frame.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return m.scr.Frame()
}

// Err returns the error that ended the program, if any.
func (m *Model) Err() error { return m.err }

// Screen returns the virtual screen.
func (m *Model) Screen() *screen.Screen { return m.scr }

// Focused returns the component holding keyboard focus.
func (m *Model) Focused() components.Focusable { return m.ring.Holder() }

// Account returns the current account id.
func (m *Model) Account() string { return m.account }

// Recipient returns the id of the open conversation.
func (m *Model) Recipient() string { return m.recipient }

// Dialog returns the open dialog, or nil.
func (m *Model) Dialog() *dialog.Dialog { return m.dialog }

// Layout returns the current layout.
func (m *Model) Layout() layout.Layout { return m.layout }

func (m *Model) handleResize(width, height int) {
	m.width, m.height = width, height
	if !layout.Fits(width, height) {
		m.err = errors.WindowTooSmall(width, height, layout.MinWidth, layout.MinHeight)
		m.log.Error("window too small", "width", width, "height", height)
		m.quitting = true
		m.cmds = append(m.cmds, tea.Quit)
		return
	}
	m.scr.Resize(height, width)
	m.relayout()
	m.ready = true
	m.redrawAll()
}

// relayout moves and resizes every component for the current size.
func (m *Model) relayout() {
	m.layout = layout.Calculate(m.width, m.height, m.contactsPercent)
	l := m.layout

	_, _, w, _ := l.MenuBarBounds()
	m.menuBar.Resize(w, components.Position{})
	ext, pos := bounds(l.ContactsBounds())
	m.contacts.Resize(ext, pos, true, true)
	ext, pos = bounds(l.MessagesBounds())
	m.messages.Resize(ext, pos, true, true)
	ext, pos = bounds(l.TypingBounds())
	m.typing.Resize(ext, pos, true, true)
	x, y, w, _ := l.StatusBarBounds()
	m.status.Resize(w, components.Position{Row: y, Col: x})
	if m.dialog != nil {
		m.centre(m.dialog)
	}
}

// redrawAll repaints everything in z-order: panes, bars, open menu, dialog.
func (m *Model) redrawAll() {
	m.contacts.Redraw()
	m.messages.Redraw()
	m.typing.Redraw()
	m.status.Redraw()
	m.menuBar.Redraw()
	if m.dialog != nil {
		m.dialog.Redraw()
	}
}

// settle acts on a handler's result: Handled redraws the handler, Quit
// quits, Rejected and Continue do nothing.
func (m *Model) settle(target components.Component, r components.Result) {
	switch r {
	case components.Handled:
		target.Redraw()
	case components.Quit:
		m.quit()
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	if m.dialog != nil {
		r := m.dialog.ProcessKey(msg)
		if r == components.Continue && m.quitDialog && key.Matches(msg, m.keys.Quit) {
			r = components.Quit
		}
		m.settleDialog(r)
		return
	}

	holder := m.ring.Holder()
	r := holder.ProcessKey(msg)
	m.log.Debug("key", "key", msg.String(), "result", r.String())
	if r != components.Continue {
		m.settle(holder, r)
		return
	}
	m.globalKey(msg)
}

func (m *Model) globalKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.FocusNext):
		m.ring.Next()
	case key.Matches(msg, m.keys.FocusPrev):
		m.ring.Prev()
	case key.Matches(msg, m.keys.MenuFile):
		m.openMenu(0)
	case key.Matches(msg, m.keys.MenuAccounts):
		m.openMenu(1)
	case key.Matches(msg, m.keys.MenuHelp):
		m.openMenu(2)
	case key.Matches(msg, m.keys.Quit):
		m.openQuitDialog()
	case key.Matches(msg, m.keys.Copy):
		m.copySelected()
	case key.Matches(msg, m.keys.Reload):
		m.cmds = append(m.cmds, m.reload())
	default:
		m.log.Debug("unclaimed key", "key", msg.String())
	}
}

func (m *Model) openMenu(i int) {
	m.ring.Focus(m.menuBar)
	if err := m.menuBar.Open(i); err != nil {
		m.log.Error("open menu failed", "error", err)
	}
}

// quit saves the state and stops the program.
func (m *Model) quit() {
	if m.quitting {
		return
	}
	m.quitting = true
	m.saveState()
	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			m.log.Warn("close watcher failed", "error", err)
		}
	}
	m.cmds = append(m.cmds, tea.Quit)
}

func (m *Model) saveState() {
	s := state.State{
		ContactsPercent: m.contactsPercent,
		LastAccount:     m.account,
		LastRecipient:   m.recipient,
		Theme:           m.th.Name(),
	}
	if err := state.SaveTo(m.cfg.StateDir, s); err != nil {
		m.log.Error("save state failed", "error", err)
	}
}

// flash shows text on the status bar until FlashDuration passes or another
// flash replaces it.
func (m *Model) flash(text string) {
	m.status.Flash(text)
	m.status.Redraw()
	m.flashSeq++
	seq := m.flashSeq
	m.cmds = append(m.cmds, tea.Tick(FlashDuration, func(time.Time) tea.Msg {
		return flashExpiredMsg{seq: seq}
	}))
}

func (m *Model) updateStatus() {
	left := "no account"
	if acc, ok := m.currentAccount(); ok {
		left = acc.Label()
		if r, ok := m.store.Recipient(m.account, m.recipient); ok {
			left += " › " + r.Name
		}
	}
	right := ""
	for i, b := range m.keys.ShortHelp() {
		if i > 0 {
			right += "  "
		}
		right += b.Help().Key + " " + b.Help().Desc
	}
	m.status.SetText(left, right)
}

func (m *Model) currentAccount() (model.Account, bool) {
	for _, a := range m.store.Accounts() {
		if a.ID == m.account {
			return a, true
		}
	}
	return model.Account{}, false
}
