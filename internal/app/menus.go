package app

import (
	"fmt"

	"github.com/avitaltamir/vibechat/internal/components"
	"github.com/avitaltamir/vibechat/internal/components/dialog"
	"github.com/avitaltamir/vibechat/internal/components/menu"
	"github.com/avitaltamir/vibechat/internal/logger"
)

func handled(fn func()) components.Callback {
	return func(components.State, ...any) components.Result {
		fn()
		return components.Handled
	}
}

func (m *Model) fileEntries() []menu.Entry {
	return []menu.Entry{
		{Label: "_C_opy message", Callback: handled(m.copySelected)},
		{Label: "_R_eload", Callback: handled(func() { m.cmds = append(m.cmds, m.reload()) })},
		{Label: "_Q_uit", Callback: handled(m.openQuitDialog)},
	}
}

// syncMenus enables the items whose action has something to act on.
func (m *Model) syncMenus() {
	_, selected := m.messages.Selected()
	m.fileMenu.Items()[0].SetEnabled(selected)
}

func (m *Model) helpEntries() []menu.Entry {
	return []menu.Entry{
		{Label: "_K_eys", Callback: handled(m.openKeysDialog)},
		{Label: "_A_bout", Callback: handled(m.openAboutDialog)},
	}
}

// accountEntries lists one item per account. The first nine get their
// number as accelerator.
func (m *Model) accountEntries() []menu.Entry {
	accounts := m.store.Accounts()
	entries := make([]menu.Entry, len(accounts))
	for i, a := range accounts {
		label := a.Label()
		if i < 9 {
			label = fmt.Sprintf("_%d_ %s", i+1, label)
		}
		entries[i] = menu.Entry{Label: label, Callback: m.chooseAccount, Args: []any{a.ID}}
	}
	return entries
}

func (m *Model) chooseAccount(_ components.State, args ...any) components.Result {
	if len(args) == 0 {
		return components.Rejected
	}
	id, ok := args[0].(string)
	if !ok {
		return components.Rejected
	}
	m.switchAccount(id)
	return components.Handled
}

// centre places d in the middle of the terminal.
func (m *Model) centre(d *dialog.Dialog) {
	ext := d.RealExtent()
	x, y := m.layout.Center(ext.Cols, ext.Rows)
	d.Move(components.Position{Row: y, Col: x})
}

// openDialog shows d modally, replacing any open dialog.
func (m *Model) openDialog(d *dialog.Dialog, quit bool) {
	if m.dialog != nil {
		m.closeDialog()
	}
	m.centre(d)
	d.Open()
	m.dialog, m.quitDialog = d, quit
	m.ring.PushModal(d)
}

// closeDialog gives focus back and repaints what the dialog covered.
func (m *Model) closeDialog() {
	if m.dialog == nil {
		return
	}
	m.ring.PopModal()
	m.dialog.Close()
	m.dialog, m.quitDialog = nil, false
	m.redrawAll()
}

// settleDialog acts on a dialog's answer. Rejected closes the dialog;
// anything it does not claim stops here.
func (m *Model) settleDialog(r components.Result) {
	switch r {
	case components.Quit:
		m.quit()
	case components.Rejected:
		m.closeDialog()
	case components.Handled:
		m.dialog.Redraw()
	}
}

func (m *Model) openQuitDialog() {
	d, err := dialog.NewConfirm(m.scr, m.th, "Quit", components.Quit, "Quit vchat?")
	if err != nil {
		m.log.Error("quit dialog", "error", err)
		return
	}
	m.openDialog(d, true)
}

func (m *Model) openAboutDialog() {
	lines := []string{"vchat " + Version, "a terminal chat client"}
	if path := logger.Path(); path != "" {
		lines = append(lines, "log: "+path)
	}
	d, err := dialog.NewInfo(m.scr, m.th, "About", lines...)
	if err != nil {
		m.log.Error("about dialog", "error", err)
		return
	}
	m.openDialog(d, false)
}

func (m *Model) openKeysDialog() {
	d, err := dialog.NewInfo(m.scr, m.th, "Keys", keyHelpLines(m)...)
	if err != nil {
		m.log.Error("keys dialog", "error", err)
		return
	}
	m.openDialog(d, false)
}

// keyHelpLines lays the global and action bindings out two per line.
func keyHelpLines(m *Model) []string {
	groups := m.keys.FullHelp()
	bindings := append(groups[0], groups[2]...)
	var lines []string
	for i := 0; i < len(bindings); i += 2 {
		h := bindings[i].Help()
		line := fmt.Sprintf("%-9s %-14s", h.Key, h.Desc)
		if i+1 < len(bindings) {
			h = bindings[i+1].Help()
			line += fmt.Sprintf("  %-9s %s", h.Key, h.Desc)
		}
		lines = append(lines, line)
	}
	return append(lines, "arrows, pgup/pgdown, home/end move")
}
