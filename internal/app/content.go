package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avitaltamir/vibechat/internal/clipboard"
	"github.com/avitaltamir/vibechat/internal/components"
	"github.com/avitaltamir/vibechat/internal/feed"
	"github.com/avitaltamir/vibechat/internal/model"
	"github.com/avitaltamir/vibechat/internal/notification"
)

// reload returns a command that reads the content source again.
func (m *Model) reload() tea.Cmd {
	if m.source == nil {
		return nil
	}
	return feed.Load(m.source)
}

// handleLoaded installs a new snapshot. The first one restores the account
// and conversation of the previous run.
func (m *Model) handleLoaded(msg feed.LoadedMsg) {
	if msg.Err != nil {
		m.log.Error("load content failed", "error", msg.Err)
		m.flash("cannot load messages")
		return
	}
	first := !m.loaded
	fresh := m.store.Replace(msg.Snapshot)
	m.loaded = true

	if err := m.accountsMenu.SetEntries(m.accountEntries()); err != nil {
		m.log.Error("accounts menu", "error", err)
	}
	if !m.store.HasAccount(m.account) {
		m.account, m.recipient = "", ""
		if m.store.HasAccount(m.saved.LastAccount) {
			m.account = m.saved.LastAccount
		} else if accounts := m.store.Accounts(); len(accounts) > 0 {
			m.account = accounts[0].ID
		}
		if first && m.account == m.saved.LastAccount {
			if _, ok := m.store.Recipient(m.account, m.saved.LastRecipient); ok {
				m.recipient = m.saved.LastRecipient
			}
		}
	}
	if m.recipient != "" {
		m.store.MarkRead(m.account, m.recipient)
	}

	m.refreshContacts()
	if m.recipient != "" {
		m.contacts.SelectID(m.recipient)
	}
	m.showConversation()
	m.notifyIncoming(fresh)
	m.updateStatus()
	m.redrawAll()
}

// notifyIncoming announces messages that arrived outside the open
// conversation.
func (m *Model) notifyIncoming(fresh []model.Message) {
	for _, msg := range fresh {
		if msg.Recipient == m.recipient {
			continue
		}
		m.flash("new message from " + msg.Sender)
		if !m.cfg.Notify {
			continue
		}
		if err := notification.IncomingMessage(m.notifier, msg.Sender, msg); err != nil {
			m.log.Warn("notification failed", "error", err)
		}
	}
}

func (m *Model) refreshContacts() {
	m.contacts.SetRecipients(m.store.Recipients(m.account))
}

// showConversation fills the messages pane with the open conversation.
func (m *Model) showConversation() {
	r, ok := m.store.Recipient(m.account, m.recipient)
	if !ok {
		m.recipient = ""
		m.messages.Clear()
		m.messages.Redraw()
		return
	}
	m.messages.SetConversation(r, m.store.Conversation(m.account, r.ID))
	m.messages.Redraw()
}

// openConversation is run when a recipient is activated in the contacts
// pane. Focus moves to the typing pane.
func (m *Model) openConversation(r model.Recipient) components.Result {
	m.recipient = r.ID
	m.store.MarkRead(m.account, r.ID)
	m.refreshContacts()
	m.showConversation()
	m.updateStatus()
	m.status.Redraw()
	m.ring.Focus(m.typing)
	m.log.Debug("conversation opened", "recipient", r.ID)
	return components.Handled
}

// send appends text to the open conversation as an outgoing message.
func (m *Model) send(text string) components.Result {
	if m.recipient == "" {
		m.flash("open a conversation first")
		return components.Rejected
	}
	acc, _ := m.currentAccount()
	sender := acc.Name
	if sender == "" {
		sender = "me"
	}
	_, err := m.store.Append(m.account, model.Message{
		Recipient: m.recipient,
		Sender:    sender,
		Body:      text,
		Time:      m.now(),
		Outgoing:  true,
		Read:      true,
	})
	if err != nil {
		m.log.Error("send failed", "error", err)
		m.flash("message not sent")
		return components.Rejected
	}
	m.showConversation()
	m.refreshContacts()
	m.contacts.Redraw()
	return components.Handled
}

// switchAccount shows another account's recipients. No conversation is
// open afterwards.
func (m *Model) switchAccount(id string) {
	if !m.store.HasAccount(id) || id == m.account {
		return
	}
	m.account, m.recipient = id, ""
	m.contacts.SetFilter("")
	m.refreshContacts()
	m.messages.Clear()
	m.updateStatus()
	m.redrawAll()
	m.log.Info("account switched", "account", id)
}

func (m *Model) copySelected() {
	msg, ok := m.messages.Selected()
	if !ok {
		m.flash("nothing to copy")
		return
	}
	if err := clipboard.Copy(m.clip, msg); err != nil {
		m.log.Error("copy failed", "error", err)
		m.flash("copy failed")
		return
	}
	m.flash("message copied")
}
