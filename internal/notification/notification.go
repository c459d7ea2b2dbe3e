// Package notification sends desktop notifications for incoming messages.
// It uses the beeep library on macOS, Linux and Windows.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/mattn/go-runewidth"

	"github.com/avitaltamir/vibechat/internal/logger"
	"github.com/avitaltamir/vibechat/internal/model"
)

// AppName is the notification title prefix.
const AppName = "vchat"

// previewWidth bounds the message preview.
const previewWidth = 80

// Notifier delivers notifications.
type Notifier interface {
	Notify(title, message string) error
}

// Desktop sends notifications through beeep.
type Desktop struct {
	notify func(title, message string, icon any) error
}

// NewDesktop returns a Notifier backed by the desktop environment.
func NewDesktop() *Desktop {
	return &Desktop{notify: beeep.Notify}
}

// Notify sends one notification.
func (d *Desktop) Notify(title, message string) error {
	logger.Debug("notification: title=%q message=%q", title, message)
	// Empty icon lets beeep use the platform default
	err := d.notify(title, message, "")
	if err != nil {
		logger.Warn("notification failed: %v", err)
	}
	return err
}

// Nop drops every notification.
type Nop struct{}

// Notify does nothing.
func (Nop) Notify(string, string) error { return nil }

// IncomingMessage notifies about a message from sender.
func IncomingMessage(n Notifier, sender string, m model.Message) error {
	title := fmt.Sprintf("%s: %s", AppName, sender)
	return n.Notify(title, runewidth.Truncate(m.Body, previewWidth, "…"))
}
