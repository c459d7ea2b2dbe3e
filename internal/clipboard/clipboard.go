// Package clipboard copies message text to the system clipboard.
package clipboard

import (
	"strings"

	"github.com/atotto/clipboard"

	"github.com/avitaltamir/vibechat/internal/errors"
	"github.com/avitaltamir/vibechat/internal/model"
)

// TimeFormat is the timestamp layout of copied messages.
const TimeFormat = "2006-01-02 15:04"

// Writer receives copied text.
type Writer interface {
	WriteAll(text string) error
}

// System writes to the desktop clipboard.
type System struct{}

// WriteAll copies text to the system clipboard.
func (System) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Memory keeps the last copied text. Tests use it in place of System.
type Memory struct {
	Text string
	Err  error
}

// WriteAll stores text, or fails with Err when set.
func (m *Memory) WriteAll(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Text = text
	return nil
}

// Format renders a message the way it is copied: a header with sender and
// time, then the body.
func Format(m model.Message) string {
	var b strings.Builder
	b.WriteString(m.Sender)
	if !m.Time.IsZero() {
		b.WriteString(" [")
		b.WriteString(m.Time.Format(TimeFormat))
		b.WriteString("]")
	}
	b.WriteString(": ")
	b.WriteString(m.Body)
	return b.String()
}

// Copy writes the formatted message to w.
func Copy(w Writer, m model.Message) error {
	if err := w.WriteAll(Format(m)); err != nil {
		return errors.E(errors.Op("clipboard.Copy"), errors.KindIO, "copy to clipboard failed", err)
	}
	return nil
}
