package notification

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avitaltamir/vibechat/internal/model"
)

// mockNotification records calls to the notification function
type mockNotification struct {
	titles, messages []string
	err              error
}

func (m *mockNotification) notify(title, message string, icon any) error {
	m.titles = append(m.titles, title)
	m.messages = append(m.messages, message)
	return m.err
}

func TestDesktop_Notify(t *testing.T) {
	tests := []struct {
		name        string
		mockErr     error
		expectError bool
	}{
		{name: "successful notification"},
		{name: "notification error", mockErr: errors.New("notification failed"), expectError: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNotification{err: tt.mockErr}
			d := &Desktop{notify: mock.notify}

			err := d.Notify("title", "body")
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, []string{"title"}, mock.titles)
		})
	}
}

func TestIncomingMessage(t *testing.T) {
	mock := &mockNotification{}
	d := &Desktop{notify: mock.notify}

	long := strings.Repeat("word ", 40)
	assert.NoError(t, IncomingMessage(d, "Alice", model.Message{Body: long}))

	assert.Equal(t, []string{"vchat: Alice"}, mock.titles)
	assert.True(t, strings.HasSuffix(mock.messages[0], "…"))
	assert.LessOrEqual(t, len([]rune(mock.messages[0])), previewWidth)
}

func TestNop(t *testing.T) {
	assert.NoError(t, IncomingMessage(Nop{}, "x", model.Message{Body: "y"}))
}
