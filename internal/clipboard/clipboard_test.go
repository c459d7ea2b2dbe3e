package clipboard

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avitaltamir/vibechat/internal/errors"
	"github.com/avitaltamir/vibechat/internal/model"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		msg  model.Message
		want string
	}{
		{
			name: "with time",
			msg:  model.Message{Sender: "Alice", Body: "hi", Time: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)},
			want: "Alice [2024-05-01 09:30]: hi",
		},
		{
			name: "without time",
			msg:  model.Message{Sender: "Bob", Body: "yo"},
			want: "Bob: yo",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.msg))
		})
	}
}

func TestCopy(t *testing.T) {
	var mem Memory
	require.NoError(t, Copy(&mem, model.Message{Sender: "Bob", Body: "yo"}))
	assert.Equal(t, "Bob: yo", mem.Text)

	mem.Err = fmt.Errorf("no xclip")
	err := Copy(&mem, model.Message{Body: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.KindIO))
	assert.Equal(t, "Bob: yo", mem.Text)
}
