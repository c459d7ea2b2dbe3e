package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avitaltamir/vibechat/internal/errors"
)

func TestSelection(t *testing.T) {
	t.Run("set inside bounds calls the hook", func(t *testing.T) {
		var calls [][2]int
		s := NewSelection(0, 4, func(old, cur int) { calls = append(calls, [2]int{old, cur}) })

		require.NoError(t, s.Set(2))
		require.NoError(t, s.Set(3))
		require.NoError(t, s.Set(3))

		assert.Equal(t, [][2]int{{-1, 2}, {2, 3}}, calls)
		i, ok := s.Index()
		assert.True(t, ok)
		assert.Equal(t, 3, i)
		last, ok := s.Last()
		assert.True(t, ok)
		assert.Equal(t, 2, last)
	})

	t.Run("set outside bounds is a range error", func(t *testing.T) {
		s := NewSelection(0, 4, nil)
		require.NoError(t, s.Set(1))

		for _, i := range []int{-1, 5} {
			err := s.Set(i)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.KindRange))
		}
		i, _ := s.Index()
		assert.Equal(t, 1, i)
	})

	t.Run("clear", func(t *testing.T) {
		var cur int
		s := NewSelection(0, 1, func(_, c int) { cur = c })
		require.NoError(t, s.Set(1))
		s.Clear()

		_, ok := s.Index()
		assert.False(t, ok)
		assert.Equal(t, -1, cur)
	})

	t.Run("step clamps and reports it", func(t *testing.T) {
		s := NewSelection(0, 9, nil)

		target, clamped := s.Step(1)
		assert.Equal(t, 0, target)
		assert.False(t, clamped)

		target, _ = s.Step(-1)
		assert.Equal(t, 9, target)

		require.NoError(t, s.Set(7))
		target, clamped = s.Step(5)
		assert.Equal(t, 9, target)
		assert.True(t, clamped)

		target, clamped = s.Step(-3)
		assert.Equal(t, 4, target)
		assert.False(t, clamped)
	})

	t.Run("shrinking bounds clamps the selection", func(t *testing.T) {
		s := NewSelection(0, 9, nil)
		require.NoError(t, s.Set(8))

		s.SetBounds(0, 3)
		i, _ := s.Index()
		assert.Equal(t, 3, i)

		s.SetBounds(0, -1)
		assert.True(t, s.Empty())
		_, ok := s.Index()
		assert.False(t, ok)
	})
}
