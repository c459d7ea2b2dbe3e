package components

import "github.com/avitaltamir/vibechat/internal/errors"

// none marks an absent selection.
const none = -1

// Selection is an optional index bounded by [min, max]. An empty range
// (max < min) admits no selection.
type Selection struct {
	index    int
	last     int
	min, max int
	onChange func(old, cur int)
}

// NewSelection returns an empty selection over [min, max]. onChange is
// called with the previous and new index (-1 for none) whenever Set or
// Clear changes the selection.
func NewSelection(min, max int, onChange func(old, cur int)) Selection {
	return Selection{index: none, last: none, min: min, max: max, onChange: onChange}
}

// Index returns the selected index.
func (s *Selection) Index() (int, bool) {
	return s.index, s.index != none
}

// Last returns the index selected before the current one.
func (s *Selection) Last() (int, bool) {
	return s.last, s.last != none
}

// Bounds returns the admissible range.
func (s *Selection) Bounds() (min, max int) {
	return s.min, s.max
}

// Empty reports whether the range admits no selection.
func (s *Selection) Empty() bool {
	return s.max < s.min
}

// Set selects i. An index outside the bounds is rejected with a range
// error and the selection is left unchanged.
func (s *Selection) Set(i int) error {
	if i < s.min || i > s.max {
		return errors.OutOfRange(errors.Op("selection.Set"), "index", i, s.min, s.max)
	}
	if i == s.index {
		return nil
	}
	old := s.index
	s.last = old
	s.index = i
	if s.onChange != nil {
		s.onChange(old, i)
	}
	return nil
}

// Clear removes the selection.
func (s *Selection) Clear() {
	if s.index == none {
		return
	}
	old := s.index
	s.last = old
	s.index = none
	if s.onChange != nil {
		s.onChange(old, none)
	}
}

// SetBounds changes the range. A selection that falls outside it is
// clamped to the nearest bound, or cleared when the range is empty. The
// change hook is not called; the owner is rebuilding its items.
func (s *Selection) SetBounds(min, max int) {
	s.min, s.max = min, max
	s.last = none
	switch {
	case s.index == none:
	case max < min:
		s.index = none
	case s.index < min:
		s.index = min
	case s.index > max:
		s.index = max
	}
}

// Step returns the index delta steps away from the current one, clamped to
// the bounds, and whether clamping was needed. With no selection, stepping
// forward lands on min and stepping back lands on max.
func (s *Selection) Step(delta int) (int, bool) {
	if s.Empty() {
		return none, true
	}
	if s.index == none {
		if delta >= 0 {
			return s.min, false
		}
		return s.max, false
	}
	target := s.index + delta
	switch {
	case target < s.min:
		return s.min, true
	case target > s.max:
		return s.max, true
	}
	return target, false
}
