// Package focus tracks which component receives keyboard input.
package focus

import "github.com/avitaltamir/vibechat/internal/components"

// Ring is an ordered, fixed set of focusable components, at most one of
// which holds focus. A modal component pushed on top takes focus until it
// is popped.
type Ring struct {
	members []components.Focusable
	current int
	modal   []components.Focusable
}

// NewRing returns a ring over members with the first one focused.
func NewRing(members ...components.Focusable) *Ring {
	r := &Ring{members: members, current: -1}
	if len(members) > 0 {
		r.transfer(-1, 0)
	}
	return r
}

// Index returns the position of the focused member, or -1.
func (r *Ring) Index() int { return r.current }

// Current returns the focused ring member, ignoring any modal.
func (r *Ring) Current() components.Focusable {
	if r.current < 0 {
		return nil
	}
	return r.members[r.current]
}

// Holder returns whatever receives keys: the top modal or the current member.
func (r *Ring) Holder() components.Focusable {
	if m := r.Modal(); m != nil {
		return m
	}
	return r.Current()
}

// Modal returns the top modal component, or nil.
func (r *Ring) Modal() components.Focusable {
	if len(r.modal) == 0 {
		return nil
	}
	return r.modal[len(r.modal)-1]
}

// transfer clears the old holder before setting the new one, so each
// repaints only its own frame.
func (r *Ring) transfer(from, to int) {
	if from == to {
		return
	}
	if from >= 0 {
		r.members[from].SetFocused(false)
	}
	r.current = to
	r.members[to].SetFocused(true)
}

// Focus focuses member c. It reports false if c is not a member or a
// modal is open.
func (r *Ring) Focus(c components.Focusable) bool {
	if len(r.modal) > 0 {
		return false
	}
	for i, m := range r.members {
		if m == c {
			r.transfer(r.current, i)
			return true
		}
	}
	return false
}

// Next moves focus forward, wrapping at the end.
func (r *Ring) Next() { r.step(1) }

// Prev moves focus backward, wrapping at the start.
func (r *Ring) Prev() { r.step(-1) }

func (r *Ring) step(delta int) {
	n := len(r.members)
	if n == 0 || len(r.modal) > 0 {
		return
	}
	r.transfer(r.current, ((r.current+delta)%n+n)%n)
}

// PushModal gives focus to c until PopModal.
func (r *Ring) PushModal(c components.Focusable) {
	if prev := r.Holder(); prev != nil {
		prev.SetFocused(false)
	}
	r.modal = append(r.modal, c)
	c.SetFocused(true)
}

// PopModal removes the top modal and gives focus back to what held it
// before. It returns the popped component.
func (r *Ring) PopModal() components.Focusable {
	top := r.Modal()
	if top == nil {
		return nil
	}
	r.modal = r.modal[:len(r.modal)-1]
	top.SetFocused(false)
	if next := r.Holder(); next != nil {
		next.SetFocused(true)
	}
	return top
}
