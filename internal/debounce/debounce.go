// Package debounce provides a trailing-edge timer for Bubble Tea programs.
//
// Each call to Arm schedules an expiry and implicitly cancels every expiry
// scheduled before it: only the message produced by the most recent Arm is
// accepted by Settle. A value therefore settles only after the input has been
// quiet for the full delay.
package debounce

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}

// ExpiredMsg is delivered when an armed timer runs out.
type ExpiredMsg struct {
	id    int
	tag   int
	Value string
}

// Timer debounces string values. The zero value is not usable; call New.
type Timer struct {
	id    int
	tag   int
	delay time.Duration
}

// New returns a Timer with the given quiet period.
func New(delay time.Duration) *Timer {
	return &Timer{
		id:    nextID(),
		delay: delay,
	}
}

// Delay returns the quiet period.
func (t *Timer) Delay() time.Duration {
	return t.delay
}

// Arm cancels any pending expiry and schedules a new one carrying value.
func (t *Timer) Arm(value string) tea.Cmd {
	t.tag++
	id, tag := t.id, t.tag
	return tea.Tick(t.delay, func(time.Time) tea.Msg {
		return ExpiredMsg{id: id, tag: tag, Value: value}
	})
}

// Cancel drops the pending expiry, if any.
func (t *Timer) Cancel() {
	t.tag++
}

// Settle reports whether msg is the live expiry of this timer and returns the
// value captured when it was armed. Expiries from cancelled arms or from other
// timers return false.
func (t *Timer) Settle(msg ExpiredMsg) (string, bool) {
	if msg.id != t.id || msg.tag != t.tag {
		return "", false
	}
	return msg.Value, true
}
