package tracker

import "time"

// Sample is one observation of the foreground state at a point in time.
// Idle polls carry the idle sentinel process; unresolvable windows carry
// the unknown sentinel. Idle/active transitions therefore surface as
// ordinary (process, title) changes.
type Sample struct {
	Process string
	Title   string
	Time    time.Time
}

// Machine detects session boundaries. It holds at most one in-flight
// session and closes it whenever the (process, title) pair changes.
type Machine struct {
	process string
	title   string
	start   time.Time
	open    bool
}

// NewMachine returns a machine with no in-flight session; the first
// sample opens one.
func NewMachine() *Machine {
	return &Machine{}
}

// Advance feeds one sample. When the sample differs from the in-flight
// session it returns the closed session (end = sample time) and opens a
// new one at the sample time. Otherwise it returns nil and the in-flight
// session keeps accumulating.
func (m *Machine) Advance(s Sample) *Session {
	if !m.open {
		m.process, m.title, m.start = s.Process, s.Title, s.Time
		m.open = true
		return nil
	}

	if s.Process == m.process && s.Title == m.title {
		return nil
	}

	closed := &Session{
		ProcessName: m.process,
		WindowTitle: m.title,
		StartTime:   m.start,
		EndTime:     s.Time,
	}
	m.process, m.title, m.start = s.Process, s.Title, s.Time
	return closed
}

// Flush force-closes the in-flight session at now, regardless of how it
// was opened. Used on shutdown; afterwards the machine is empty.
func (m *Machine) Flush(now time.Time) *Session {
	if !m.open {
		return nil
	}
	m.open = false
	return &Session{
		ProcessName: m.process,
		WindowTitle: m.title,
		StartTime:   m.start,
		EndTime:     now,
	}
}

// InFlight reports the process of the currently open session, or "".
// The goal evaluator uses this for block goals, which are checked
// against the live foreground process rather than stored history.
func (m *Machine) InFlight() string {
	if !m.open {
		return ""
	}
	return m.process
}
