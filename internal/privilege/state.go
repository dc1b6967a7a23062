// Package privilege decides when an operation needs administrator rights
// and relaunches envpath elevated, relaying the child's output back.
package privilege

import "sync"

// State is the privilege level of the running process.
type State int

const (
	Unprivileged State = iota
	Privileged
)

func (s State) String() string {
	if s == Privileged {
		return "privileged"
	}
	return "unprivileged"
}

var (
	detectOnce sync.Once
	detected   State
)

// Detect returns the process privilege state. It is computed on first use
// and never changes afterwards.
func Detect() State {
	detectOnce.Do(func() {
		if isElevated() {
			detected = Privileged
		} else {
			detected = Unprivileged
		}
	})
	return detected
}
