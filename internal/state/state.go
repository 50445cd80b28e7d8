// Package state holds the transition tables shared by the booking and
// membership lifecycles. Any edge not listed is rejected.
package state

// Table maps a status to the statuses it may move to. A status with no
// entry (or an empty slice) is terminal.
type Table map[string][]string

func (t Table) Can(from, to string) bool {
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (t Table) IsTerminal(status string) bool {
	return len(t[status]) == 0
}

// Known reports whether the status appears anywhere in the table,
// either as a source or as a target.
func (t Table) Known(status string) bool {
	if _, ok := t[status]; ok {
		return true
	}
	for _, targets := range t {
		for _, next := range targets {
			if next == status {
				return true
			}
		}
	}
	return false
}
