package group

import (
	"errors"
	"fmt"
)

// errNotGroup, errCycle, and errReadFile back the fatal IO/group errors:
// IO and group-structure errors are fatal for that input, and analysis
// cannot proceed past them. Load returns them wrapped with the offending
// path so a caller can errors.Is against the sentinel while still getting
// a useful message.
var (
	errNotGroup = errors.New("not a group file (expected .mlb or .cm)")
	errCycle    = errors.New("group dependency graph is not acyclic")
)

func errReadFile(cause error) error {
	return fmt.Errorf("read group input: %w", cause)
}
