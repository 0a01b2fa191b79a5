package interactive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSelection is returned for input that is neither an index, "a" nor "exit".
var ErrInvalidSelection = errors.New("invalid selection")

// Selection is one parsed line of operator input.
type Selection struct {
	Exit  bool
	All   bool
	Index int
}

// ParseSelection parses input against a list of n buckets.
func ParseSelection(input string, n int) (Selection, error) {
	s := strings.ToLower(strings.TrimSpace(input))

	switch s {
	case "exit":
		return Selection{Exit: true}, nil
	case "a":
		return Selection{All: true}, nil
	case "":
		return Selection{}, fmt.Errorf("%w: empty input", ErrInvalidSelection)
	}

	idx, err := strconv.Atoi(s)
	if err != nil {
		return Selection{}, fmt.Errorf("%w: %q is not an index, 'a' or 'exit'", ErrInvalidSelection, input)
	}
	if idx < 0 || idx >= n {
		return Selection{}, fmt.Errorf("%w: index %d out of range 0-%d", ErrInvalidSelection, idx, n-1)
	}

	return Selection{Index: idx}, nil
}
