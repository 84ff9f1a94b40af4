package vo

import (
	"errors"
	"strings"
)

var ErrEmptyPath = errors.New("path must contain at least one city")

// PathDescription is the "A -> B -> C" rendering of a route through the
// city graph, wrapping a validated slice of city names.
type PathDescription struct {
	cities []string
}

// NewPathDescription validates and constructs a PathDescription.
func NewPathDescription(cities []string) (PathDescription, error) {
	if len(cities) == 0 {
		return PathDescription{}, ErrEmptyPath
	}

	cp := make([]string, len(cities))
	copy(cp, cities)

	return PathDescription{cities: cp}, nil
}

// Cities returns the ordered city names along the path.
func (p PathDescription) Cities() []string {
	out := make([]string, len(p.cities))
	copy(out, p.cities)

	return out
}

// String renders "A -> B -> C".
func (p PathDescription) String() string {
	return strings.Join(p.cities, " -> ")
}

// Len returns the number of cities on the path.
func (p PathDescription) Len() int {
	return len(p.cities)
}
