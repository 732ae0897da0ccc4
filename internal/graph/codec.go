package graph

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrMalformedNodeID is returned when a node id does not follow the
// attr_<id>_val_<value> encoding.
var ErrMalformedNodeID = errors.New("graph: malformed node id")

var nodeIDPattern = regexp.MustCompile(`^attr_(.*)_val_(.*)$`)

// Decode splits a node id into its attribute slot and value.
func Decode(id string) (attribute int, value float64, err error) {
	m := nodeIDPattern.FindStringSubmatch(id)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedNodeID, id)
	}
	attribute, err = strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: attribute %q is not an integer", ErrMalformedNodeID, id, m[1])
	}
	value, err = strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: value %q is not a number", ErrMalformedNodeID, id, m[2])
	}
	return attribute, value, nil
}

// Attribute returns only the attribute slot of a node id.
func Attribute(id string) (int, error) {
	attr, _, err := Decode(id)
	return attr, err
}

func Encode(attribute int, value float64) string {
	return "attr_" + strconv.Itoa(attribute) + "_val_" + strconv.FormatFloat(value, 'f', -1, 64)
}
