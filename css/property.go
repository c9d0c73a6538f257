package css

import (
	"fmt"
	"strings"
)

// Property is a raw value for a CSS property. For example, with
//
//     color: black
//
// a property value of "black" is set. The main purpose of wrapping
// the raw string value into type Property is to provide a set of
// convenient type conversion functions and other helpers.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsInitial denotes if a property is of inheritence-type "initial"
func (p Property) IsInitial() bool {
	return p == "initial"
}

// IsInherit denotes if a property is of inheritence-type "inherit"
func (p Property) IsInherit() bool {
	return p == "inherit"
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return p == ""
}

// KeyValue is a container for a style property.
type KeyValue struct {
	Key   string
	Value Property
}

// IsShorthand is true for the shorthand properties SplitShorthand knows.
func IsShorthand(key string) bool {
	_, ok := shorthands[key]
	return ok
}

type shorthand struct {
	pre, suf string
	dirs     *[4]string
}

var shorthands = map[string]shorthand{
	"margin":        {"margin", "", &fourDirs},
	"padding":       {"padding", "", &fourDirs},
	"border-color":  {"border", "color", &fourDirs},
	"border-width":  {"border", "width", &fourDirs},
	"border-style":  {"border", "style", &fourDirs},
	"border-radius": {"border", "radius", &fourCorners},
	"inset":         {"", "", &fourDirs},
}

// SplitShorthand splits up a shorthand property into its individual
// components. Returns a slice of key-value pairs representing the
// individual (fine grained) style properties.
// Example:
//    SplitShorthand("padding", "3px")
// will return
//    "padding-top"    => "3px"
//    "padding-right"  => "3px"
//    "padding-bottom" => "3px"
//    "padding-left"   => "3px"
// For the logic behind this, refer to e.g.
// https://www.w3schools.com/css/css_padding.asp .
func SplitShorthand(key string, value Property) ([]KeyValue, error) {
	fields := strings.Fields(value.String())
	sh, ok := shorthands[key]
	if !ok {
		return nil, fmt.Errorf("not recognized as shorthand property: %s", key)
	}
	return distribute4(sh.pre, sh.suf, *sh.dirs, fields)
}

// CSS logic to distribute individual values from shorthands is as
// follows: https://www.w3schools.com/css/css_border.asp
func distribute4(pre string, suf string, dirs [4]string, fields []string) ([]KeyValue, error) {
	l := len(fields)
	if l == 0 || l > 4 {
		return nil, fmt.Errorf("expecting 1-4 values for %s, have %d", p(pre, suf, "*"), l)
	}
	var pick [4]int
	switch l {
	case 1:
		pick = [4]int{0, 0, 0, 0}
	case 2:
		pick = [4]int{0, 1, 0, 1}
	case 3:
		pick = [4]int{0, 1, 2, 1}
	case 4:
		pick = [4]int{0, 1, 2, 3}
	}
	r := make([]KeyValue, 4)
	for i := range r {
		r[i] = KeyValue{p(pre, suf, dirs[i]), Property(fields[pick[i]])}
	}
	return r, nil
}

var fourDirs = [4]string{"top", "right", "bottom", "left"}
var fourCorners = [4]string{"top-left", "top-right", "bottom-right", "bottom-left"}

func p(prefix string, suffix string, tag string) string {
	if prefix == "" && suffix == "" {
		return tag
	}
	if suffix == "" {
		return prefix + "-" + tag
	}
	if prefix == "" {
		return tag + "-" + suffix
	}
	return prefix + "-" + tag + "-" + suffix
}

