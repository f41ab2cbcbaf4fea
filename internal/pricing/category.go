package pricing

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a service name does not match any Category
var ErrUnknownCategory = errors.New("unknown service category")

// Category is a billable service offered by the shop
type Category int

const (
	Print Category = iota
	Photocopy
	Scan
)

var categoryNames = map[Category]string{
	Print:     "Print",
	Photocopy: "Photocopy",
	Scan:      "Scan",
}

// Categories returns every known category in display order
func Categories() []Category {
	return []Category{Print, Photocopy, Scan}
}

// String returns the display name of the category
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Section returns the config file section holding the category's rates
func (c Category) Section() string {
	return strings.ToUpper(c.String())
}

// DisplayName returns the long name shown to operators
func (c Category) DisplayName() string {
	if _, ok := categoryNames[c]; !ok {
		return "Unknown Service"
	}
	return c.String() + " Service"
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// ParseCategory resolves a service name, ignoring case
func ParseCategory(name string) (Category, error) {
	name = strings.TrimSpace(name)
	for _, c := range Categories() {
		if strings.EqualFold(name, c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}
