package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownSortField is returned for a sort column other than title or price.
	ErrUnknownSortField = errors.New("unknown sort field")

	// ErrUnknownSortDirection is returned for a direction other than asc or desc.
	ErrUnknownSortDirection = errors.New("unknown sort direction")
)

// SortField selects the column the list is ordered by.
type SortField int

const (
	SortNone SortField = iota
	SortTitle
	SortPrice
)

func (f SortField) String() string {
	switch f {
	case SortTitle:
		return "title"
	case SortPrice:
		return "price"
	default:
		return "none"
	}
}

// MarshalText encodes the field by name.
func (f SortField) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes a field name written by MarshalText.
func (f *SortField) UnmarshalText(b []byte) error {
	field, err := ParseSortField(string(b))
	if err != nil {
		return err
	}
	*f = field
	return nil
}

// ParseSortField parses "title" or "price" (case-insensitive).
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "title":
		return SortTitle, nil
	case "price":
		return SortPrice, nil
	case "", "none":
		return SortNone, nil
	default:
		return SortNone, fmt.Errorf("%w %q", ErrUnknownSortField, s)
	}
}

// SortDirection is meaningful only when the sort field is not SortNone.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

func (d SortDirection) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// MarshalText encodes the direction as "asc" or "desc".
func (d SortDirection) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes "asc" or "desc".
func (d *SortDirection) UnmarshalText(b []byte) error {
	dir, err := ParseSortDirection(string(b))
	if err != nil {
		return err
	}
	*d = dir
	return nil
}

// ParseSortDirection parses "asc" or "desc" (case-insensitive). An empty
// string means ascending.
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return Ascending, nil
	case "desc":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("%w %q", ErrUnknownSortDirection, s)
	}
}

// SortState is the per-field position in the toggle cycle.
type SortState int

const (
	SortOff SortState = iota
	SortAsc
	SortDesc
)

func (s SortState) String() string {
	switch s {
	case SortAsc:
		return "asc"
	case SortDesc:
		return "desc"
	default:
		return "off"
	}
}

// next advances one step through off → asc → desc → off.
func (s SortState) next() SortState {
	switch s {
	case SortOff:
		return SortAsc
	case SortAsc:
		return SortDesc
	default:
		return SortOff
	}
}

// SortToggle holds the toggle state of the two sortable columns.
// At most one of them is ever not SortOff. The zero value has both off.
type SortToggle struct {
	title SortState
	price SortState
}

// Activate returns the toggle state after the user activates field.
// Activating the other field switches the current one off first, so the
// newly activated field always starts its cycle at ascending.
func (t SortToggle) Activate(field SortField) SortToggle {
	switch field {
	case SortTitle:
		return SortToggle{title: t.title.next()}
	case SortPrice:
		return SortToggle{price: t.price.next()}
	default:
		return SortToggle{}
	}
}

// Set returns a toggle with field sorting in direction dir and the other
// field off. SortNone switches sorting off.
func (t SortToggle) Set(field SortField, dir SortDirection) SortToggle {
	state := SortAsc
	if dir == Descending {
		state = SortDesc
	}
	switch field {
	case SortTitle:
		return SortToggle{title: state}
	case SortPrice:
		return SortToggle{price: state}
	default:
		return SortToggle{}
	}
}

// State returns the toggle position of a single field.
func (t SortToggle) State(field SortField) SortState {
	switch field {
	case SortTitle:
		return t.title
	case SortPrice:
		return t.price
	default:
		return SortOff
	}
}

// Active returns the field currently sorting and its direction.
// It returns SortNone when neither field is active.
func (t SortToggle) Active() (SortField, SortDirection) {
	switch {
	case t.title != SortOff:
		return SortTitle, directionOf(t.title)
	case t.price != SortOff:
		return SortPrice, directionOf(t.price)
	default:
		return SortNone, Ascending
	}
}

func directionOf(s SortState) SortDirection {
	if s == SortDesc {
		return Descending
	}
	return Ascending
}
