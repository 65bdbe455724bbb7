// Package typeid mints the prefixed, sortable identifiers used for widgets
// and editing sessions.
package typeid

import (
	"errors"
	"fmt"

	"go.jetify.com/typeid/v2"
)

var ErrInvalidID = errors.New("invalid id")

const (
	PrefixWidget  = "wdg"
	PrefixSession = "sess"
)

func New(prefix string) string {
	return typeid.MustGenerate(prefix).String()
}

func NewWidgetID() string  { return New(PrefixWidget) }
func NewSessionID() string { return New(PrefixSession) }

// PrefixOf returns the prefix of id, or "" when id does not parse.
func PrefixOf(id string) string {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return ""
	}
	return parsed.Prefix()
}

// Validate checks that id parses and carries prefix. Errors wrap
// ErrInvalidID.
func Validate(id, prefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidID, id, err)
	}
	if got := parsed.Prefix(); got != prefix {
		return fmt.Errorf("%w %q: want prefix %q, got %q", ErrInvalidID, id, prefix, got)
	}
	return nil
}
