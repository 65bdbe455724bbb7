package typeid

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	session := NewSessionID()
	widget := NewWidgetID()

	tests := []struct {
		name    string
		id      string
		prefix  string
		wantErr bool
	}{
		{"session", session, PrefixSession, false},
		{"widget", widget, PrefixWidget, false},
		{"wrong prefix", widget, PrefixSession, true},
		{"garbage", "sess_???", PrefixSession, true},
		{"empty", "", PrefixSession, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id, tt.prefix)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%q, %q) = %v", tt.id, tt.prefix, err)
			}
			if err != nil && !errors.Is(err, ErrInvalidID) {
				t.Errorf("error %v does not wrap ErrInvalidID", err)
			}
		})
	}
}

func TestPrefixOf(t *testing.T) {
	if got := PrefixOf(NewWidgetID()); got != PrefixWidget {
		t.Errorf("PrefixOf(widget id) = %q", got)
	}
	if got := PrefixOf("not an id"); got != "" {
		t.Errorf("PrefixOf(garbage) = %q", got)
	}
	if a, b := NewSessionID(), NewSessionID(); a == b {
		t.Error("two session ids are equal")
	}
}
