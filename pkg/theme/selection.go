// Package theme resolves the user's theme selection into a semantic theme handle.
package theme

import (
	"encoding/json"
)

// Kind tells which variant a Selection is.
type Kind string

const (
	KindNone   Kind = "none"
	KindPreset Kind = "preset"
	KindCustom Kind = "custom"
)

// Selection is the theme chosen by the user. Name is only meaningful for KindPreset;
// the text of a custom theme lives next to the selection, not in it.
type Selection struct {
	Kind Kind   `json:"kind"`
	Name string `json:"name,omitempty"`
}

// None selects no theme filtering.
func None() (s Selection) {
	s = Selection{Kind: KindNone}
	return s
}

// Preset selects a named theme from the theme table.
func Preset(name string) (s Selection) {
	s = Selection{Kind: KindPreset, Name: name}
	return s
}

// Custom selects the user-typed word list.
func Custom() (s Selection) {
	s = Selection{Kind: KindCustom}
	return s
}

// Label is the display name of the selection.
func (s Selection) Label() (label string) {
	switch s.Kind {
	case KindPreset:
		label = s.Name
	case KindCustom:
		label = "custom"
	default:
		label = "no theme"
	}
	return label
}

// UnmarshalJSON decodes a selection, mapping unknown, missing or mistyped kinds to KindNone.
func (s *Selection) UnmarshalJSON(data []byte) (err error) {
	type plain Selection
	var p plain
	if json.Unmarshal(data, &p) != nil {
		*s = None()
		return err
	}

	switch p.Kind {
	case KindPreset:
		*s = Preset(p.Name)
	case KindCustom:
		*s = Custom()
	default:
		*s = None()
	}

	return err
}
