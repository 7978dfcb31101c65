// Package session persists the assistant state between invocations.
package session

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/nikogura/rhymer/pkg/highlight"
	"github.com/nikogura/rhymer/pkg/partofspeech"
	"github.com/nikogura/rhymer/pkg/scoring"
	"github.com/nikogura/rhymer/pkg/theme"
)

// DefaultShowRhymes is the baseline result count.
const DefaultShowRhymes = 50

// State is everything restored on the next start.
type State struct {
	Settings        scoring.Config      `json:"settings"`
	Theme           theme.Selection     `json:"theme"`
	CustomThemeText string              `json:"custom_theme_text"`
	Exclude         partofspeech.Filter `json:"exclude"`
	ShowRhymes      int                 `json:"show_rhymes"`
	MainText        string              `json:"main_text"`
	HighlightMode   highlight.Mode      `json:"highlight_mode"`
}

// Default returns the baseline state.
func Default() (state State) {
	state = State{
		Settings:      scoring.Default(),
		Theme:         theme.None(),
		ShowRhymes:    DefaultShowRhymes,
		HighlightMode: highlight.ModeRhythm,
	}
	return state
}

// Decode reads a stored state on top of the baseline, so fields missing from data keep their
// baseline value. Out-of-range values are brought back to the baseline, and so are fields whose
// stored type no longer matches: the fields that did decode are kept. Only data that is not JSON
// at all is an error, and the returned state is then Default().
func Decode(data []byte) (state State, err error) {
	state = Default()

	err = json.Unmarshal(data, &state)
	if err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			err = errors.Wrap(err, "failed to parse session state")
			return Default(), err
		}
		err = nil
	}

	if state.ShowRhymes <= 0 {
		state.ShowRhymes = DefaultShowRhymes
	}

	switch state.HighlightMode {
	case highlight.ModeRhythm, highlight.ModeWords, highlight.ModeDisabled:
	default:
		state.HighlightMode = highlight.ModeRhythm
	}

	return state, err
}

// Encode serializes the state.
func (s State) Encode() (data []byte, err error) {
	data, err = json.MarshalIndent(s, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to encode session state")
		return data, err
	}
	return data, err
}

// NewID returns a fresh session id.
func NewID() (id string) {
	id = uuid.NewString()
	return id
}
