package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nikogura/rhymer/pkg/highlight"
	"github.com/nikogura/rhymer/pkg/scoring"
	"github.com/nikogura/rhymer/pkg/session"
)

//nolint:gochecknoglobals // Cobra boilerplate
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect and edit the scoring settings of the session",
}

//nolint:gochecknoglobals // Cobra boilerplate
var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every setting",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

//nolint:gochecknoglobals // Cobra boilerplate
var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the baseline scoring settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

//nolint:gochecknoglobals // Cobra boilerplate
var settingsSetCmd = &cobra.Command{
	Use:   "set key=value...",
	Short: "Change settings",
	Long: `Change one or more settings. Keys are the dotted names printed by
'rhymer settings show'. Any number is accepted.

Besides scoring keys, show_rhymes and highlight_mode are accepted.

Example:
  rhymer settings set stresses.weight=80 alliteration.pow_syll_ending=-1
  rhymer settings set show_rhymes=20 highlight_mode=words`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSettingsSet,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var a *app
	a, err = newApp()
	if err != nil {
		return err
	}
	defer a.close()

	var state session.State
	state, err = a.loadState(ctx)
	if err != nil {
		return err
	}

	for _, key := range scoring.Keys() {
		value, _ := state.Settings.Get(key)
		fmt.Printf("%-40s %s\n", key, value)
	}
	fmt.Println()
	fmt.Printf("%-40s %d\n", "show_rhymes", state.ShowRhymes)
	fmt.Printf("%-40s %s\n", "highlight_mode", state.HighlightMode)
	fmt.Printf("%-40s %s\n", "theme", state.Theme.Label())
	if state.CustomThemeText != "" {
		fmt.Printf("%-40s %s\n", "custom_theme", state.CustomThemeText)
	}
	fmt.Printf("%-40s %s\n", "exclude", strings.Join(state.Exclude.Codes(), ","))

	return err
}

func runSettingsReset(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var a *app
	a, err = newApp()
	if err != nil {
		return err
	}
	defer a.close()

	var state session.State
	state, err = a.loadState(ctx)
	if err != nil {
		return err
	}

	state.Settings.Reset()

	err = a.saveState(ctx, state)
	if err != nil {
		return err
	}

	fmt.Println("Scoring settings reset")
	return err
}

func runSettingsSet(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var a *app
	a, err = newApp()
	if err != nil {
		return err
	}
	defer a.close()

	var state session.State
	state, err = a.loadState(ctx)
	if err != nil {
		return err
	}

	for _, arg := range args {
		err = applySetting(&state, arg)
		if err != nil {
			return err
		}
	}

	err = a.saveState(ctx, state)
	if err != nil {
		return err
	}

	if getVerbose() {
		fmt.Printf("Updated %d setting(s)\n", len(args))
	}
	return err
}

// applySetting applies one key=value pair. Nothing is saved when any pair fails.
func applySetting(state *session.State, pair string) (err error) {
	key, value, ok := strings.Cut(pair, "=")
	if !ok {
		err = errors.Errorf("expected key=value, got %q", pair)
		return err
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	switch key {
	case "show_rhymes":
		var n int
		n, err = strconv.Atoi(value)
		if err != nil || n <= 0 {
			err = errors.Errorf("show_rhymes must be a positive integer, got %q", value)
			return err
		}
		state.ShowRhymes = n
	case "highlight_mode":
		state.HighlightMode, err = highlight.ParseMode(value)
		if err != nil {
			return err
		}
	default:
		err = state.Settings.Set(key, value)
		if err != nil {
			return err
		}
	}

	return err
}
