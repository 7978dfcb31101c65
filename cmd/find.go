package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nikogura/rhymer/pkg/assistant"
	"github.com/nikogura/rhymer/pkg/partofspeech"
	"github.com/nikogura/rhymer/pkg/session"
	"github.com/nikogura/rhymer/pkg/theme"
)

//nolint:gochecknoglobals // Cobra boilerplate
var findTheme string

//nolint:gochecknoglobals // Cobra boilerplate
var findCustom string

//nolint:gochecknoglobals // Cobra boilerplate
var findNoTheme bool

//nolint:gochecknoglobals // Cobra boilerplate
var findExclude []string

//nolint:gochecknoglobals // Cobra boilerplate
var findLimit int

//nolint:gochecknoglobals // Cobra boilerplate
var findSave bool

//nolint:gochecknoglobals // Cobra boilerplate
var findScores bool

//nolint:gochecknoglobals // Cobra boilerplate
var findCmd = &cobra.Command{
	Use:   "find <word or text>",
	Short: "Find rhymes for a word",
	Long: `Find rhymes for a word. With free text the last word is rhymed.

Theme, part-of-speech exclusions and result count come from the session;
flags override them for this run, and --save keeps the overrides.

Example:
  rhymer find любовь
  rhymer find "Я вас любил" --theme любовь --exclude verb,adv
  rhymer find ночь --custom "звезда луна" --limit 10 --save`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFind,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().StringVar(&findTheme, "theme", "", "Preset theme name (see 'rhymer themes')")
	findCmd.Flags().StringVar(&findCustom, "custom", "", "Custom theme: space-separated words")
	findCmd.Flags().BoolVar(&findNoTheme, "no-theme", false, "Disable the theme")
	findCmd.Flags().StringSliceVar(&findExclude, "exclude", nil, "Parts of speech to exclude: "+strings.Join(partofspeech.Names(), ","))
	findCmd.Flags().IntVar(&findLimit, "limit", 0, "Number of rhymes to show (default from session)")
	findCmd.Flags().BoolVar(&findSave, "save", false, "Save the overrides to the session")
	findCmd.Flags().BoolVar(&findScores, "scores", false, "Print scores next to the rhymes")
}

func runFind(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
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

	err = applyFindFlags(cmd, &state)
	if err != nil {
		return err
	}

	lex, err := a.lexicon(ctx)
	if err != nil {
		return err
	}

	resolver, err := a.resolver(lex)
	if err != nil {
		return err
	}

	input := strings.Join(args, " ")
	if getVerbose() {
		fmt.Printf("Query: %s\n", input)
		fmt.Printf("Theme: %s\n", state.Theme.Label())
		fmt.Printf("Excluding: %s\n", strings.Join(state.Exclude.Codes(), ", "))
	}

	helper := assistant.New(lex, resolver, a.engine(lex), a.logger)
	out := helper.Find(ctx, assistant.NewRequest(state, input))

	printOutcome(out)

	if findSave {
		err = a.saveState(ctx, state)
		if err != nil {
			return err
		}
	}

	return err
}

// applyFindFlags overlays command-line overrides on the session state.
func applyFindFlags(cmd *cobra.Command, state *session.State) (err error) {
	switch {
	case findNoTheme:
		state.Theme = theme.None()
	case cmd.Flags().Changed("custom"):
		state.Theme = theme.Custom()
		state.CustomThemeText = findCustom
	case findTheme != "":
		state.Theme = theme.Preset(findTheme)
	}

	if cmd.Flags().Changed("exclude") {
		state.Exclude, err = partofspeech.ParseNames(findExclude)
		if err != nil {
			err = errors.Wrap(err, "invalid --exclude")
			return err
		}
	}

	if findLimit > 0 {
		state.ShowRhymes = findLimit
	}

	return err
}

func printOutcome(out assistant.Outcome) {
	if out.Failed() {
		fmt.Println(out.Failure.Message)
		return
	}

	if len(out.Words) == 0 {
		fmt.Println("No rhymes found")
		return
	}

	for i, word := range out.Words {
		if findScores {
			fmt.Printf("%-20s %.4f\n", word, out.Scores[i])
			continue
		}
		fmt.Println(word)
	}
}
