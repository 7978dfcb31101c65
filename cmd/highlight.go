package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikogura/rhymer/pkg/highlight"
	"github.com/nikogura/rhymer/pkg/renderer"
	"github.com/nikogura/rhymer/pkg/session"
	"github.com/nikogura/rhymer/pkg/source"
)

//nolint:gochecknoglobals // Cobra boilerplate
var highlightMode string

//nolint:gochecknoglobals // Cobra boilerplate
var highlightHTML string

//nolint:gochecknoglobals // Cobra boilerplate
var highlightSave bool

//nolint:gochecknoglobals // Cobra boilerplate
var highlightCmd = &cobra.Command{
	Use:   "highlight [file|url|-]",
	Short: "Highlight stresses or known words in a text",
	Long: `Highlight a text line by line. Rhythm mode marks vowels and stressed
vowels; words mode marks words known and unknown to the corpus.

Without an argument the text saved in the session is used.

Example:
  rhymer highlight poem.txt
  cat poem.txt | rhymer highlight - --mode words
  rhymer highlight https://example.com/poem.html --html out/poem.html --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHighlight,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(highlightCmd)
	highlightCmd.Flags().StringVar(&highlightMode, "mode", "", "Highlight mode: rhythm, words or none (default from session)")
	highlightCmd.Flags().StringVar(&highlightHTML, "html", "", "Also write the result to an HTML file")
	highlightCmd.Flags().BoolVar(&highlightSave, "save", false, "Save the text and mode to the session")
}

func runHighlight(cmd *cobra.Command, args []string) (err error) {
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

	if highlightMode != "" {
		state.HighlightMode, err = highlight.ParseMode(highlightMode)
		if err != nil {
			return err
		}
	}

	if len(args) == 1 {
		state.MainText, err = source.NewFetcher(os.Stdin).Fetch(ctx, args[0])
		if err != nil {
			return err
		}
	}

	if state.MainText == "" {
		err = errors.New("no text to highlight: pass a file, URL or '-' for stdin")
		return err
	}

	lex, err := a.lexicon(ctx)
	if err != nil {
		return err
	}

	cache, err := highlight.New(highlight.Config{
		RhymeCapacity: a.cfg.Highlight.RhymeCapacity,
		WordCapacity:  a.cfg.Highlight.WordCapacity,
		Mode:          state.HighlightMode,
	}, renderer.NewMarker(lex))
	if err != nil {
		return err
	}

	lines, err := highlightLines(cache, source.Lines(state.MainText))
	if err != nil {
		return err
	}

	out := renderer.NewTerminal(os.Stdout)
	for _, line := range lines {
		err = out.WriteLine(line)
		if err != nil {
			return err
		}
	}

	if highlightHTML != "" {
		err = renderer.WriteHTML(lines, highlightHTML)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "HTML saved at: %s\n", highlightHTML)
	}

	stats := cache.Stats()
	a.logger.Debug("highlight cache",
		zap.String("mode", string(cache.Mode())),
		zap.Int64("hits", stats.Hits),
		zap.Int64("misses", stats.Misses),
		zap.Int64("evictions", stats.Evictions),
	)

	if highlightSave {
		err = a.saveState(ctx, state)
		if err != nil {
			return err
		}
	}

	return err
}

// highlightLines renders every line through the cache, so repeated lines render once.
func highlightLines(cache *highlight.Cache, lines []string) (styled []highlight.StyledText, err error) {
	styled = make([]highlight.StyledText, 0, len(lines))
	for _, line := range lines {
		var s highlight.StyledText
		s, err = cache.GetOrRender(line)
		if err != nil {
			err = errors.Wrap(err, "failed to highlight text")
			return styled, err
		}
		styled = append(styled, s)
	}
	return styled, err
}
