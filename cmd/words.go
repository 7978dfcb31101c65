package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Manage the custom dictionary",
	Long: `Manage your own words. They are stored in Redis and merged into the corpus
on every run, ranked as very popular words.`,
}

//nolint:gochecknoglobals // Cobra boilerplate
var wordsAddCmd = &cobra.Command{
	Use:   "add <word>...",
	Short: "Add words",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWordsAdd,
}

//nolint:gochecknoglobals // Cobra boilerplate
var wordsRemoveCmd = &cobra.Command{
	Use:   "remove <word>...",
	Short: "Remove words",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWordsRemove,
}

//nolint:gochecknoglobals // Cobra boilerplate
var wordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List words",
	Args:  cobra.NoArgs,
	RunE:  runWordsList,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(wordsCmd)
	wordsCmd.AddCommand(wordsAddCmd)
	wordsCmd.AddCommand(wordsRemoveCmd)
	wordsCmd.AddCommand(wordsListCmd)
}

func runWordsAdd(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var a *app
	a, err = newApp()
	if err != nil {
		return err
	}
	defer a.close()

	dict, err := a.customDict()
	if err != nil {
		return err
	}

	var added int64
	added, err = dict.Add(ctx, args...)
	if err != nil {
		return err
	}

	fmt.Printf("Added %d word(s)\n", added)
	return err
}

func runWordsRemove(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var a *app
	a, err = newApp()
	if err != nil {
		return err
	}
	defer a.close()

	dict, err := a.customDict()
	if err != nil {
		return err
	}

	var removed int64
	removed, err = dict.Remove(ctx, args...)
	if err != nil {
		return err
	}

	fmt.Printf("Removed %d word(s)\n", removed)
	return err
}

func runWordsList(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var a *app
	a, err = newApp()
	if err != nil {
		return err
	}
	defer a.close()

	dict, err := a.customDict()
	if err != nil {
		return err
	}

	var words []string
	words, err = dict.All(ctx)
	if err != nil {
		return err
	}

	for _, w := range words {
		fmt.Println(w)
	}
	return err
}
