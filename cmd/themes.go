package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List preset themes",
	Args:  cobra.NoArgs,
	RunE:  runThemes,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, args []string) (err error) {
	var a *app
	a, err = newApp()
	if err != nil {
		return err
	}
	defer a.close()

	table, err := a.themeTable()
	if err != nil {
		return err
	}

	for _, name := range table.Names() {
		words, _ := table.Words(name)
		if getVerbose() {
			fmt.Printf("%s: %s\n", name, strings.Join(words, " "))
			continue
		}
		fmt.Println(name)
	}

	return err
}
