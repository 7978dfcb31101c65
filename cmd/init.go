package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nikogura/rhymer/pkg/config"
)

//nolint:gochecknoglobals // Cobra boilerplate
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) (err error) {
	path := getConfigFile()
	if path == "" {
		var dir string
		dir, err = config.Dir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "config.json")
	}

	err = config.InitConfig(path)
	if err != nil {
		return err
	}

	fmt.Printf("Config written to: %s\n", path)
	fmt.Println("Put your word corpus at the lexicon_path it names, one word per line:")
	fmt.Println("  word<TAB>frequency<TAB>part-of-speech<TAB>stressed-syllable<TAB>v1,v2,...")
	return err
}
