package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/kiosk-idle/internal/config"
)

var flagConfigResolved bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the attract configuration",
	Long: `Print the embedded default configuration, ready to be copied to
~/.kiosk-idle/configs/attract.yaml or ./configs/attract.yaml and edited.
With --resolved, prints the configuration a session would actually use after
the config search and the difficulty preset.

Examples:
  kiosk-idle config > configs/attract.yaml
  kiosk-idle config --resolved --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigResolved, "resolved", false, "Print the effective configuration")
	addGameFlags(configCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) {
	if !flagConfigResolved {
		_, _ = os.Stdout.Write(config.GetDefaultYAML())
		return
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.LoadAttract(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	config.ApplyAttractPreset(&cfg, preset)

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
		os.Exit(1)
	}
	_, _ = os.Stdout.Write(out)
}
