package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/blueprint/internal"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	configPath  string
	dataDir     string
	storageName string
	langCode    string
	version     string = "dev"
	commit      string = "unknown"
	date        string = "unknown"
)

// newClipboard is replaced in tests
var newClipboard = func() internal.Clipboard { return internal.SystemClipboard{} }

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "blueprint",
	Short: "Decode, edit and re-encode blueprint strings",
	Long: `A CLI tool to decode, edit and re-encode compressed blueprint strings.

A blueprint is a "0" tag followed by base64 of a deflate stream holding JSON.
This tool turns blueprints into readable JSON and back again.

Features:
  • Decode blueprints into formatted JSON or YAML
  • Encode edited JSON back into a blueprint
  • Case-insensitive search with wraparound
  • Literal replace-all and path edits
  • History of the last decoded blueprints
  • Interactive editing session

Quick Start:
  blueprint decode 0eJy...              # Print a blueprint as JSON
  blueprint encode edited.json          # Encode JSON into a blueprint
  blueprint history                     # List recent blueprints
  blueprint edit                        # Start an interactive session`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.blueprint/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding history and settings")
	rootCmd.PersistentFlags().StringVar(&storageName, "storage", "", "Storage backend (sqlite, yaml, memory)")
	rootCmd.PersistentFlags().StringVar(&langCode, "lang", "", "Display language for this run (e.g. en, ru, de)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
