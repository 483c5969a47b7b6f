package cmd

import (
	"errors"
	"fmt"

	"github.com/iksnae/blueprint/internal"
	"github.com/iksnae/blueprint/internal/export"
	"github.com/spf13/cobra"
)

var (
	decodeFile      string
	decodeFormat    string
	decodePath      string
	decodeNoHistory bool
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode [blueprint]",
	Short: "Decode a blueprint into JSON",
	Long: `Decode a blueprint string into formatted JSON.

The blueprint can be passed as an argument, read from a file with --file,
or piped on stdin ("-" reads stdin explicitly). Every decoded blueprint is
remembered in history, even one that fails to decode.

Use --path to print only part of the document, e.g. --path entities.0.name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if decodeFormat != "json" {
			if _, err := export.NewExporter(decodeFormat); err != nil {
				return err
			}
		}

		input, err := readInput(cmd, args, decodeFile)
		if err != nil {
			return err
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		var n internal.Notice
		if decodeNoHistory {
			n = s.editor.Open(input)
		} else {
			n = s.editor.Decode(input)
		}
		if n.Level != internal.NoticeSuccess {
			return errors.New(n.Text)
		}
		internal.LogDebug("Decoded %s blob", internal.HumanSize(len(s.editor.Preview())))

		if decodePath != "" {
			raw, ok := s.editor.Query(decodePath)
			if !ok {
				return fmt.Errorf("path not found: %s", decodePath)
			}
			value, err := internal.ParseValue(raw)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", decodePath, err)
			}
			return printValue(cmd, value, decodeFormat)
		}

		return printValue(cmd, s.editor.Value(), decodeFormat)
	},
}

// printValue writes v to stdout in an export format
func printValue(cmd *cobra.Command, v internal.Value, format string) error {
	out := cmd.OutOrStdout()
	if format == "json" {
		_, _ = fmt.Fprintln(out, internal.ColorJSON(out, v.Pretty()))
		return nil
	}

	exporter, err := export.NewExporter(format)
	if err != nil {
		return err
	}
	return exporter.Export(v, out)
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringVarP(&decodeFile, "file", "f", "", "Read the blueprint from a file (\"-\" for stdin)")
	decodeCmd.Flags().StringVar(&decodeFormat, "format", "json", "Output format (json, yaml, jsonl, md, blueprint)")
	decodeCmd.Flags().StringVarP(&decodePath, "path", "p", "", "Print only the value at this path")
	decodeCmd.Flags().BoolVar(&decodeNoHistory, "no-history", false, "Do not remember the blueprint in history")
}
