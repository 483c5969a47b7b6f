package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/blueprint/internal"
	"github.com/iksnae/blueprint/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
	exportBlob   string
	exportFile   string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a blueprint to a file",
	Long: `Export a decoded blueprint in another format (json, jsonl, yaml, md, blueprint).

The blueprint is read from --blob, --file or stdin. Without --out the export
is written to stdout. When --out names a directory, the file is named after
the blueprint's content hash.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Create exporter
		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.loadBlueprint(cmd, exportBlob, exportFile); err != nil {
			return err
		}
		value := s.editor.Value()

		if exportOut == "" {
			if err := exporter.Export(value, cmd.OutOrStdout()); err != nil {
				return &internal.ExportError{Format: exportFormat, Path: "stdout", Err: err}
			}
			return nil
		}

		path := exportOut
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, fmt.Sprintf("blueprint_%s.%s", internal.BlobID(s.editor.Preview()), exporter.Extension()))
		}

		// Ensure output directory exists
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return &internal.ExportError{Format: exportFormat, Path: path, Err: err}
		}

		file, err := os.Create(path)
		if err != nil {
			return &internal.ExportError{Format: exportFormat, Path: path, Err: err}
		}
		if err := exporter.Export(value, file); err != nil {
			_ = file.Close()
			return &internal.ExportError{Format: exportFormat, Path: path, Err: err}
		}
		if err := file.Close(); err != nil {
			return &internal.ExportError{Format: exportFormat, Path: path, Err: err}
		}

		internal.PrintSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Export complete: %s", path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "F", "json", "Export format (json, jsonl, yaml, md, blueprint)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file or directory (default stdout)")
	exportCmd.Flags().StringVar(&exportBlob, "blob", "", "Blueprint to export")
	exportCmd.Flags().StringVarP(&exportFile, "file", "f", "", "Read the blueprint from a file (\"-\" for stdin)")
}
