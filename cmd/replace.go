package cmd

import (
	"errors"
	"fmt"

	"github.com/iksnae/blueprint/internal"
	"github.com/spf13/cobra"
)

var (
	replaceBlob string
	replaceFile string
	replaceText bool
)

// replaceCmd represents the replace command
var replaceCmd = &cobra.Command{
	Use:   "replace <find> <with>",
	Short: "Replace text in a blueprint",
	Long: `Replace every occurrence of a literal string in the formatted JSON of a
blueprint and print the re-encoded blueprint.

Matching is case-sensitive and <find> is never treated as a pattern. The
result must still be valid JSON. Use --text to print the JSON instead.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.loadBlueprint(cmd, replaceBlob, replaceFile); err != nil {
			return err
		}

		n := s.editor.ReplaceAll(args[0], args[1])
		if n.Level != internal.NoticeSuccess {
			return errors.New(n.Text)
		}
		internal.PrintNotice(cmd.ErrOrStderr(), n)

		if en := s.editor.Encode(); en.Level != internal.NoticeSuccess {
			return fmt.Errorf("replacement produced invalid JSON: %s", en.Text)
		}

		out := cmd.OutOrStdout()
		if replaceText {
			_, _ = fmt.Fprintln(out, internal.ColorJSON(out, s.editor.Text()))
			return nil
		}
		_, _ = fmt.Fprintln(out, s.editor.Preview())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replaceCmd)
	replaceCmd.Flags().StringVar(&replaceBlob, "blob", "", "Blueprint to edit")
	replaceCmd.Flags().StringVarP(&replaceFile, "file", "f", "", "Read the blueprint from a file (\"-\" for stdin)")
	replaceCmd.Flags().BoolVar(&replaceText, "text", false, "Print the edited JSON instead of the blueprint")
}
