package cmd

import (
	"fmt"

	"github.com/iksnae/blueprint/internal"
	"github.com/spf13/cobra"
)

var encodeCopy bool

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Encode JSON into a blueprint",
	Long: `Encode a JSON document into a blueprint string.

The JSON is read from the given file, or from stdin when no file or "-" is
given. Use --copy to also put the blueprint on the clipboard.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := "-"
		if len(args) > 0 {
			file = args[0]
		}
		text, err := readInput(cmd, nil, file)
		if err != nil {
			return err
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		s.editor.SetText(text)
		n := s.editor.Encode()
		if n.Level != internal.NoticeSuccess {
			return fmt.Errorf("%s", n.Text)
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), s.editor.Preview())
		internal.LogDebug("Encoded %s of JSON into %s",
			internal.HumanSize(len(s.editor.Value().Compact())), internal.HumanSize(len(s.editor.Preview())))

		if encodeCopy {
			internal.PrintNotice(cmd.ErrOrStderr(), s.editor.Copy())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().BoolVarP(&encodeCopy, "copy", "c", false, "Copy the blueprint to the clipboard")
}
