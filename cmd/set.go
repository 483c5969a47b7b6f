package cmd

import (
	"errors"
	"fmt"

	"github.com/iksnae/blueprint/internal"
	"github.com/spf13/cobra"
)

var (
	setBlob string
	setFile string
)

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set <path> <json>",
	Short: "Change one value in a blueprint",
	Long: `Replace the value at a path with a JSON value and print the re-encoded
blueprint. Paths use dots between keys and array indexes:

  blueprint set --blob 0eJy... entities.0.name '"Iron chest"'
  blueprint set --blob 0eJy... version 2`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.loadBlueprint(cmd, setBlob, setFile); err != nil {
			return err
		}

		n := s.editor.Set(args[0], args[1])
		if n.Level != internal.NoticeSuccess {
			return errors.New(n.Text)
		}
		internal.PrintNotice(cmd.ErrOrStderr(), n)

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), s.editor.Preview())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().StringVar(&setBlob, "blob", "", "Blueprint to edit")
	setCmd.Flags().StringVarP(&setFile, "file", "f", "", "Read the blueprint from a file (\"-\" for stdin)")
}
