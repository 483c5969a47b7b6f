package cmd

import (
	"errors"
	"fmt"

	"github.com/iksnae/blueprint/internal"
	"github.com/spf13/cobra"
)

// langCmd represents the lang command
var langCmd = &cobra.Command{
	Use:   "lang [code]",
	Short: "Show or set the display language",
	Long: `Without an argument, list the available languages and mark the active one.
With a language code (or a locale such as de_DE.UTF-8), switch to it and
remember the choice.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			tr := s.editor.Translator()
			for _, l := range tr.Languages() {
				marker := " "
				if l.Code == tr.Language() {
					marker = "*"
				}
				_, _ = fmt.Fprintf(out, "%s %s\t%s\n", marker, l.Code, l.Label)
			}
			return nil
		}

		n := s.editor.SetLanguage(args[0])
		if n.Level != internal.NoticeSuccess {
			return errors.New(n.Text)
		}
		internal.PrintNotice(out, n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(langCmd)
}
