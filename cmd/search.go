package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/blueprint/internal"
	"github.com/spf13/cobra"
)

var (
	searchBlob  string
	searchFile  string
	searchPrev  bool
	searchCount bool

	positionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find text in a decoded blueprint",
	Long: `Search the formatted JSON of a blueprint, ignoring case.

Matches are listed in the order the editor visits them: from the top of the
document, or backwards from the first match with --prev. Use --count to
print only the number of matches.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.loadBlueprint(cmd, searchBlob, searchFile); err != nil {
			return err
		}

		query := args[0]
		total := s.editor.CountMatches(query)
		if searchCount {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), total)
			return nil
		}

		n := s.editor.Search(query)
		if !n.IsZero() {
			return noticeError(cmd, n)
		}
		if !s.editor.SearchState().Active() {
			return nil
		}

		out := cmd.OutOrStdout()
		color := internal.IsTerminal(out)
		for i := 0; i < total; i++ {
			if i > 0 {
				if searchPrev {
					n = s.editor.FindPrevious()
				} else {
					n = s.editor.FindNext()
				}
				if !n.IsZero() {
					return noticeError(cmd, n)
				}
			}
			printMatch(cmd, s.editor.Document(), s.editor.SearchState().Match(), color)
		}
		return nil
	},
}

// printMatch prints the 1-based position of r and the line it starts on
func printMatch(cmd *cobra.Command, doc *internal.Document, r internal.Range, color bool) {
	line := []rune(doc.Line(r.From.Line))
	pos := fmt.Sprintf("%d:%d", r.From.Line+1, r.From.Column+1)

	end := len(line)
	if r.To.Line == r.From.Line && r.To.Column < end {
		end = r.To.Column
	}
	before, match, after := string(line[:r.From.Column]), string(line[r.From.Column:end]), string(line[end:])

	if color {
		pos = positionStyle.Render(pos)
		match = matchStyle.Render(match)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", pos, strings.TrimSpace(before+match+after))
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchBlob, "blob", "", "Blueprint to search")
	searchCmd.Flags().StringVarP(&searchFile, "file", "f", "", "Read the blueprint from a file (\"-\" for stdin)")
	searchCmd.Flags().BoolVar(&searchPrev, "prev", false, "Walk matches backwards")
	searchCmd.Flags().BoolVar(&searchCount, "count", false, "Only print the number of matches")
}
