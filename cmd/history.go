package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/blueprint/internal"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	sizeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently decoded blueprints",
	Long: `List the most recently decoded blueprints, newest first.

Entries are numbered from 1. Use 'blueprint history show N' to print one,
'blueprint history restore N' to decode it again and 'blueprint history clear'
to forget them all.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryList(cmd)
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recently decoded blueprints",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryList(cmd)
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <number>",
	Short: "Print a remembered blueprint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		entry, err := historyEntry(s, args[0])
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), entry.Blob)
		return nil
	},
}

var historyRestoreCmd = &cobra.Command{
	Use:   "restore <number>",
	Short: "Decode a remembered blueprint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		entry, err := historyEntry(s, args[0])
		if err != nil {
			return err
		}
		n := s.editor.Restore(entry.Index)
		if n.Level != internal.NoticeSuccess {
			return errors.New(n.Text)
		}
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintln(out, internal.ColorJSON(out, s.editor.Text()))
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget all remembered blueprints",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		internal.PrintNotice(cmd.OutOrStdout(), s.editor.ClearHistory())
		return nil
	},
}

func runHistoryList(cmd *cobra.Command) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	displayHistory(cmd, s.editor)
	return nil
}

// historyEntry resolves a 1-based entry number
func historyEntry(s *session, arg string) (internal.HistoryEntry, error) {
	number, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil {
		return internal.HistoryEntry{}, fmt.Errorf("invalid entry number: %s", arg)
	}
	entry, ok := s.editor.History().Get(number - 1)
	if !ok {
		return internal.HistoryEntry{}, fmt.Errorf("%s #%d", s.editor.T("historyMissing"), number)
	}
	return entry, nil
}

func displayHistory(cmd *cobra.Command, editor *internal.Editor) {
	out := cmd.OutOrStdout()
	entries := editor.History().List()
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(out, headerStyle.Render("📋 "+editor.T("historyEmpty")))
		return
	}

	header := headerStyle.Render(fmt.Sprintf("📋 %d of %d blueprint(s)", len(entries), editor.History().MaxItems()))
	_, _ = fmt.Fprintln(out, header)
	_, _ = fmt.Fprintln(out)

	// Use tabwriter for aligned columns
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("#")+"\t"+titleStyle.Render("ID")+"\t"+titleStyle.Render("Preview")+"\t"+titleStyle.Render("Size")+"\t")

	for _, entry := range entries {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t\n",
			entry.Index+1,
			idStyle.Render(entry.ID()),
			entry.Preview(),
			sizeStyle.Render(internal.HumanSize(len(entry.Blob))),
		)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, idStyle.Render("💡 Tip: use `blueprint history restore 1` to decode the newest entry"))
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyRestoreCmd, historyClearCmd)
}
