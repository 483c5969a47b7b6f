package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/iksnae/blueprint/internal"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
)

// maxLineSize bounds one REPL line; blueprints can be large
const maxLineSize = 16 * 1024 * 1024

const editHelp = `Commands:
  decode <blueprint>        decode a blueprint into the buffer
  encode                    encode the buffer and show the blueprint
  load <file>               load JSON text from a file into the buffer
  show                      print the buffer
  preview                   print the last encoded blueprint
  search <query>            find the first match, ignoring case
  next, prev                move between matches
  replace <find> <with>     replace every literal occurrence
  get <path>                print the value at a path
  set <path> <json>         change the value at a path
  copy                      copy the blueprint to the clipboard
  history                   list remembered blueprints
  restore <number>          decode a remembered blueprint
  clear-history             forget all remembered blueprints
  lang [code]               list languages or switch language
  help                      show this help
  quit                      leave the session
Arguments are split like a shell: quote values that contain spaces.`

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit [blueprint]",
	Short: "Start an interactive editing session",
	Long: `Start an interactive session that keeps a JSON buffer, the encoded
blueprint and the search position between commands. Type 'help' for the list
of commands. Commands are also read from a pipe, one per line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		repl := &editSession{
			editor: s.editor,
			out:    cmd.OutOrStdout(),
			prompt: internal.IsTerminal(cmd.InOrStdin()),
		}
		if len(args) > 0 {
			repl.exec([]string{"decode", args[0]})
		}
		return repl.run(cmd.InOrStdin())
	},
}

// editSession is one interactive session over an Editor
type editSession struct {
	editor *internal.Editor
	out    io.Writer
	prompt bool
}

func (r *editSession) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for {
		if r.prompt {
			_, _ = fmt.Fprint(r.out, "blueprint> ")
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		words, err := shellquote.Split(line)
		if err != nil {
			internal.PrintError(r.out, fmt.Sprintf("cannot parse command: %v", err))
			continue
		}
		if !r.exec(words) {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// exec runs one command and reports whether the session continues
func (r *editSession) exec(words []string) bool {
	if len(words) == 0 {
		return true
	}
	// commands are case-sensitive so that N can mirror n
	name, args := words[0], words[1:]
	e := r.editor

	switch name {
	case "quit", "exit", "q":
		return false
	case "help", "?":
		_, _ = fmt.Fprintln(r.out, editHelp)
	case "decode", "d":
		if r.notify(e.Decode(strings.Join(args, ""))) {
			r.printText()
		}
	case "encode", "e":
		if r.notify(e.Encode()) {
			_, _ = fmt.Fprintln(r.out, e.Preview())
		}
	case "load":
		if !r.needArgs(args, 1, "load <file>") {
			break
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			internal.PrintError(r.out, err.Error())
			break
		}
		e.SetText(string(data))
		r.printText()
	case "show":
		r.printText()
	case "preview":
		if e.Preview() != "" {
			_, _ = fmt.Fprintln(r.out, e.Preview())
		}
	case "search", "/":
		r.notify(e.Search(strings.Join(args, " ")))
		r.printMatch()
	case "next", "n":
		r.notify(e.FindNext())
		r.printMatch()
	case "prev", "p", "N":
		r.notify(e.FindPrevious())
		r.printMatch()
	case "replace":
		if r.needArgs(args, 2, "replace <find> <with>") {
			r.notify(e.ReplaceAll(args[0], args[1]))
		}
	case "get":
		if !r.needArgs(args, 1, "get <path>") {
			break
		}
		if raw, ok := e.Query(args[0]); ok {
			_, _ = fmt.Fprintln(r.out, raw)
		} else {
			internal.PrintWarning(r.out, fmt.Sprintf("path not found: %s", args[0]))
		}
	case "set":
		if r.needArgs(args, 2, "set <path> <json>") {
			r.notify(e.Set(args[0], strings.Join(args[1:], " ")))
		}
	case "copy", "c":
		r.notify(e.Copy())
	case "history", "h":
		r.printHistory()
	case "restore":
		if !r.needArgs(args, 1, "restore <number>") {
			break
		}
		number, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
		if err != nil {
			internal.PrintError(r.out, fmt.Sprintf("invalid entry number: %s", args[0]))
			break
		}
		if r.notify(e.Restore(number - 1)) {
			r.printText()
		}
	case "clear-history":
		r.notify(e.ClearHistory())
	case "lang":
		if len(args) == 0 {
			for _, l := range e.Translator().Languages() {
				_, _ = fmt.Fprintf(r.out, "  %s\t%s\n", l.Code, l.Label)
			}
			break
		}
		r.notify(e.SetLanguage(args[0]))
	default:
		internal.PrintWarning(r.out, fmt.Sprintf("unknown command %q, type 'help'", name))
	}
	return true
}

// notify prints n and reports whether it was a success
func (r *editSession) notify(n internal.Notice) bool {
	internal.PrintNotice(r.out, n)
	return n.Level == internal.NoticeSuccess
}

func (r *editSession) needArgs(args []string, n int, usage string) bool {
	if len(args) < n {
		internal.PrintWarning(r.out, "usage: "+usage)
		return false
	}
	return true
}

func (r *editSession) printText() {
	_, _ = fmt.Fprintln(r.out, internal.ColorJSON(r.out, r.editor.Text()))
}

func (r *editSession) printMatch() {
	st := r.editor.SearchState()
	if !st.Active() {
		return
	}
	m := st.Match()
	if m.IsEmpty() {
		return
	}
	line := strings.TrimSpace(r.editor.Document().Line(m.From.Line))
	_, _ = fmt.Fprintf(r.out, "%d:%d\t%s\n", m.From.Line+1, m.From.Column+1, line)
}

func (r *editSession) printHistory() {
	entries := r.editor.History().List()
	if len(entries) == 0 {
		internal.PrintInfo(r.out, r.editor.T("historyEmpty"))
		return
	}
	_, _ = fmt.Fprintln(r.out, r.editor.T("historyRestoreTitle"))
	for _, entry := range entries {
		_, _ = fmt.Fprintf(r.out, "  %d. %s\n", entry.Index+1, entry.Preview())
	}
}

func init() {
	rootCmd.AddCommand(editCmd)
}
