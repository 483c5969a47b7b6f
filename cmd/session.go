package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iksnae/blueprint/internal"
	"github.com/spf13/cobra"
)

// session bundles what a command needs: config, store and editor
type session struct {
	cfg    *internal.Config
	store  internal.KVStore
	editor *internal.Editor
}

// openSession loads config, opens the store and builds the editor. A store
// that cannot be opened is not fatal: history is then kept in memory only.
func openSession() (*session, error) {
	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if storageName != "" {
		cfg.Storage = internal.StorageBackend(storageName)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	store, err := internal.OpenStore(cfg.Storage, cfg.DataDir)
	if err != nil {
		internal.LogWarn("Storage not available, history will not be saved: %v", err)
		store = nil
	}

	tr, err := internal.NewTranslator()
	if err != nil {
		internal.CloseStore(store)
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}
	applyDefaultLanguage(tr, cfg.Language)

	// a saved language overrides the defaults
	editor := internal.NewEditor(internal.EditorConfig{
		Store:      store,
		Translator: tr,
		Clipboard:  newClipboard(),
		MaxHistory: cfg.History.MaxItems,
	})

	if langCode != "" && !selectLanguage(tr, langCode) {
		internal.LogWarn("Unknown language %q, using %s", langCode, tr.Language())
	}

	return &session{cfg: cfg, store: store, editor: editor}, nil
}

func (s *session) Close() {
	if s.store != nil {
		internal.CloseStore(s.store)
	}
}

// applyDefaultLanguage picks the configured language, else the one from
// the environment locale
func applyDefaultLanguage(tr *internal.Translator, configured string) {
	if configured != "" && selectLanguage(tr, configured) {
		return
	}
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if locale := os.Getenv(env); locale != "" {
			if selectLanguage(tr, locale) {
				return
			}
		}
	}
}

func selectLanguage(tr *internal.Translator, code string) bool {
	if tr.SetLanguage(strings.ToLower(code)) {
		return true
	}
	matched, ok := tr.MatchLanguage(code)
	return ok && tr.SetLanguage(matched)
}

// noticeError turns a failed notice into a command error and prints any
// other notice to stderr
func noticeError(cmd *cobra.Command, n internal.Notice) error {
	if n.Level == internal.NoticeError {
		return errors.New(n.Text)
	}
	internal.PrintNotice(cmd.ErrOrStderr(), n)
	return nil
}

// readInput returns the text of file, or of the first argument, or of
// stdin. A file or argument of "-" reads stdin.
func readInput(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case file == "-":
		return readAllFrom(cmd.InOrStdin())
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(data), nil
	case len(args) > 0 && args[0] == "-":
		return readAllFrom(cmd.InOrStdin())
	case len(args) > 0:
		return args[0], nil
	}

	in := cmd.InOrStdin()
	if internal.IsTerminal(in) {
		return "", errors.New("no input: pass it as an argument, with --file, or on stdin")
	}
	return readAllFrom(in)
}

func readAllFrom(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// loadBlueprint decodes the blueprint given by --blob, --file or stdin
// into the session editor. The blob is worked on transiently and is not
// recorded in history; only decode does that.
func (s *session) loadBlueprint(cmd *cobra.Command, blob, file string) error {
	var args []string
	if blob != "" {
		args = []string{blob}
	}
	input, err := readInput(cmd, args, file)
	if err != nil {
		return err
	}

	n := s.editor.Open(input)
	if n.Level != internal.NoticeSuccess {
		return errors.New(n.Text)
	}
	return nil
}
