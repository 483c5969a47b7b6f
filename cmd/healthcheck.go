package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/blueprint/internal"
	"github.com/spf13/cobra"
)

const healthcheckKey = "blueprintHealthcheck"

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that blueprint can store history and encode data",
	Long: `Check the health of blueprint by verifying:
  • Configuration loading
  • Storage backend access (write, read, remove)
  • History loading
  • Bundled translations
  • Clipboard availability
  • Codec round trip

Use --verbose for paths and details.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		say := func(a ...interface{}) { _, _ = fmt.Fprintln(out, a...) }

		say(sectionStyle.Render("🔍 Blueprint Health Check"))
		say()

		// Step 1: Configuration
		say(infoStyle.Render("Step 1: Loading configuration..."))
		cfg, err := internal.LoadConfig(configPath)
		if err != nil {
			say(errorStyle.Render("❌ Failed to load configuration:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
		if storageName != "" {
			cfg.Storage = internal.StorageBackend(storageName)
		}
		say(successStyle.Render("✅ Configuration loaded"))
		if verbose {
			path := configPath
			if path == "" {
				path = internal.DefaultConfigPath()
			}
			say(fmt.Sprintf("   Config file: %s", path))
			say(fmt.Sprintf("   Data directory: %s", cfg.DataDir))
			say(fmt.Sprintf("   Storage backend: %s", cfg.Storage))
		}
		say()

		// Step 2: Storage
		say(infoStyle.Render("Step 2: Testing storage backend..."))
		storageOK := false
		store, err := internal.OpenStore(cfg.Storage, cfg.DataDir)
		if err != nil {
			say(errorStyle.Render("❌ Failed to open storage:"), err)
		} else {
			defer internal.CloseStore(store)
			if err := probeStore(store); err != nil {
				say(errorStyle.Render("❌ Storage is not writable:"), err)
			} else {
				storageOK = true
				say(successStyle.Render("✅ Storage backend is writable"))
			}
			if verbose {
				if p, ok := store.(interface{ Path() string }); ok {
					say(fmt.Sprintf("   Location: %s", p.Path()))
				}
			}
		}
		say()

		// Step 3: History
		say(infoStyle.Render("Step 3: Loading history..."))
		var history *internal.HistoryStore
		if storageOK {
			history = internal.NewHistoryStore(store, internal.WithMaxItems(cfg.History.MaxItems))
			history.Load()
			say(successStyle.Render(fmt.Sprintf("✅ %d of %d history entries", history.Len(), history.MaxItems())))
		} else {
			say(warningStyle.Render("⚠️  Skipped: history would be kept in memory only"))
		}
		say()

		// Step 4: Translations
		say(infoStyle.Render("Step 4: Loading translations..."))
		tr, err := internal.NewTranslator()
		if err != nil {
			say(errorStyle.Render("❌ Failed to load translations:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		say(successStyle.Render(fmt.Sprintf("✅ %d language(s) available", len(tr.Languages()))))
		if verbose {
			for _, l := range tr.Languages() {
				say(fmt.Sprintf("   %s  %s", l.Code, l.Label))
			}
		}
		say()

		// Step 5: Clipboard
		say(infoStyle.Render("Step 5: Checking clipboard..."))
		clipboardOK := internal.SystemClipboard{}.Available()
		if clipboardOK {
			say(successStyle.Render("✅ Clipboard available"))
		} else {
			say(warningStyle.Render("⚠️  No clipboard utility found (copy will be unavailable)"))
		}
		say()

		// Step 6: Codec
		say(infoStyle.Render("Step 6: Testing codec round trip..."))
		codecErr := probeCodec()
		codecOK := codecErr == nil
		if codecOK {
			say(successStyle.Render("✅ Encode and decode agree"))
		} else {
			say(errorStyle.Render("❌ Codec round trip failed:"), codecErr)
		}
		say()

		// Summary
		say(sectionStyle.Render("📊 Summary"))
		say()

		switch {
		case storageOK && codecOK:
			say(successStyle.Render("✅ Health check passed!"))
			if !clipboardOK {
				say("   • Copying to the clipboard is not available")
			}
			return nil
		case codecOK:
			say(warningStyle.Render("⚠️  Blueprints work but history will not be saved"))
			say("   • Use --storage memory or fix the data directory")
			return nil
		default:
			say(errorStyle.Render("❌ Health check failed"))
			return fmt.Errorf("health check failed: codec round trip")
		}
	},
}

// probeStore writes, reads back and removes a marker value
func probeStore(store internal.KVStore) error {
	const marker = "ok"
	if err := store.Set(healthcheckKey, marker); err != nil {
		return err
	}
	got, ok, err := store.Get(healthcheckKey)
	if err != nil {
		return err
	}
	if !ok || got != marker {
		return fmt.Errorf("read back %q, want %q", got, marker)
	}
	return store.Remove(healthcheckKey)
}

func probeCodec() error {
	v := internal.Object(
		internal.Member{Key: "name", Value: internal.String("healthcheck")},
		internal.Member{Key: "items", Value: internal.Array(internal.Number("1"), internal.Bool(true), internal.Null())},
	)
	blob, err := internal.Encode(v)
	if err != nil {
		return err
	}
	back, err := internal.Decode(blob)
	if err != nil {
		return err
	}
	if !back.Equal(v) {
		return fmt.Errorf("decoded value differs from encoded value")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
}
