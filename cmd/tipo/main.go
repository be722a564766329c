// Package main provides the CLI entrypoint for tipo.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tipo/internal/config"
	"github.com/verte-zerg/tipo/internal/corpus"
	"github.com/verte-zerg/tipo/internal/selector"
	"github.com/verte-zerg/tipo/internal/tui"
)

const (
	defaultWordlist = "top250"
	defaultWords    = 30
)

var (
	testWordlist string
	testFile     string
	testWords    int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tipo",
		Short:         "TUI typing test",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTestCmd,
	}

	rootCmd.Flags().StringVarP(&testWordlist, "wordlist", "w", defaultWordlist, "built-in word list name, or 'os' for the system dictionary")
	rootCmd.Flags().StringVarP(&testFile, "file", "f", "", "path to a custom word list file (overrides --wordlist)")
	rootCmd.Flags().IntVarP(&testWords, "words", "n", defaultWords, "words per test")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newListsCmd())

	return rootCmd
}

func runTestCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "wordlist", &testWordlist, fileCfg.Test.Wordlist)
	applyStringConfig(cmd, "file", &testFile, fileCfg.Test.File)
	applyIntConfig(cmd, "words", &testWords, fileCfg.Test.Words)

	if testWords < 1 {
		return fmt.Errorf("--words must be at least 1")
	}

	words, err := loadCorpus(testWordlist, testFile)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("standard input is not a terminal")
	}

	sel := selector.New(rand.New(rand.NewSource(time.Now().UnixNano())))
	model, err := tui.NewModel(words, testWords, sel)
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return model.Err()
}

func loadCorpus(wordlist, file string) ([]string, error) {
	if file != "" {
		return corpus.LoadFile(file)
	}
	if wordlist == "os" {
		return corpus.LoadOS()
	}
	return corpus.Builtin(wordlist)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newListsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "List built-in word lists",
		Args:  cobra.NoArgs,
		RunE:  runListsCmd,
	}
}

func runListsCmd(cmd *cobra.Command, _ []string) error {
	for _, name := range corpus.BuiltinNames() {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tipo configuration
# Uncomment a value to enable it. CLI flags override config values.

[test]
# wordlist = %q        # Built-in word list name, or "os" for the system dictionary
# file = ""                # Path to a custom word list file (overrides wordlist)
# words = %d               # Words per test
`,
		defaultWordlist,
		defaultWords,
	)
}
