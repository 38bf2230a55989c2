package main

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"surgefmt/internal/prof"
	"surgefmt/internal/version"
)

var profSession *prof.Session

var rootCmd = &cobra.Command{
	Use:   "surgefmt",
	Short: "Surge source code formatter",
	Long:  `surgefmt re-lays out Surge source files: whitespace only, imports sorted, nothing else touched`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cpu, _ := cmd.Flags().GetString("cpuprofile")
		heap, _ := cmd.Flags().GetString("memprofile")
		trc, _ := cmd.Flags().GetString("traceprofile")
		if cpu == "" && heap == "" && trc == "" {
			return nil
		}
		s, err := prof.Start(cpu, heap, trc)
		if err != nil {
			return err
		}
		profSession = s
		return nil
	},
	PersistentPostRunE: func(*cobra.Command, []string) error {
		return profSession.Stop()
	},
}

// main initializes the CLI by setting the command version, registering
// subcommands and persistent flags, and then executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(importsCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to the given file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to the given file on exit")
	rootCmd.PersistentFlags().String("traceprofile", "", "write a runtime trace to the given file")
	_ = rootCmd.PersistentFlags().MarkHidden("cpuprofile")
	_ = rootCmd.PersistentFlags().MarkHidden("memprofile")
	_ = rootCmd.PersistentFlags().MarkHidden("traceprofile")

	cobra.OnInitialize(applyColorMode)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func applyColorMode() {
	mode, err := rootCmd.PersistentFlags().GetString("color")
	if err != nil {
		return
	}
	switch strings.TrimSpace(strings.ToLower(mode)) {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
