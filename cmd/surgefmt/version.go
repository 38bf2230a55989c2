package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"surgefmt/internal/version"
)

const versionTagline = "same code, fewer diffs"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show surgefmt build fingerprints",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("hash", false, "include git commit hash")
	versionCmd.Flags().Bool("message", false, "include git commit message")
	versionCmd.Flags().Bool("date", false, "include build timestamp")
	versionCmd.Flags().Bool("full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type versionFields struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	Tagline    string `json:"tagline"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

func runVersion(cmd *cobra.Command, _ []string) error {
	full, _ := cmd.Flags().GetBool("full")
	showHash, _ := cmd.Flags().GetBool("hash")
	showMessage, _ := cmd.Flags().GetBool("message")
	showDate, _ := cmd.Flags().GetBool("date")
	outputFormat, _ := cmd.Flags().GetString("format")
	showHash = showHash || full
	showMessage = showMessage || full
	showDate = showDate || full

	fields := versionFields{
		Tool:    "surgefmt",
		Version: orDefault(strings.TrimSpace(version.Version), "dev"),
		Tagline: versionTagline,
	}
	if showHash {
		fields.GitCommit = orDefault(strings.TrimSpace(version.GitCommit), "unknown")
	}
	if showMessage {
		fields.GitMessage = orDefault(strings.TrimSpace(version.GitMessage), "unknown")
	}
	if showDate {
		fields.BuildDate = orDefault(strings.TrimSpace(version.BuildDate), "unknown")
	}

	switch strings.ToLower(outputFormat) {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(fields)
	case "pretty":
		renderVersionPretty(cmd.OutOrStdout(), fields)
		return nil
	}
	return fmt.Errorf("unsupported format %q (must be pretty or json)", outputFormat)
}

func renderVersionPretty(out io.Writer, fields versionFields) {
	fmt.Fprintf(out, "surgefmt %s, %s\n", fields.Version, fields.Tagline)
	if fields.GitCommit != "" {
		fmt.Fprintf(out, "commit:  %s\n", fields.GitCommit)
	}
	if fields.GitMessage != "" {
		fmt.Fprintf(out, "message: %s\n", fields.GitMessage)
	}
	if fields.BuildDate != "" {
		fmt.Fprintf(out, "built:   %s\n", fields.BuildDate)
	}
	if fields.GitCommit == "" && fields.GitMessage == "" && fields.BuildDate == "" {
		fmt.Fprintln(out, "set --hash, --message, --date, or --full for more build trivia")
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
