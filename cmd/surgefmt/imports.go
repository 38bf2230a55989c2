package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"surgefmt"
	"surgefmt/internal/driver"
)

var importsCmd = &cobra.Command{
	Use:   "imports [flags] <path> [path...]",
	Short: "Sort and deduplicate import blocks without reformatting",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runImports,
}

func init() {
	importsCmd.Flags().Bool("check", false, "report files whose imports need sorting")
	importsCmd.Flags().Bool("stdout", false, "print rewritten files to stdout instead of rewriting them")
}

func runImports(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	if writeToStdout && check {
		return fmt.Errorf("imports: --stdout cannot be used with --check")
	}

	files, err := driver.CollectSourceFiles(cmd.Context(), args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("imports: no source files found")
	}

	var hasErrors bool
	var hasChanges bool

	for _, path := range files {
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from the CLI
		if err != nil {
			hasErrors = true
			fmt.Fprintf(os.Stderr, "imports: %s: %v\n", path, err)
			continue
		}

		out, err := surgefmt.CanonicalizeImports(data)
		if err != nil {
			hasErrors = true
			fmt.Fprintf(os.Stderr, "imports: %s: %v\n", path, err)
			continue
		}

		if writeToStdout {
			_, _ = os.Stdout.Write(out)
			continue
		}

		if bytes.Equal(data, out) {
			continue
		}
		hasChanges = true

		if check {
			if !quiet {
				fmt.Fprintln(os.Stdout, path)
			}
			continue
		}

		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(path, out, mode.Perm()); err != nil {
			hasErrors = true
			fmt.Fprintf(os.Stderr, "imports: %s: %v\n", path, err)
			continue
		}
		if !quiet {
			fmt.Fprintf(os.Stdout, "rewrote imports in %s\n", path)
		}
	}

	if hasErrors {
		return fmt.Errorf("imports: failed to process some files")
	}
	if check && hasChanges {
		return fmt.Errorf("imports: import changes required")
	}
	return nil
}
