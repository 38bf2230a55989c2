package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"surgefmt/internal/config"
	"surgefmt/internal/diagfmt"
	"surgefmt/internal/driver"
	"surgefmt/internal/format"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format Surge source files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
	fmtCmd.Flags().Int("width", 0, "line width budget (0 = config or default)")
	fmtCmd.Flags().String("style", "", "style preset (default|compiler|stdlib)")
	fmtCmd.Flags().Int("jobs", 0, "parallel workers (0 = GOMAXPROCS)")
	fmtCmd.Flags().Bool("cache", false, "reuse cached results for unchanged files")
	fmtCmd.Flags().Bool("debug-layout-trace", false, "dump the layout instruction stream to stderr")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}

	fmtOptions, err := resolveFormatOptions(cmd)
	if err != nil {
		return err
	}

	opts := driver.FormatOptions{
		Check:   check,
		Stdout:  writeToStdout,
		Jobs:    jobs,
		Options: fmtOptions,
	}
	if useCache {
		cache, cacheErr := driver.OpenResultCache("surgefmt")
		if cacheErr != nil {
			return fmt.Errorf("fmt: failed to open cache: %w", cacheErr)
		}
		opts.Cache = cache
	}

	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	interactive := shouldUseTUI(mode) && !writeToStdout && outputFormat == "text" && !quiet

	var formatResults []driver.FormatResult
	if interactive {
		formatResults, err = runFormatWithUI(cmd.Context(), "formatting", args, opts)
	} else {
		formatResults, err = driver.FormatPaths(cmd.Context(), args, opts)
	}
	if err != nil {
		return err
	}

	var hasErrors bool
	var hasChanges bool

	switch outputFormat {
	case "text":
		if writeToStdout {
			renderFmtStdout(formatResults, &hasErrors)
			if hasErrors {
				return fmt.Errorf("fmt: failed to format some files")
			}
			return nil
		}
		renderFmtText(formatResults, check, quiet, &hasErrors, &hasChanges)
	case "json":
		if err := renderFmtJSON(formatResults, check); err != nil {
			return err
		}
		for _, res := range formatResults {
			hasErrors = hasErrors || res.Err != nil
			hasChanges = hasChanges || res.Changed
		}
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

// resolveFormatOptions layers the configuration: preset/config file first,
// explicit flags on top.
func resolveFormatOptions(cmd *cobra.Command) (format.Options, error) {
	style, err := cmd.Flags().GetString("style")
	if err != nil {
		return format.Options{}, err
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return format.Options{}, err
	}
	trace, err := cmd.Flags().GetBool("debug-layout-trace")
	if err != nil {
		return format.Options{}, err
	}

	var opts format.Options
	switch {
	case style != "":
		opts, err = config.StyleOptions(style)
		if err != nil {
			return format.Options{}, err
		}
	default:
		manifest, ok, derr := config.Discover(".")
		if derr != nil {
			return format.Options{}, derr
		}
		if ok {
			opts = manifest.Options()
		} else {
			opts = format.Defaults()
		}
	}

	if width > 0 {
		opts.MaxWidth = width
	}
	if trace {
		opts.DebugLayoutTrace = true
		opts.TraceWriter = os.Stderr
	}
	return opts, nil
}

func renderFmtStdout(results []driver.FormatResult, hasErrors *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			reportFileError(res)
			continue
		}

		_, _ = os.Stdout.Write(res.Formatted)
	}
}

// reportFileError re-reads the file so the snippet shows what the run saw.
// The re-read is best effort: without content only the header is printed.
func reportFileError(res driver.FormatResult) {
	src, _ := os.ReadFile(res.Path) // #nosec G304 -- path comes from the CLI
	diagfmt.Pretty(os.Stderr, res.Path, src, res.Err)
}

func renderFmtText(results []driver.FormatResult, check, quiet bool, hasErrors, hasChanges *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			reportFileError(res)
			continue
		}

		if check {
			if res.Changed {
				*hasChanges = true
				if !quiet {
					fmt.Fprintln(os.Stdout, res.Path)
				}
			}
			continue
		}

		if res.Changed && !quiet {
			fmt.Fprintf(os.Stdout, "reformatted %s\n", res.Path)
		}
	}
}

func renderFmtJSON(results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string             `json:"path"`
		Changed  bool               `json:"changed"`
		Error    *diagfmt.ErrorJSON `json:"error,omitempty"`
		CheckRun bool               `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, CheckRun: check}
		if res.Err != nil {
			e := diagfmt.BuildErrorJSON(res.Err)
			jr.Error = &e
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
