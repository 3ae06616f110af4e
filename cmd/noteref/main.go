package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coolbeans/noteref/pkg/noteref"
	"github.com/coolbeans/noteref/pkg/pattern"
	"github.com/coolbeans/noteref/pkg/watch"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "noteref",
		Short: "Footnote cross-reference post-processor for .docx files",
		Long: `Noteref rewrites the footnote cross-references in a Supra + Pandoc
.docx file so that back-references like "see supra note 3" become live,
bookmark-linked NOTEREF fields instead of plain numerals.

Every byte outside the recognized reference markup is preserved exactly.`,
		Version: version,
	}

	rootCmd.AddCommand(processCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Rewrite cross-references in a .docx file",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			output, _ := cmd.Flags().GetString("output")
			verbose, _ := cmd.Flags().GetInt("verbose")
			patternsPath, _ := cmd.Flags().GetString("patterns")

			if output == "" {
				output = input
			}

			opts, err := pipelineOptions(verbose, patternsPath)
			if err != nil {
				return err
			}

			if err := noteref.ProcessPackage(input, output, opts...); err != nil {
				return err
			}

			fmt.Printf("Processed %s -> %s\n", input, output)
			return nil
		},
	}

	addProcessFlags(cmd)
	return cmd
}

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reprocess a .docx file whenever it changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			output, _ := cmd.Flags().GetString("output")
			verbose, _ := cmd.Flags().GetInt("verbose")
			patternsPath, _ := cmd.Flags().GetString("patterns")
			debounce, _ := cmd.Flags().GetDuration("debounce")

			if output == "" {
				return fmt.Errorf("watch requires --output: reprocessing in place would retrigger the watch")
			}

			opts, err := pipelineOptions(verbose, patternsPath)
			if err != nil {
				return err
			}
			logger := newLogger(verbose)

			watcher, err := watch.New(input, debounce, func(path string) {
				if err := noteref.ProcessPackage(path, output, opts...); err != nil {
					logger.Error("processing failed", "input", path, "error", err)
					return
				}
				fmt.Printf("Processed %s -> %s\n", path, output)
			})
			if err != nil {
				return err
			}

			if err := watcher.Start(); err != nil {
				return err
			}
			defer watcher.Stop()

			fmt.Printf("Watching %s (Ctrl-C to stop)\n", input)

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			return nil
		},
	}

	addProcessFlags(cmd)
	cmd.Flags().Duration("debounce", watch.DefaultDebounce, "Quiet period before reprocessing after a change")
	return cmd
}

func addProcessFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "The .docx file to process")
	cmd.Flags().StringP("output", "o", "", "The .docx file to write (blank overwrites the input)")
	cmd.Flags().IntP("verbose", "v", 3, "Verbosity level between 0 (errors only) and 5 (trace)")
	cmd.Flags().String("patterns", "", "YAML file overriding the built-in reference patterns")
	cmd.MarkFlagRequired("input")
}

// pipelineOptions builds the Process options for the shared flags.
func pipelineOptions(verbose int, patternsPath string) ([]noteref.Option, error) {
	opts := []noteref.Option{noteref.WithLogger(newLogger(verbose))}

	if patternsPath != "" {
		pats, err := pattern.LoadFile(patternsPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, noteref.WithPatterns(pats))
	}

	return opts, nil
}

// newLogger maps the 0-5 verbosity scale onto slog levels and returns a
// text logger on stderr.
func newLogger(verbose int) *slog.Logger {
	var level slog.Level
	switch {
	case verbose <= 1:
		level = slog.LevelError
	case verbose == 2:
		level = slog.LevelWarn
	case verbose == 3:
		level = slog.LevelInfo
	case verbose == 4:
		level = slog.LevelDebug
	default:
		// Trace: below Debug so every record passes.
		level = slog.LevelDebug - 4
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	})

	return slog.New(handler)
}
