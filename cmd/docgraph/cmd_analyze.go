package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/docgraph-labs/docgraph/internal/analyzer"
	"github.com/docgraph-labs/docgraph/internal/analyzer/handlers"
	"github.com/docgraph-labs/docgraph/internal/config"
)

func newAnalyzeCmd(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "analyze [paths...]",
		Short: "Analyze source files and report the resulting entity graph",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, _, err := runAnalysis(cmd, cfg, logger, args)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "files: %d  entities: %d  unresolved: %d\n",
				report.FilesProcessed, report.Entities, len(report.Unresolved))
			for _, d := range report.Unresolved {
				fmt.Fprintf(cmd.OutOrStdout(), "unresolved reference %s at %s:%d\n", d.Ref, d.File, d.Line)
			}

			if strict && len(report.Unresolved) > 0 {
				return fmt.Errorf("%d unresolved references", len(report.Unresolved))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when unresolved references remain")
	return cmd
}

// runAnalysis expands paths, runs the analyzer, and returns the report with
// the runner for callers that need the graph afterwards.
func runAnalysis(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, args []string) (*analyzer.Report, *analyzer.Runner, error) {
	paths, err := expandPaths(args, cfg.Analyzer.Extensions)
	if err != nil {
		return nil, nil, err
	}
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("no source files found under %v", args)
	}

	reg := analyzer.NewRegistry()
	handlers.DeclareAll(reg)

	runner := analyzer.NewRunner(reg, logger)
	runner.Resolver().MaxRetries = cfg.Analyzer.MaxRetries

	report, err := runner.Run(cmd.Context(), paths)
	if err != nil {
		return nil, nil, err
	}
	return report, runner, nil
}

// expandPaths resolves files and directories to the ordered list of source
// files to analyze.
func expandPaths(args []string, exts []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && slices.Contains(exts, filepath.Ext(path)) {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
