package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/analyzer"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/filesystem"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/logger"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/output"
)

type fileReport struct {
	File   string           `json:"file" yaml:"file"`
	Report *analyzer.Report `json:"report" yaml:"report"`
}

// AnalyzeCmd creates the 'analyze' command.
func AnalyzeCmd() *cobra.Command {
	var watch bool
	var jobs int

	cmd := &cobra.Command{
		Use:   "analyze <file|dir>...",
		Short: "Report quality issues and metrics",
		Long: `Analyze TypeScript files for size, complexity, missing JSDoc, naming
and possibly unused imports. Directories are searched recursively, skipping
node_modules, build output and declaration files.

Thresholds and exclusions come from the analyze section of codegen.yaml.

Examples:
  codegen analyze src
  codegen analyze src/App.tsx --output yaml
  codegen analyze src --watch`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			a := analyzer.New().
				WithLogger(logger.Default()).
				WithThresholds(cfg.Analyze.MaxLinesOfCode, cfg.Analyze.MaxComplexity)
			opts := filesystem.SourceOptions{ExcludePaths: cfg.Analyze.Exclude}

			files, err := filesystem.Expand(args, opts)
			if err != nil {
				return err
			}
			if err := analyzeFiles(cmd, a, files, jobs); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			if len(args) != 1 {
				return errors.New("--watch takes a single file or directory")
			}

			ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
			defer stop()
			output.Info(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", args[0]))
			return filesystem.Watch(ctx, args[0], filesystem.WatchOptions{Sources: opts}, func(changed []string) {
				var present []string
				for _, f := range changed {
					if _, err := os.Stat(f); err != nil {
						output.Warn(fmt.Sprintf("%s removed", f))
						continue
					}
					present = append(present, f)
				}
				if err := analyzeFiles(cmd, a, present, jobs); err != nil {
					output.Error(err.Error())
				}
			})
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-analyze files when they change")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Files analyzed in parallel (default: number of CPUs)")
	return cmd
}

func analyzeFiles(cmd *cobra.Command, a *analyzer.Analyzer, files []string, jobs int) error {
	reports, err := forEachFile(cmdContext(cmd), files, jobs, func(f string) (fileReport, error) {
		r, err := a.AnalyzeFile(f)
		return fileReport{File: f, Report: r}, err
	})
	if err != nil {
		return err
	}
	if ok, err := structured(cmd, reports); ok {
		return err
	}

	for _, fr := range reports {
		output.Header(fr.File)
		if len(fr.Report.Issues) == 0 {
			output.Success("No issues")
		}
		for _, issue := range fr.Report.Issues {
			msg := issue.Message
			if issue.Line > 0 {
				msg = fmt.Sprintf("line %d: %s", issue.Line, msg)
			}
			output.Severity(string(issue.Severity), fmt.Sprintf("[%s] %s", issue.Kind, msg))
		}
		output.Step(fr.Report.Summary)
	}
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
