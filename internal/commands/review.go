package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dcyfr/dcyfr-ai-code-gen/internal/review"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/filesystem"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/logger"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/output"
)

type fileReview struct {
	File   string         `json:"file" yaml:"file"`
	Review *review.Review `json:"review" yaml:"review"`
}

// ReviewCmd creates the 'review' command.
func ReviewCmd() *cobra.Command {
	var minScore, jobs int

	cmd := &cobra.Command{
		Use:   "review <file|dir>...",
		Short: "Score files and suggest improvements",
		Long: `Review TypeScript files with deterministic heuristics: analyzer issues plus
console calls, explicit any, TODO/FIXME comments, long lines, long
functions and deeply nested control flow. Each file gets a 0-100 score.

Examples:
  codegen review src/user.ts
  codegen review src --min-score 80`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := filesystem.Expand(args, filesystem.SourceOptions{})
			if err != nil {
				return err
			}

			r := review.New().WithLogger(logger.Default())
			reviews, err := forEachFile(cmdContext(cmd), files, jobs, func(f string) (fileReview, error) {
				rv, err := r.ReviewFile(f)
				return fileReview{File: f, Review: rv}, err
			})
			if err != nil {
				return err
			}
			var failing int
			for _, fr := range reviews {
				if fr.Review.Score < minScore {
					failing++
				}
			}

			if ok, err := structured(cmd, reviews); ok {
				if err != nil {
					return err
				}
			} else {
				for _, fr := range reviews {
					output.Header(fmt.Sprintf("%s (%d/100)", fr.File, fr.Review.Score))
					for _, s := range fr.Review.Suggestions {
						msg := s.Message
						if s.Line > 0 {
							msg = fmt.Sprintf("line %d: %s", s.Line, msg)
						}
						output.Severity(string(s.Severity), fmt.Sprintf("[%s] %s", s.Kind, msg))
					}
					output.Step(fr.Review.Summary)
				}
			}

			if failing > 0 {
				return fmt.Errorf("%d file(s) scored below %d", failing, minScore)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&minScore, "min-score", 0, "Fail when a file scores below this")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Files reviewed in parallel (default: number of CPUs)")
	return cmd
}
