package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rfielding/fsc-synth/family"
)

func newEnumerateCmd(a *app) *cobra.Command {
	var (
		limit   int
		workers int
	)
	cmd := &cobra.Command{
		Use:   "enumerate <sketch>",
		Short: "List the assignments of the restricted family",
		Long: `Prints one line per assignment of the restricted family. The family is split
on its widest hole and the disjoint subfamilies are enumerated in parallel;
output follows the splitter's option order, then the remaining holes with the
last hole varying fastest.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, f, err := a.loadRestricted(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.Enumerate.Limit
			}
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Enumerate.Workers
			}
			lines, err := a.enumerate(cmd.Context(), f, limit, workers)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, l := range lines {
				fmt.Fprintln(out, l)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many assignments, 0 for all")
	cmd.Flags().IntVar(&workers, "workers", 4, "subfamilies enumerated at once")
	return cmd
}

// widestHole returns the hole with the most assumed options, or -1 when f is
// an assignment.
func widestHole(f *family.Family) int {
	best := -1
	for h := 0; h < f.NumHoles(); h++ {
		if n := f.HoleNumOptions(h); n > 1 && (best < 0 || n > f.HoleNumOptions(best)) {
			best = h
		}
	}
	return best
}

// enumerate describes up to limit assignments of f, splitting f on its widest
// hole so that subfamilies can be walked concurrently.
func (a *app) enumerate(ctx context.Context, f *family.Family, limit, workers int) ([]string, error) {
	parts := []*family.Family{f}
	if h := widestHole(f); h >= 0 {
		groups, err := parseGroups(f, h, nil)
		if err != nil {
			return nil, err
		}
		if parts, err = f.Split(h, groups); err != nil {
			return nil, err
		}
		a.metrics.Split(len(parts))
	}

	results := make([][]string, len(parts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, p := range parts {
		g.Go(func() error {
			for combination := range p.AllCombinations() {
				if err := ctx.Err(); err != nil {
					return err
				}
				if limit > 0 && len(results[i]) >= limit {
					break
				}
				asg, err := p.ConstructAssignment(combination)
				if err != nil {
					return err
				}
				results[i] = append(results[i], asg.String())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var lines []string
	for _, r := range results {
		lines = append(lines, r...)
		if limit > 0 && len(lines) >= limit {
			lines = lines[:limit]
			break
		}
	}
	a.metrics.FamiliesCreated("assignment", len(lines))
	a.metrics.AssignmentsEnumerated(len(lines))
	a.logger.Info("assignments enumerated",
		zap.Int("subfamilies", len(parts)),
		zap.Int("assignments", len(lines)),
		zap.String("size", f.SizeOrOrder()))
	return lines, nil
}
