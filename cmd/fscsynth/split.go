package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rfielding/fsc-synth/family"
	"github.com/rfielding/fsc-synth/sketch"
)

var errUnknownHole = errors.New("unknown hole")

func newSplitCmd(a *app) *cobra.Command {
	var (
		hole   string
		groups []string
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "split <sketch>",
		Short: "Split the restricted family on one hole",
		Long: `Refines the restricted family into one subfamily per --group. Each group is
a comma-separated list of labels of the splitter hole; groups must not share a
label. Without --group every assumed label becomes its own subfamily.

Example:
  fscsynth split maze.yaml --hole 'A([wall],0)' --group n,s --group e,w`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, f, err := a.loadRestricted(args[0])
			if err != nil {
				return err
			}
			h, err := findHole(f, hole)
			if err != nil {
				return err
			}
			optionGroups, err := parseGroups(f, h, groups)
			if err != nil {
				return err
			}
			children, err := f.Refine(h, optionGroups)
			if err != nil {
				return err
			}
			a.metrics.Split(len(children))
			a.logger.Info("family split",
				zap.String("hole", f.HoleName(h)),
				zap.Int("children", len(children)),
				zap.String("size", f.SizeOrOrder()))

			out := cmd.OutOrStdout()
			if outDir != "" {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return err
				}
			}
			for i, c := range children {
				fmt.Fprintf(out, "[%d] size %s, depth %d: %s\n", i, c.SizeOrOrder(), c.RefinementDepth(),
					c.HoleOptionsString(h, c.HoleOptions(h)))
				if outDir == "" {
					continue
				}
				name := fmt.Sprintf("%s-%d", s.Name, i)
				path := filepath.Join(outDir, name+".yaml")
				if err := sketch.Narrowed(name, c).Save(path); err != nil {
					return err
				}
				fmt.Fprintf(out, "    wrote %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&hole, "hole", "", "splitter hole, by name or index")
	cmd.Flags().StringArrayVar(&groups, "group", nil, "comma-separated labels of one subfamily (repeatable)")
	cmd.Flags().StringVarP(&outDir, "output-dir", "o", "", "write each subfamily as a sketch into this directory")
	_ = cmd.MarkFlagRequired("hole")
	return cmd
}

// findHole resolves a hole by exact name, then by index.
func findHole(f *family.Family, ref string) (int, error) {
	for h := 0; h < f.NumHoles(); h++ {
		if f.HoleName(h) == ref {
			return h, nil
		}
	}
	if h, err := strconv.Atoi(ref); err == nil && h >= 0 && h < f.NumHoles() {
		return h, nil
	}
	return -1, fmt.Errorf("%w: %q", errUnknownHole, ref)
}

// parseGroups maps label groups of hole h to option groups. No groups means
// one group per assumed option.
func parseGroups(f *family.Family, h int, groups []string) ([][]int, error) {
	if len(groups) == 0 {
		var out [][]int
		for _, o := range f.HoleOptions(h) {
			out = append(out, []int{o})
		}
		return out, nil
	}
	index := make(map[string]int)
	for o, l := range f.HoleLabels(h) {
		index[l] = o
	}
	out := make([][]int, len(groups))
	for i, g := range groups {
		for _, l := range strings.Split(g, ",") {
			o, ok := index[strings.TrimSpace(l)]
			if !ok {
				return nil, fmt.Errorf("hole %s has no label %q", f.HoleName(h), l)
			}
			out[i] = append(out[i], o)
		}
	}
	return out, nil
}
