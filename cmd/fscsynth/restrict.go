package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rfielding/fsc-synth/family"
	"github.com/rfielding/fsc-synth/sketch"
)

func newRestrictCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "restrict <sketch>",
		Short: "Apply the memory policy to a controller sketch",
		Long: `Prunes the memory-update holes of the sketch with the configured policy
(--policy or memory.policy) and prints the restricted family. With -o the
result is written as a sketch holding only the kept labels.

Example:
  fscsynth restrict maze.yaml --policy circular -o maze-circular.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, f, err := a.loadFamily(args[0])
			if err != nil {
				return err
			}
			r, err := a.restrict(f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "policy %s: %s -> %s\n", a.cfg.MemoryPolicy(), f.SizeOrOrder(), r.SizeOrOrder())
			if output != "" {
				if err := sketch.Narrowed(s.Name, r).Save(output); err != nil {
					return err
				}
				fmt.Fprintf(out, "wrote %s\n", output)
				return nil
			}
			fmt.Fprintln(out, describeLines(r))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the restricted sketch to this file")
	return cmd
}

// describeLines renders f one hole per line.
func describeLines(f *family.Family) string {
	lines := make([]string, f.NumHoles())
	for h := range lines {
		lines[h] = f.HoleOptionsString(h, f.HoleOptions(h))
	}
	return strings.Join(lines, "\n")
}
