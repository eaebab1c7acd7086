package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rfielding/fsc-synth/memory"
	"github.com/rfielding/fsc-synth/sketch"
)

func newGenCmd(a *app) *cobra.Command {
	var (
		name         string
		observations []string
		actions      []string
		memorySize   int
		output       string
		format       string
	)
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a finite-state controller sketch",
		Long: `Writes a sketch with an action hole A([obs],m) and a memory-update hole
M([obs],m) for every observation and memory value.

Example:
  fscsynth gen --name maze --observations wall,open --actions n,s,e,w --memory 3 -o maze.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sketch.GenerateFSC(name, observations, actions, memorySize)
			if err != nil {
				return err
			}
			a.logger.Info("sketch generated",
				zap.String("name", name),
				zap.Int("holes", len(s.Holes)))
			if output != "" {
				if err := s.Save(output); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d holes)\n", output, len(s.Holes))
				return nil
			}
			return s.Write(cmd.OutOrStdout(), sketch.Format(format))
		},
	}
	cmd.Flags().StringVar(&name, "name", "fsc", "sketch name")
	cmd.Flags().StringSliceVar(&observations, "observations", nil, "observation names")
	cmd.Flags().StringSliceVar(&actions, "actions", nil, "action names")
	cmd.Flags().IntVar(&memorySize, "memory", 1, "number of memory values")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().StringVar(&format, "format", string(sketch.FormatYAML), "stdout format: yaml or json")
	_ = cmd.MarkFlagRequired("observations")
	_ = cmd.MarkFlagRequired("actions")
	return cmd
}

func newPoliciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List the memory policies",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range memory.Policies() {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
		},
	}
}
