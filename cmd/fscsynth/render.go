package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rfielding/fsc-synth/family"
	"github.com/rfielding/fsc-synth/fscgraph"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		pick    string
		route   string
		render  bool
		format  string
		mermaid bool
		legend  bool
	)
	cmd := &cobra.Command{
		Use:   "render <sketch>",
		Short: "Export the controller graph of one assignment",
		Long: `Picks one assignment of the restricted family (the first option of every
hole, or a random one) and writes its controller graph as DOT source to the
export route. With --render the graphviz binary also produces <route>.<format>.

Example:
  fscsynth render maze-circular.yaml --pick random --route out/maze.dot --render --format svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, f, err := a.loadRestricted(args[0])
			if err != nil {
				return err
			}
			var asg *family.Family
			switch pick {
			case "any":
				asg = f.PickAny()
			case "random":
				asg = f.PickRandom(nil)
			default:
				return fmt.Errorf("--pick must be any or random, got %q", pick)
			}
			a.metrics.FamiliesCreated("assignment", 1)
			a.logger.Debug("assignment picked", zap.String("pick", pick), zap.String("assignment", asg.String()))

			g, err := fscgraph.FromAssignment(asg)
			if err != nil {
				return err
			}

			cfg := a.cfg.Export
			if cmd.Flags().Changed("route") {
				cfg.Route = route
			}
			if cmd.Flags().Changed("render") {
				cfg.Render = render
			}
			if cmd.Flags().Changed("format") {
				cfg.Format = format
			}
			exporter := fscgraph.NewExporter(
				fscgraph.WithRender(cfg.Render),
				fscgraph.WithFormat(cfg.Format),
				fscgraph.WithDotBinary(cfg.DotBinary),
				fscgraph.WithLogger(a.logger),
			)
			written, err := exporter.Export(cmd.Context(), g, cfg.Route)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range written {
				fmt.Fprintf(out, "wrote %s\n", path)
			}
			if legend {
				fmt.Fprintln(out)
				fmt.Fprint(out, g.GenerateLegendTable())
				fmt.Fprintln(out)
				fmt.Fprint(out, g.GenerateTransitionTable())
			}
			if mermaid {
				fmt.Fprintln(out)
				if err := g.WriteMermaidStateDiagram(out); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pick, "pick", "any", "assignment to draw: any or random")
	cmd.Flags().StringVar(&route, "route", "", "DOT output path, overrides export.route")
	cmd.Flags().BoolVar(&render, "render", false, "run graphviz after writing the DOT source")
	cmd.Flags().StringVar(&format, "format", "", "graphviz output format, overrides export.format")
	cmd.Flags().BoolVar(&mermaid, "mermaid", false, "also print a Mermaid state diagram")
	cmd.Flags().BoolVar(&legend, "legend", false, "also print the legend and transition tables")
	return cmd
}
