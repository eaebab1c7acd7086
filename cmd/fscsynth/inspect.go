package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/rfielding/fsc-synth/family"
	"github.com/rfielding/fsc-synth/memory"
)

type styles struct {
	title  lipgloss.Style
	key    lipgloss.Style
	header lipgloss.Style
	dim    lipgloss.Style
}

// newStyles colours output only when w is a terminal.
func newStyles(w io.Writer) styles {
	if !isTerminal(w) {
		plain := lipgloss.NewStyle()
		return styles{title: plain, key: plain, header: plain, dim: plain}
	}
	r := lipgloss.NewRenderer(w)
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		key:    r.NewStyle().Foreground(lipgloss.Color("10")),
		header: r.NewStyle().Bold(true).Underline(true),
		dim:    r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func newInspectCmd(a *app) *cobra.Command {
	var showHoles bool
	cmd := &cobra.Command{
		Use:   "inspect <sketch>",
		Short: "Summarize a sketch and its restricted family",
		Args:  cobra.ExactArgs(1),
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
			st := newStyles(out)

			fmt.Fprintln(out, st.title.Render(s.Name))
			if s.Description != "" {
				fmt.Fprintln(out, st.dim.Render(s.Description))
			}
			field := func(k, v string) {
				pad := strings.Repeat(" ", max(1, 13-len(k+":")))
				fmt.Fprintf(out, "%s%s%s\n", st.key.Render(k+":"), pad, v)
			}
			field("holes", fmt.Sprint(f.NumHoles()))
			field("kinds", kindSummary(f))
			field("size", f.SizeOrOrder())
			if a.cfg.MemoryPolicy() != memory.PolicyNone {
				field("policy", string(a.cfg.MemoryPolicy()))
				field("restricted", r.SizeOrOrder())
			}
			if len(s.Constraints) > 0 {
				field("constraints", fmt.Sprint(s.Constraints))
			}

			if showHoles {
				fmt.Fprintln(out)
				fmt.Fprintln(out, st.header.Render(fmt.Sprintf("%-4s %-24s %-6s %s", "#", "hole", "kind", "options")))
				for h := 0; h < r.NumHoles(); h++ {
					kind := family.KindOther
					if d, err := r.HoleDecision(h); err == nil {
						kind = d.Kind
					}
					fmt.Fprintf(out, "%-4d %-24s %-6s %s\n", h, r.HoleName(h), kind, assumedLabels(r, h))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showHoles, "holes", true, "list every hole with its assumed options")
	return cmd
}

func kindSummary(f *family.Family) string {
	counts := make(map[family.Kind]int)
	for h := 0; h < f.NumHoles(); h++ {
		d, err := f.HoleDecision(h)
		if err != nil {
			counts[family.KindOther]++
			continue
		}
		counts[d.Kind]++
	}
	var parts []string
	for _, k := range []family.Kind{family.KindAction, family.KindMemoryUpdate, family.KindActionAndMemory, family.KindOther} {
		if counts[k] > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
		}
	}
	return strings.Join(parts, " ")
}

func assumedLabels(f *family.Family, h int) string {
	options := f.HoleOptions(h)
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = f.HoleLabel(h, o)
	}
	return "{" + strings.Join(labels, ",") + "}"
}
