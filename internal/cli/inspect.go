package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cascadevis/cascade/pkg/chart"
	"github.com/cascadevis/cascade/pkg/pipeline"
	"github.com/cascadevis/cascade/pkg/render/waterfall"
	"github.com/cascadevis/cascade/pkg/render/waterfall/layout"
	"github.com/cascadevis/cascade/pkg/table"
)

// inspectCommand creates the inspect command for examining parsed tables.
// It shows each bar's kind, value span, and the running total after the bar,
// either as an interactive list or as plain text with --plain.
func (c *CLI) inspectCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the parsed bars and running totals for a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0], plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print a plain listing instead of the interactive view")

	return cmd
}

func (c *CLI) runInspect(input string, plain bool) error {
	t, err := table.FromFile(input)
	if err != nil {
		return err
	}

	cfg := chart.DefaultConfig()
	bars := chart.Parse(t, cfg.Palette())
	if len(bars) == 0 {
		printInfo("Table is empty, nothing to inspect")
		return nil
	}

	// The layout carries the value spans; viewport size is irrelevant here.
	l := layout.Build(bars, cfg, pipeline.DefaultWidth, pipeline.DefaultHeight)

	if plain {
		printBarListing(input, l.Bars)
		return nil
	}

	model := newBarListModel(input, l.Bars)
	prog := tea.NewProgram(model)
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("inspect view: %w", err)
	}
	return nil
}

// printBarListing writes one line per bar with kind, span, and running total.
func printBarListing(input string, bars []layout.Bar) {
	fmt.Println(StyleTitle.Render(input))
	for _, b := range bars {
		fmt.Println("  " + formatBarLine(b))
		if b.Stacked() {
			for _, v := range b.Values {
				fmt.Println("      " + StyleDim.Render(fmt.Sprintf("%s: %s", v.Measure, waterfall.FormatValue(v.Value))))
			}
		}
	}
}

// formatBarLine renders a single listing line, e.g.
//
//	Revenue    step      +100     → 100
func formatBarLine(b layout.Bar) string {
	var body string
	switch b.Kind {
	case chart.KindBar:
		body = waterfall.FormatValue(b.Total)
	case chart.KindSubtotal, chart.KindTotal:
		body = waterfall.FormatValue(b.EndY)
	default:
		delta := b.EndY - b.StartY
		body = waterfall.FormatValue(delta)
		if delta > 0 {
			body = "+" + body
		}
	}

	line := fmt.Sprintf("%-20s %-9s %9s", b.Category, b.Kind, body)
	if b.Kind.Cumulative() {
		line += StyleDim.Render("  "+iconArrow+" ") + StyleNumber.Render(waterfall.FormatValue(b.EndY))
	}
	return strings.TrimRight(line, " ")
}
