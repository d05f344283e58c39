package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/causelab/causeway/pkg/diagram"
	"github.com/causelab/causeway/pkg/source"
)

// driversCommand creates the drivers command: ranked influence scores
// as a table.
func (c *CLI) driversCommand() *cobra.Command {
	var topN int

	cmd := &cobra.Command{
		Use:   "drivers <file>",
		Short: "Rank nodes by downstream influence",
		Long: `Drivers scores every node by the strength-weighted size of its
downstream closure, decayed by depth, and prints the top entries.
High scores mark the levers of the diagram: nodes whose changes
propagate furthest.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDiagram(args[0])
			if err != nil {
				return err
			}

			rankings := diagram.RankDrivers(d, topN)
			if len(rankings) == 0 {
				printInfo("No edges, no drivers")
				return nil
			}

			fmt.Println(driversTable(rankings))
			return nil
		},
	}

	cmd.Flags().IntVarP(&topN, "top", "n", 10, "number of drivers to show")

	return cmd
}

// driversTable renders rankings as a lipgloss table.
func driversTable(rankings []diagram.DriverRanking) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	rowStyle := lipgloss.NewStyle().Foreground(colorWhite)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			return rowStyle.Padding(0, 1)
		}).
		Headers("#", "NODE", "SCORE", "DIRECT", "REACH")

	for i, r := range rankings {
		t.Row(
			fmt.Sprintf("%d", i+1),
			r.Label,
			fmt.Sprintf("%.1f", r.Score),
			fmt.Sprintf("%d", r.Direct),
			fmt.Sprintf("%d", r.Reach),
		)
	}

	return t.Render()
}

// loadDiagram loads a document and assembles the diagram view,
// skipping dangling edges the way the layout engine does.
func loadDiagram(path string) (*diagram.Diagram, error) {
	doc, err := source.Load(path)
	if err != nil {
		return nil, err
	}

	findings := diagram.Validate(doc.Nodes, doc.Edges)
	if diagram.HasErrors(findings) {
		for _, f := range findings {
			if f.Severity == diagram.SeverityError {
				printError("%s: %s", f.Code, f.Message)
			}
		}
		return nil, fmt.Errorf("%s has errors", path)
	}

	d := diagram.New()
	for _, n := range doc.Nodes {
		if err := d.AddNode(n); err != nil {
			return nil, err
		}
	}
	for _, e := range doc.Edges {
		if err := d.AddEdge(e); err != nil {
			continue
		}
	}
	return d, nil
}
