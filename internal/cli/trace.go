package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/causelab/causeway/pkg/diagram"
	"github.com/causelab/causeway/pkg/diagram/trace"
)

// traceCommand creates the trace command: walk causal paths through a
// focus node.
func (c *CLI) traceCommand() *cobra.Command {
	var direction string
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "trace <file> [node]",
		Short: "Trace causal paths through a node",
		Long: `Trace prints everything upstream that feeds the focus node and
everything downstream it feeds. When the node argument is omitted an
interactive picker opens.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDiagram(args[0])
			if err != nil {
				return err
			}

			focus := ""
			if len(args) > 1 {
				focus = args[1]
			} else {
				focus, err = pickNode(d)
				if err != nil {
					return err
				}
				if focus == "" {
					return nil // user quit the picker
				}
			}

			path, err := trace.Trace(d, focus, trace.Options{
				Direction: trace.Direction(direction),
				MaxDepth:  maxDepth,
			})
			if err != nil {
				return err
			}

			printTrace(d, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&direction, "direction", "d", string(trace.DirectionBoth), "trace direction: both (default), upstream, downstream")
	cmd.Flags().IntVar(&maxDepth, "depth", 0, "bound the walk depth (0 = unbounded)")

	return cmd
}

// printTrace renders a traced path as an indented report.
func printTrace(d *diagram.Diagram, p trace.Path) {
	if len(p.Upstream) > 0 {
		printInfo("Upstream (%d)", len(p.Upstream))
		for _, id := range p.Upstream {
			printDetail("%s %s", iconArrow, nodeLine(d, id))
		}
	}

	fmt.Println(StyleTitle.Render("● " + nodeLine(d, p.Focus)))

	if len(p.Downstream) > 0 {
		printInfo("Downstream (%d)", len(p.Downstream))
		for _, id := range p.Downstream {
			printDetail("%s %s", iconArrow, nodeLine(d, id))
		}
	}

	printNewline()
	printDetail("%d edges on the traced path", len(p.Edges))
}

// nodeLine formats one node as "id (tier)" with its label when set.
func nodeLine(d *diagram.Diagram, id string) string {
	n, ok := d.Node(id)
	if !ok {
		return id
	}
	if n.Label != "" && n.Label != n.ID {
		return fmt.Sprintf("%s (%s, %s)", n.ID, n.Label, n.Tier)
	}
	return fmt.Sprintf("%s (%s)", n.ID, n.Tier)
}
