package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/causelab/causeway/pkg/diagram"
	"github.com/causelab/causeway/pkg/source"
)

// validateCommand creates the validate command: full findings list,
// non-zero exit when the document has errors.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a diagram document for structural problems",
		Long: `Validate reads a diagram document and reports every finding:
errors (duplicate or empty IDs, unknown tiers) make the document
unusable, warnings (dangling edges, cycles, unknown strengths) are
tolerated by the layout engine but usually worth fixing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := source.Load(args[0])
			if err != nil {
				return err
			}

			findings := diagram.Validate(doc.Nodes, doc.Edges)
			if len(findings) == 0 {
				printSuccess("%s is valid (%d nodes, %d edges)",
					args[0], len(doc.Nodes), len(doc.Edges))
				return nil
			}

			for _, f := range findings {
				if f.Severity == diagram.SeverityError {
					printError("%s: %s", f.Code, f.Message)
				} else {
					printWarning("%s: %s", f.Code, f.Message)
				}
			}

			if diagram.HasErrors(findings) {
				return fmt.Errorf("%s has errors", args[0])
			}
			printDetail("%d warning(s); the document is still usable", len(findings))
			return nil
		},
	}
}
