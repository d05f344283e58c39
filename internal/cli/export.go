package cli

import (
	"github.com/spf13/cobra"

	"github.com/causelab/causeway/pkg/export"
	"github.com/causelab/causeway/pkg/layout"
)

// exportCommand creates the export command: structural exports that
// other diagram tools can consume.
func (c *CLI) exportCommand() *cobra.Command {
	opts := c.baseOptions()
	var output, format string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a diagram as Mermaid or Graphviz DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case export.FormatMermaid, export.FormatDOT:
			default:
				return export.ErrUnknownFormat(format)
			}

			opts.Path = args[0]
			opts.Formats = []string{format}
			opts.Logger = c.Logger
			// Structural exports never need positions; the clustered
			// strategy avoids the external solver dependency.
			opts.Algorithm = layout.AlgorithmClustered

			runner := c.newRunner()
			defer runner.Close()

			result, err := runner.Execute(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return writeArtifact(result.Artifacts[format], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", export.FormatMermaid, "export format: mermaid (default), dot")

	return cmd
}
