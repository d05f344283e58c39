package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/causelab/causeway/pkg/pipeline"
)

// layoutCommand creates the layout command: compute positions and print
// the layout as JSON.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := c.baseOptions()
	var output string

	cmd := &cobra.Command{
		Use:   "layout <file>",
		Short: "Compute a layout and print it as JSON",
		Long: `Layout reads a diagram document (YAML, JSON, or TOML; local path or
HTTP URL), computes node positions with the selected algorithm, and
writes the layout JSON to stdout or --output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = args[0]
			opts.Refresh = opts.Refresh || c.noCache
			opts.Formats = []string{pipeline.FormatJSON}
			opts.Logger = c.Logger

			runner := c.newRunner()
			defer runner.Close()

			p := newProgress(c.Logger)
			result, err := runner.Execute(cmd.Context(), opts)
			if err != nil {
				return err
			}
			p.done(fmt.Sprintf("Laid out %d nodes", result.Stats.NodeCount))
			for _, f := range result.Findings {
				printWarning("%s: %s", f.Code, f.Message)
			}

			return writeArtifact(result.Artifacts[pipeline.FormatJSON], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.Algorithm, "algorithm", "a", opts.Algorithm, "layout algorithm: layered (default), ranked, clustered")
	cmd.Flags().StringVar(&opts.EdgeRouting, "routing", "", "edge routing: curved (default), straight")
	cmd.Flags().BoolVar(&opts.HideContainers, "hide-containers", false, "suppress tier and subgroup containers")
	cmd.Flags().Float64Var(&opts.NodeWidth, "node-width", 0, "fixed node width (0 = from label text)")
	cmd.Flags().Float64Var(&opts.TierGap, "tier-gap", 0, "vertical gap between tiers")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass cached results")

	return cmd
}

// writeArtifact writes data to path, or stdout when path is empty.
func writeArtifact(data []byte, path string) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}
