package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/causelab/causeway/pkg/pipeline"
)

// renderCommand creates the render command for generating diagram
// artifacts.
//
// Default settings:
//   - format: svg
//   - algorithm: layered
//   - theme: default
func (c *CLI) renderCommand() *cobra.Command {
	opts := c.baseOptions()
	var output, formatsStr string

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a causal diagram to SVG, PNG, or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = args[0]
			opts.Refresh = opts.Refresh || c.noCache
			opts.Formats = parseFormats(formatsStr)
			opts.Logger = c.Logger
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}

			return c.runRender(cmd, args[0], output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, mermaid, dot (comma-separated)")
	cmd.Flags().StringVarP(&opts.Algorithm, "algorithm", "a", opts.Algorithm, "layout algorithm: layered (default), ranked, clustered")
	cmd.Flags().StringVar(&opts.EdgeRouting, "routing", "", "edge routing: curved (default), straight")
	cmd.Flags().BoolVar(&opts.HideContainers, "hide-containers", false, "suppress tier and subgroup containers")
	cmd.Flags().StringVar(&opts.Theme, "theme", opts.Theme, "render theme: default, dark")
	cmd.Flags().BoolVar(&opts.Legend, "legend", false, "draw the strength/effect legend")
	cmd.Flags().BoolVar(&opts.Drivers, "drivers", false, "draw the key-drivers panel")
	cmd.Flags().BoolVar(&opts.Transparent, "transparent", false, "omit the background fill")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "raster scale factor for PNG")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass cached results")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input, output string, opts pipeline.Options) error {
	runner := c.newRunner()
	defer runner.Close()

	spinner := newSpinnerWithContext(cmd.Context(), "Laying out "+filepath.Base(input))
	spinner.Start()

	result, err := runner.Execute(cmd.Context(), opts)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Render failed: %v", err))
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %s", filepath.Base(input)))

	for _, f := range result.Findings {
		printWarning("%s: %s", f.Code, f.Message)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount,
		result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)

	base := basePath(output, input)
	for _, format := range opts.Formats {
		path := output
		if path == "" || len(opts.Formats) > 1 {
			path = base + "." + format
		}
		if err := writeArtifact(result.Artifacts[format], path); err != nil {
			return err
		}
	}

	printNewline()
	printNextStep("Inspect driver scores", appName+" drivers "+input)
	return nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// basePath derives the base output path from the output and input
// paths. If output is empty, it strips the extension from input; if
// output ends in a known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
