package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/causelab/causeway/pkg/diagram"
	"github.com/causelab/causeway/pkg/source"
	"github.com/causelab/causeway/pkg/store"
)

// diagramsCommand groups subcommands for managing stored diagrams.
func (c *CLI) diagramsCommand() *cobra.Command {
	var storeBackend, mongoURI, dataDir string

	cmd := &cobra.Command{
		Use:     "diagrams",
		Aliases: []string{"diagram"},
		Short:   "Manage stored diagrams",
	}

	cmd.PersistentFlags().StringVar(&storeBackend, "store", "file", "store backend: file (default), mongo")
	cmd.PersistentFlags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection URI (with --store mongo)")
	cmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "file store directory (default ~/.config/causeway/diagrams)")

	openStore := func(ctx context.Context) (store.Store, error) {
		return c.newStore(ctx, storeBackend, mongoURI, dataDir)
	}

	cmd.AddCommand(c.diagramsPutCommand(openStore))
	cmd.AddCommand(c.diagramsListCommand(openStore))
	cmd.AddCommand(c.diagramsShowCommand(openStore))
	cmd.AddCommand(c.diagramsRemoveCommand(openStore))

	return cmd
}

type storeOpener func(ctx context.Context) (store.Store, error)

func (c *CLI) diagramsPutCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:     "put <file>",
		Aliases: []string{"add", "save"},
		Short:   "Save a diagram file to the store",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := source.Load(args[0])
			if err != nil {
				return err
			}
			findings := diagram.Validate(doc.Nodes, doc.Edges)
			if diagram.HasErrors(findings) {
				for _, f := range findings {
					if f.Severity == diagram.SeverityError {
						printError("%s: %s", f.Code, f.Message)
					}
				}
				return fmt.Errorf("%s has errors", args[0])
			}

			st, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			saved, err := st.Put(cmd.Context(), doc)
			if err != nil {
				return err
			}
			printSuccess("Saved %s", saved.Name)
			printDetail("id: %s", saved.ID)
			printNextStep("Inspect it", fmt.Sprintf("%s diagrams show %s", appName, saved.ID))
			return nil
		},
	}
}

func (c *CLI) diagramsListCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored diagrams",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			docs, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				printInfo("No diagrams stored yet")
				printNextStep("Save one with", fmt.Sprintf("%s diagrams put <file>", appName))
				return nil
			}

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
				Headers("ID", "NAME", "NODES", "EDGES", "UPDATED")
			for _, d := range docs {
				t.Row(d.ID, d.Name,
					fmt.Sprintf("%d", len(d.Nodes)),
					fmt.Sprintf("%d", len(d.Edges)),
					d.UpdatedAt.Format(time.RFC3339))
			}
			fmt.Println(t.Render())
			return nil
		},
	}
}

func (c *CLI) diagramsShowCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			doc, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printInfo("%s", doc.Name)
			printDetail("id: %s", doc.ID)
			printDetail("updated: %s", doc.UpdatedAt.Format(time.RFC3339))
			printStats(len(doc.Nodes), len(doc.Edges), false)
			printNewline()
			for _, n := range doc.Nodes {
				printDetail("%-25s %s (%s)", n.ID, n.Label, n.Tier)
			}
			return nil
		},
	}
}

func (c *CLI) diagramsRemoveCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a stored diagram",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}
