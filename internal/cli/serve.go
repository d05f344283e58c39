package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/causelab/causeway/internal/api"
	"github.com/causelab/causeway/pkg/store"
)

// serveCommand creates the serve command: the HTTP API over the
// pipeline and a document store.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, storeBackend, mongoURI, dataDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the Causeway HTTP API",
		Long: `Serve starts the HTTP API: one-shot layout of posted documents plus
CRUD, layout, and render endpoints over stored diagrams. The store
backend is the local filesystem by default; pass --store mongo with
--mongo-uri for MongoDB.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore(cmd.Context(), storeBackend, mongoURI, dataDir)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			if addr == "" {
				addr = c.Config.Addr
			}

			server := api.NewServer(api.Config{
				Addr:   addr,
				Runner: c.newRunner(),
				Store:  st,
				Logger: loggerFromContext(cmd.Context()),
			})
			return server.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default "+api.DefaultAddr+")")
	cmd.Flags().StringVar(&storeBackend, "store", "file", "store backend: file (default), mongo")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection URI (with --store mongo)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "file store directory (default ~/.config/causeway/diagrams)")

	return cmd
}

// newStore builds the document store for serve and diagrams commands.
func (c *CLI) newStore(ctx context.Context, backend, mongoURI, dataDir string) (store.Store, error) {
	switch backend {
	case "file":
		if dataDir == "" {
			dataDir = c.Config.DataDir
		}
		return store.NewFileStore(dataDir)
	case "mongo":
		if mongoURI == "" {
			mongoURI = c.Config.MongoURI
		}
		if mongoURI == "" {
			return nil, fmt.Errorf("--mongo-uri is required with --store mongo")
		}
		return store.NewMongoStore(ctx, mongoURI, appName, "diagrams")
	default:
		return nil, fmt.Errorf("unknown store backend: %q (must be file or mongo)", backend)
	}
}
