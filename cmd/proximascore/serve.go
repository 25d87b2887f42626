package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vdbrink/proximascore/internal/config"
	"github.com/vdbrink/proximascore/internal/transport/httpapi"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}

			e, closer, err := buildEngine(cmd.Context(), settings)
			if err != nil {
				return err
			}
			defer closer()

			handler := httpapi.NewHandler(e, settings.GoogleAPIKey != "")
			if err := httpapi.Serve(cmd.Context(), settings.ListenAddr, handler); err != nil {
				return fmt.Errorf("http server failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().String("listen", "", "listen address (default :5000)")
	_ = bindFlag(cmd, "server.listen", "listen")

	return cmd
}
