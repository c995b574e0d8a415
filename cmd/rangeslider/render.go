package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-rangeslider/pkg/server"
)

func renderCmd() *cobra.Command {
	var (
		output    string
		title     string
		templates string
		params    paramFlags
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the standalone page HTML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, bag, err := params.resolve(cmd.Context(), nil)
			if err != nil {
				return err
			}
			cfg := server.DefaultConfig()
			cfg.Title = title
			cfg.TemplateDir = templates
			srv, err := server.New(cfg,
				server.WithLogger(logger()),
				server.WithManifest(m),
				server.WithParameters(bag),
			)
			if err != nil {
				return err
			}
			page, err := srv.Render()
			if err != nil {
				return err
			}
			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), page)
				return err
			}
			if err := os.WriteFile(output, []byte(page), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Page written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&title, "title", "", "page title, defaults to the manifest display name")
	cmd.Flags().StringVar(&templates, "templates", "", "directory of page.tpl/bootstrap.tpl overrides")
	params.register(cmd)
	return cmd
}
