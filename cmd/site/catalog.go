package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/romainfalanga/Romainflg/internal/catalog"
)

func newCatalogCmd() *cobra.Command {
	var catalogPath string
	var asYAML bool

	open := func() (*catalog.Store, error) {
		cfg, logger, err := setup()
		if err != nil {
			return nil, err
		}
		if catalogPath != "" {
			cfg.CatalogPath = catalogPath
		}
		return catalog.Open(cfg.CatalogPath, logger)
	}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect or reset the project catalog",
	}
	cmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "project catalog file (overrides SITE_CATALOG_PATH)")

	list := &cobra.Command{
		Use:   "list",
		Short: "Print the projects and their team slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			projects := store.List()

			if asYAML {
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				defer enc.Close()
				return enc.Encode(projects)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSLUG\tNAME\tOPEN ROLES")
			for _, p := range projects {
				vacant := 0
				for _, r := range p.Roles {
					if r.IsOpen() {
						vacant++
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\n", p.ID, p.Slug, p.Name, vacant, len(p.Roles))
			}
			return w.Flush()
		},
	}
	list.Flags().BoolVar(&asYAML, "yaml", false, "print the catalog as YAML")

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Replace the catalog with the default projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			if err := store.Reset(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "catalog reset to %d default projects\n", len(store.List()))
			return nil
		},
	}

	cmd.AddCommand(list, reset)
	return cmd
}
