package main

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vdbrink/proximascore/internal/config"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage amenity categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List configured categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}

			ids := make([]string, 0, len(settings.Categories))
			for id := range settings.Categories {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			for _, id := range ids {
				cat := settings.Categories[id]
				status := "active"
				if !cat.Active {
					status = "inactive"
				}
				cmd.Printf("%-20s %-28s %-8s %s\n",
					cat.ID, cat.DisplayName, status, strings.Join(cat.TypeTags, ","))
			}
			return nil
		},
	})

	return cmd
}
