package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/vdbrink/proximascore/internal/config"
)

func profilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage scoring profiles",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List configured profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}

			ids := make([]string, 0, len(settings.Profiles))
			for id := range settings.Profiles {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			for _, id := range ids {
				p := settings.Profiles[id]
				status := "active"
				if !p.Active {
					status = "inactive"
				}
				cmd.Printf("%-12s %-26s %s\n", p.ID, p.DisplayName, status)

				catIDs := make([]string, 0, len(p.Weights))
				for catID, weight := range p.Weights {
					if weight > 0 {
						catIDs = append(catIDs, catID)
					}
				}
				sort.Slice(catIDs, func(i, j int) bool {
					if p.Weights[catIDs[i]] != p.Weights[catIDs[j]] {
						return p.Weights[catIDs[i]] > p.Weights[catIDs[j]]
					}
					return catIDs[i] < catIDs[j]
				})
				for _, catID := range catIDs {
					cmd.Printf("    %-20s %d\n", catID, p.Weights[catID])
				}
			}
			return nil
		},
	})

	return cmd
}
