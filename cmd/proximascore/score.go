package main

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vdbrink/proximascore/internal/common"
	"github.com/vdbrink/proximascore/internal/config"
	"github.com/vdbrink/proximascore/internal/model"
	"github.com/vdbrink/proximascore/internal/service"
)

func scoreCmd() *cobra.Command {
	var (
		profileID  string
		jsonOutput bool
		retries    int
	)

	cmd := &cobra.Command{
		Use:   "score <address>",
		Short: "Compute the proximity score for an address",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}

			e, closer, err := buildEngine(cmd.Context(), settings)
			if err != nil {
				return err
			}
			defer closer()

			address := strings.Join(args, " ")

			var result *model.ScoreResult
			err = common.WithRetry(cmd.Context(), func() error {
				var computeErr error
				result, computeErr = e.ComputeScore(cmd.Context(), address, profileID)
				return computeErr
			}, service.RetryOptions{MaxAttempts: retries})
			if err != nil {
				if common.IsUserCorrectable(err) {
					return common.NewUserError("could not score this address", err)
				}
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			printResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&profileID, "profile", "p", "algemeen", "scoring profile")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit raw JSON")
	cmd.Flags().IntVar(&retries, "retries", 1, "attempts for transient provider failures")

	return cmd
}

func printResult(cmd *cobra.Command, result *model.ScoreResult) {
	cmd.Printf("%s (%s)\n", result.Address, result.ProfileDisplay)
	cmd.Printf("Total score: %.1f/100\n\n", result.TotalScore)

	ids := make([]string, 0, len(result.Categories))
	for id := range result.Categories {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		cat := result.Categories[id]
		cmd.Printf("%-28s %5.1f (weight %d)\n", cat.DisplayName, cat.Score, cat.Weight)
		for _, place := range cat.Places {
			cmd.Printf("    %s (%dm)\n", place.Name, place.DistanceMeters)
		}
	}
}
