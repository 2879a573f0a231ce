package main

import (
	"fmt"
	"sort"
	"strings"

	"congress-trade-bot-go/internal/scoring"
	"github.com/spf13/cobra"
)

func topCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the curated politician profiles, ranked by alpha",
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := scoring.DefaultReferenceData()

			type ranked struct {
				name    string
				profile scoring.PoliticianProfile
			}
			list := make([]ranked, 0, len(ref.Profiles))
			for name, p := range ref.Profiles {
				list = append(list, ranked{name, p})
			}
			sort.Slice(list, func(i, j int) bool {
				return list[i].profile.HistoricalAlpha > list[j].profile.HistoricalAlpha
			})

			for i, r := range list {
				if i >= n {
					break
				}
				fmt.Printf("%2d. %s\n", i+1, r.name)
				fmt.Printf("    alpha %.0f%%  trust %d  sectors: %s\n",
					r.profile.HistoricalAlpha*100, r.profile.TrustScore,
					strings.Join(r.profile.Sectors, ", "))
				if r.profile.LateFiler {
					fmt.Println("    chronic late filer")
				}
				if r.profile.Notes != "" {
					fmt.Printf("    %s\n", r.profile.Notes)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&n, "n", 10, "number of profiles to show")
	return cmd
}
