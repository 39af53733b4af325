// rankcli prints hotel rankings to the console, the same ordering the API
// serves, for quick inspection without a running service.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"navigo_ranking/internal/adapters/geojson"
	"navigo_ranking/internal/adapters/lta"
	"navigo_ranking/internal/adapters/observability"
	"navigo_ranking/internal/app"
	"navigo_ranking/internal/domain"
	"navigo_ranking/internal/shared"
)

var (
	sortFlag   string
	filterFlag string
	limitFlag  int
	jsonFlag   bool
)

var rootCmd = &cobra.Command{
	Use:           "rankcli",
	Short:         "Rank hotels by proximity to nearby facilities.",
	Long:          `rankcli loads the hotel catalog and facility datasets, scores every hotel, and prints the ranking as a table or JSON.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&sortFlag, "sort", "overall", "sort key: overall|filter|price_low|price_high")
	rootCmd.Flags().StringVar(&filterFlag, "filter", "", "category for --sort=filter: mrt|bus|hawker|attraction|money|wifi")
	rootCmd.Flags().IntVar(&limitFlag, "limit", 10, "number of hotels to print (0 = all)")
	rootCmd.Flags().BoolVar(&jsonFlag, "json", false, "emit JSON instead of a table")
}

func run(cmd *cobra.Command, _ []string) error {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv).Level(zerolog.WarnLevel)

	datasets := geojson.New(cfg.DataDir)
	feed := lta.New(cfg.LTABase, cfg.LTAKey, cfg.FetchTimeout)
	dir := app.NewFacilityDirectory(datasets, feed, nil, cfg.SnapshotTTL, cfg.Workers)
	svc := app.NewRankingService(datasets, dir, app.NewScorer(nil))

	sortType := domain.ParseSortType(sortFlag)
	filter := domain.Category(filterFlag)
	hotels := svc.GetRanking(cmd.Context(), sortType, filter)
	if limitFlag > 0 && len(hotels) > limitFlag {
		hotels = hotels[:limitFlag]
	}

	if jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(hotels)
	}
	return writeTable(hotels, sortType, filter)
}

func writeTable(hotels []domain.Hotel, sortType domain.SortType, filter domain.Category) error {
	if len(hotels) == 0 {
		fmt.Println("No hotel data available.")
		return nil
	}

	title := string(sortType)
	if sortType == domain.SortFilter {
		title = "filter:" + string(filter)
	}
	color.New(color.FgCyan, color.Bold).Printf("Hotel ranking — %s\n", title)

	scoreOf := func(h *domain.Hotel) float64 {
		if sortType == domain.SortFilter {
			return h.ScoreByFilter(filter)
		}
		return h.OverallScore
	}

	var data [][]string
	for i := range hotels {
		h := &hotels[i]
		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			h.Name,
			fmt.Sprintf("%.2f", scoreOf(h)),
			scoreLabel(scoreOf(h)),
			fmt.Sprintf("$%.0f", h.Price),
		})
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Rank", "Hotel", "Score", "Label", "Price"})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// scoreLabel colors a 0-10 proximity score for console output.
func scoreLabel(score float64) string {
	switch {
	case score >= 8:
		return color.New(color.FgGreen, color.Bold).Sprint("Excellent")
	case score >= 5:
		return color.New(color.FgCyan).Sprint("Good")
	case score >= 2:
		return color.New(color.FgYellow).Sprint("Fair")
	default:
		return color.New(color.FgRed).Sprint("Poor")
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("rankcli failed")
		os.Exit(1)
	}
}
