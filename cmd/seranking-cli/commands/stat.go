package commands

import (
	"os"
	"strconv"

	"seranking/lib/seranking"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	statFrom    *string
	statTo      *string
	statEngines *[]string
)

func init() {
	statFrom = statCmd.Flags().String("from", "", "Start date, YYYY-MM-DD. Defaults to seven days ago.")
	statTo = statCmd.Flags().String("to", "", "End date, YYYY-MM-DD. Defaults to today.")
	statEngines = statCmd.Flags().StringSlice("se", nil, "Restrict to these engine selectors, e.g. 411~213.")

	rootCmd.AddCommand(statCmd)
}

var statCmd = &cobra.Command{
	Use:   "stat <siteid> [--from <date>] [--to <date>] [--se <selector>]...",
	Short: "Prints ranking statistics for a site.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		siteID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fatal(err)
		}

		stats, err := client.Stat(cmd.Context(), siteID, seranking.StatOptions{
			DateStart:     *statFrom,
			DateEnd:       *statTo,
			SearchEngines: *statEngines,
		})
		if err != nil {
			fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Engine", "Region", "Keyword", "Date", "Position", "Change", "Landing page"})

		for _, engine := range stats {
			for _, keyword := range engine.Keywords {
				landing := map[string]string{}
				for _, page := range keyword.LandingPages {
					landing[page.Date] = page.URL
				}
				for _, pos := range keyword.Positions {
					t.AppendRow(table.Row{
						engine.SeID,
						engine.RegionID,
						keyword.ID,
						pos.Date,
						pos.Pos,
						pos.Change,
						landing[pos.Date],
					})
				}
			}
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
