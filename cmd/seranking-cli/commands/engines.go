package commands

import (
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var geoOut *string

func init() {
	geoOut = geoCmd.Flags().String("out", "", "Write the region file to this path instead of stdout.")

	rootCmd.AddCommand(enginesCmd)
	rootCmd.AddCommand(geoCmd)
}

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "Prints the search engine directory.",
	Run: func(cmd *cobra.Command, args []string) {
		engines, err := client.SearchEngines(cmd.Context())
		if err != nil {
			fatal(err)
		}

		ids := make([]string, 0, len(engines))
		for id := range engines {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Name", "Region"})

		for _, id := range ids {
			engine := engines[id]
			t.AppendRow(table.Row{engine.ID, engine.Name, engine.RegionID})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

var geoCmd = &cobra.Command{
	Use:   "geo [--out <path>]",
	Short: "Fetches the yandex geo region file as utf-8.",
	Run: func(cmd *cobra.Command, args []string) {
		data, err := client.YandexRegions(cmd.Context())
		if err != nil {
			fatal(err)
		}

		if *geoOut == "" {
			os.Stdout.Write(data)
			return
		}
		err = os.WriteFile(*geoOut, data, 0o644)
		if err != nil {
			fatal(err)
		}
	},
}
