package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	volumeCmd.AddCommand(volumeRegionsCmd)
	volumeCmd.AddCommand(volumeLookupCmd)
	rootCmd.AddCommand(volumeCmd)
}

var volumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Search volume lookups.",
}

var volumeRegionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Prints the regions usable for search volume lookups.",
	Run: func(cmd *cobra.Command, args []string) {
		regions, err := client.SearchVolumeRegions(cmd.Context())
		if err != nil {
			fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Region"})

		for _, region := range regions {
			t.AppendRow(table.Row{region.ID, region.Name})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

var volumeLookupCmd = &cobra.Command{
	Use:   "lookup <regionid> <keyword>",
	Short: "Prints the average search volume of a keyword in a region.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		regionID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fatal(err)
		}

		volume, err := client.KeySearchVolume(cmd.Context(), regionID, args[1])
		if err != nil {
			fatal(err)
		}
		fmt.Println(volume)
	},
}
