package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var addSiteTitle *string

func init() {
	addSiteTitle = addSiteCmd.Flags().String("title", "", "A display title for the site.")

	rootCmd.AddCommand(sitesCmd)
	rootCmd.AddCommand(addSiteCmd)
	rootCmd.AddCommand(deleteSiteCmd)
	rootCmd.AddCommand(updateSeCmd)
	rootCmd.AddCommand(clearSeCmd)
}

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "Prints the sites registered with the account.",
	Run: func(cmd *cobra.Command, args []string) {
		sites, err := client.Sites(cmd.Context())
		if err != nil {
			fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Name", "Keywords", "Avg today", "Avg yesterday", "Up", "Down", "Engines"})

		for _, s := range sites {
			engines := make([]string, len(s.Engines))
			for i, e := range s.Engines {
				engines[i] = fmt.Sprintf("%s~%s", e.SeID, e.RegionID)
			}
			t.AppendRow(table.Row{
				s.ID,
				s.Name,
				s.KeysCount,
				float64(s.TodayAvgPosition),
				float64(s.YesterdayAvgPosition),
				s.TotalUp,
				s.TotalDown,
				strings.Join(engines, " "),
			})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

var addSiteCmd = &cobra.Command{
	Use:   "add-site <url> [--title <title>]",
	Short: "Registers a new site to track.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := map[string]any{"url": args[0]}
		if *addSiteTitle != "" {
			config["title"] = *addSiteTitle
		}

		siteID, err := client.AddSite(cmd.Context(), config)
		if err != nil {
			fatal(err)
		}
		fmt.Println(siteID)
	},
}

var deleteSiteCmd = &cobra.Command{
	Use:   "delete-site <siteid>",
	Short: "Deletes a site and everything tracked under it.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		siteID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fatal(err)
		}

		ok, err := client.DeleteSite(cmd.Context(), siteID)
		if err != nil {
			fatal(err)
		}
		if !ok {
			fatal(fmt.Errorf("service refused to delete site %d", siteID))
		}
	},
}

var updateSeCmd = &cobra.Command{
	Use:   "update-se <siteid> <selector[=region]>...",
	Short: "Replaces the search engines a site is tracked on.",
	Long: `Replaces the search engines a site is tracked on. Selectors take the
form "411~213" (engine id, for yandex with a region id after the tilde)
with an optional "=Region Name" suffix for engines that want a textual
region.`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		siteID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fatal(err)
		}

		engines := make(map[string]string, len(args)-1)
		for _, arg := range args[1:] {
			selector, region, _ := strings.Cut(arg, "=")
			engines[selector] = region
		}

		ok, err := client.UpdateSiteSearchEngines(cmd.Context(), siteID, engines)
		if err != nil {
			fatal(err)
		}
		if !ok {
			fatal(fmt.Errorf("service refused to update engines of site %d", siteID))
		}
	},
}

var clearSeCmd = &cobra.Command{
	Use:   "clear-se <siteid>",
	Short: "Removes every search engine binding from a site.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		siteID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fatal(err)
		}

		ok, err := client.ClearSiteSearchEngines(cmd.Context(), siteID)
		if err != nil {
			fatal(err)
		}
		if !ok {
			fatal(fmt.Errorf("service refused to clear engines of site %d", siteID))
		}
	},
}
