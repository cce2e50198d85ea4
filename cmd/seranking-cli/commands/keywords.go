package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	addKeywordsGroup    *int64
	addKeywordsExtGroup *int64
	addKeywordsStrict   *bool
)

func init() {
	addKeywordsGroup = addKeywordsCmd.Flags().Int64("group", 0, "The keyword group to add into. Zero uses the service default.")
	addKeywordsExtGroup = addKeywordsExtCmd.Flags().Int64("group", 0, "The keyword group to add into. Zero uses the service default.")
	addKeywordsStrict = addKeywordsExtCmd.Flags().Bool("strict", false, "Only count rankings of the exact target url.")

	rootCmd.AddCommand(keywordsCmd)
	rootCmd.AddCommand(addKeywordsCmd)
	rootCmd.AddCommand(addKeywordsExtCmd)
	rootCmd.AddCommand(deleteKeywordsCmd)
}

var keywordsCmd = &cobra.Command{
	Use:   "keywords <siteid>",
	Short: "Prints the keywords tracked for a site.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		siteID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fatal(err)
		}

		keywords, err := client.SiteKeywords(cmd.Context(), siteID)
		if err != nil {
			fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Keyword", "Group", "Target url", "First check"})

		for _, k := range keywords {
			t.AppendRow(table.Row{k.ID, k.Name, k.GroupID, k.Link, k.FirstCheckDate})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

var addKeywordsCmd = &cobra.Command{
	Use:   "add-keywords <siteid> <keyword>... [--group <id>]",
	Short: "Attaches keywords to a site.",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		siteID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fatal(err)
		}

		result, err := client.AddSiteKeywords(cmd.Context(), siteID, args[1:], *addKeywordsGroup)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("added %d keywords\n", result.Added.Int64())
	},
}

var addKeywordsExtCmd = &cobra.Command{
	Use:   "add-keywords-ext <siteid> <keyword=url>... [--group <id>] [--strict]",
	Short: "Attaches keywords with explicit target urls to a site.",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		siteID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fatal(err)
		}

		keywords := make(map[string]string, len(args)-1)
		for _, arg := range args[1:] {
			keyword, targetURL, ok := strings.Cut(arg, "=")
			if !ok {
				fatal(fmt.Errorf("%q is not of the form keyword=url", arg))
			}
			keywords[keyword] = targetURL
		}

		result, err := client.AddSiteKeywordsExt(cmd.Context(), siteID, keywords, *addKeywordsExtGroup, *addKeywordsStrict)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("added %d keywords\n", result.Added.Int64())
	},
}

var deleteKeywordsCmd = &cobra.Command{
	Use:   "delete-keywords <siteid> <keywordid>...",
	Short: "Removes keywords from a site by id.",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		siteID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fatal(err)
		}

		keywordIDs := make([]int64, len(args)-1)
		for i, arg := range args[1:] {
			keywordIDs[i], err = strconv.ParseInt(arg, 10, 64)
			if err != nil {
				fatal(err)
			}
		}

		ok, err := client.DeleteKeywords(cmd.Context(), siteID, keywordIDs)
		if err != nil {
			fatal(err)
		}
		if !ok {
			fatal(fmt.Errorf("service refused to delete keywords of site %d", siteID))
		}
	},
}
