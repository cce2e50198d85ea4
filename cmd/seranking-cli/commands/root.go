package commands

import (
	"context"
	"fmt"
	"os"

	"seranking/lib/configutil"
	"seranking/lib/keyvalue"
	"seranking/lib/seranking"

	"github.com/spf13/cobra"
)

type Config struct {
	Login       string `json:"login"`
	PasswordMD5 string `json:"password_md5"`
	BaseURL     string `json:"base_url"`
	StateDir    string `json:"state_dir"`
}

var client *seranking.Client

var rootCmd = &cobra.Command{
	Use:   "seranking-cli",
	Short: "seranking-cli drives an SE Ranking account from the terminal.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := configutil.ReadConfig[Config]("seranking.json5")
		if err != nil {
			return fmt.Errorf("read seranking.json5: %w", err)
		}

		stateDir := cfg.StateDir
		if stateDir == "" {
			stateDir = ".seranking"
		}
		store, err := keyvalue.NewFS(stateDir)
		if err != nil {
			return err
		}

		client, err = seranking.NewClient(cmd.Context(), seranking.Options{
			BaseURL:     cfg.BaseURL,
			Login:       cfg.Login,
			PasswordMD5: cfg.PasswordMD5,
			Store:       store,
		})
		return err
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}
