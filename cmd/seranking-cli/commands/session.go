package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login [<login> <password>]",
	Short: "Authenticates and persists the session token.",
	Long: `Authenticates and persists the session token. Without arguments the
configured credentials are used; an explicit login and password override
them for this call only.`,
	Args: cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 1 {
			fatal(fmt.Errorf("login requires either no arguments or both a login and a password"))
		}

		var login, password string
		if len(args) == 2 {
			login, password = args[0], args[1]
		}

		token, err := client.Login(cmd.Context(), login, password)
		if err != nil {
			fatal(err)
		}
		fmt.Println(token)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Invalidates the session token on the server.",
	Run: func(cmd *cobra.Command, args []string) {
		err := client.Logout(cmd.Context())
		if err != nil {
			fatal(err)
		}
	},
}
