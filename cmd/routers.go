package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/fleetsim/app/plugins"
)

var listAll bool

var routersCmd = &cobra.Command{
	Use:   "routers",
	Short: "List the registered routing strategies",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := plugins.Available()
		w := cmd.OutOrStdout()
		if !listAll {
			for _, name := range c.Routers {
				fmt.Fprintln(w, name)
			}
			return nil
		}
		fmt.Fprintf(w, "routers: %s\n", strings.Join(c.Routers, ", "))
		fmt.Fprintf(w, "stores:  %s\n", strings.Join(c.Stores, ", "))
		fmt.Fprintf(w, "sinks:   %s\n", strings.Join(c.Sinks, ", "))
		return nil
	},
}

func init() {
	routersCmd.Flags().BoolVarP(&listAll, "all", "a", false, "also list report stores and metrics sinks")
	rootCmd.AddCommand(routersCmd)
}
