package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "toposhop",
	Short: "Toposhop - storefront and admin console for the surveying-equipment shop",
	Long: `Toposhop is the command-line storefront and administration console for
the shop's REST backend.

Browse the catalog and place orders with the shop session, or manage
products, categories, stock and orders as an administrator after
logging in.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
