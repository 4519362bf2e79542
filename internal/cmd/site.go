package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Show the shop's company information and services",
	RunE:  runSite,
}

func init() {
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	site := app.site.Data()
	fmt.Printf("🏔️  %s\n", site.CompanyName)
	fmt.Printf("  %s\n", site.Slogan)
	fmt.Printf("  📞 %s\n", site.Contact.Phone)
	fmt.Printf("  ✉️  %s\n", site.Contact.Email)
	fmt.Printf("  📍 %s\n", site.Contact.Address)
	fmt.Println("  Services:")
	for _, s := range site.Services {
		fmt.Printf("    - %s\n", s)
	}
	return nil
}
