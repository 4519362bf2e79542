package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the server-computed sales report (admin)",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.requireLogin(); err != nil {
		return err
	}

	stats, err := app.client.GetStatistics(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println("📊 Shop statistics")
	fmt.Printf("  products:       %d\n", stats.TotalProducts)
	fmt.Printf("  orders:         %d (%d recent)\n", stats.TotalOrders, stats.RecentOrders)
	fmt.Printf("  revenue:        %.2f\n", stats.TotalRevenue)
	fmt.Printf("  users:          %d\n", stats.TotalUsers)
	fmt.Printf("  low stock:      %d item(s)\n", stats.LowStockItems)
	if len(stats.MonthlySales) > 0 {
		fmt.Println("  monthly sales:")
		for _, m := range stats.MonthlySales {
			fmt.Printf("    %-10s %10.2f (%d orders)\n", m.Month, m.Amount, m.OrderCount)
		}
	}
	if len(stats.TopProducts) > 0 {
		fmt.Println("  top products:")
		for _, t := range stats.TopProducts {
			fmt.Printf("    %-30s %d sold @ %.2f\n", t.ProductName, t.Sales, t.ProductPrice)
		}
	}
	return nil
}
