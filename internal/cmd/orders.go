package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/toposhop/internal/api"
	"github.com/matthieukhl/toposhop/internal/models"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Review and manage customer orders",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all orders",
	RunE:  runOrdersList,
}

var ordersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one order with its line items",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrdersGet,
}

var ordersStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Move an order to a new status (admin)",
	Long: `Move an order to one of: pending, processing, shipped, delivered,
cancelled. Delivered and cancelled are terminal, no further change is
allowed from them.`,
	Args: cobra.ExactArgs(2),
	RunE: runOrdersStatus,
}

func init() {
	rootCmd.AddCommand(ordersCmd)
	ordersCmd.AddCommand(ordersListCmd)
	ordersCmd.AddCommand(ordersGetCmd)
	ordersCmd.AddCommand(ordersStatusCmd)
}

func runOrdersList(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	orders, err := app.client.GetOrders(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("🧾 %d order(s)\n", len(orders))
	for _, o := range orders {
		fmt.Printf("  %-12s %-25s %10.2f  %-10s %d line(s)\n",
			o.ID, o.CustomerName, o.Total, o.Status, len(o.Products))
	}
	return nil
}

func runOrdersGet(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	order, err := app.client.GetOrder(cmd.Context(), args[0])
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("order %s not found", args[0])
		}
		return err
	}
	fmt.Printf("🧾 Order %s (%s)\n", order.ID, order.Status)
	fmt.Printf("  customer: %s <%s> %s\n", order.CustomerName, order.CustomerEmail, order.CustomerPhone)
	for _, line := range order.Products {
		fmt.Printf("  %dx %-30s @ %.2f = %.2f\n", line.Quantity, line.ProductName, line.Price, line.Subtotal())
	}
	fmt.Printf("  total: %.2f\n", order.Total)
	if order.Total != order.ComputedTotal() {
		fmt.Printf("  ⚠️  total does not match line items (%.2f)\n", order.ComputedTotal())
	}
	return nil
}

func runOrdersStatus(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.requireLogin(); err != nil {
		return err
	}

	target := models.OrderStatus(args[1])
	if !target.Valid() {
		return fmt.Errorf("unknown status %q, expected one of %v", args[1], models.Statuses())
	}

	current, err := app.client.GetOrder(cmd.Context(), args[0])
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("order %s not found", args[0])
		}
		return err
	}
	if !current.Status.CanTransition(target) {
		return fmt.Errorf("order %s is %s, a terminal status", current.ID, current.Status)
	}

	order, err := app.client.UpdateOrderStatus(cmd.Context(), args[0], target)
	if err != nil {
		return err
	}
	fmt.Printf("✅ Order %s is now %s\n", order.ID, order.Status)
	return nil
}
