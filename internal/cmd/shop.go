package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/toposhop/internal/catalog"
	"github.com/matthieukhl/toposhop/internal/validate"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Browse the catalog and order interactively",
	Long: `Open an interactive shop session. The cart lives in memory for the
session only and is gone once you quit; an order is placed through
checkout.`,
	RunE: runShop,
}

func init() {
	rootCmd.AddCommand(shopCmd)
}

type checkoutForm struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

func runShop(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	site := app.site.Data()
	fmt.Printf("🏔️  %s: %s\n", site.CompanyName, site.Slogan)

	fmt.Println("📡 Loading catalog...")
	if err := app.svc.Refresh(cmd.Context()); err != nil {
		return err
	}
	fmt.Printf("✅ %d product(s) available. Type 'help' for commands.\n", len(app.shop.Products()))

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("shop> ")
		line, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		command, rest := fields[0], fields[1:]

		switch command {
		case "help":
			fmt.Println("  list              show the catalog")
			fmt.Println("  add <id>          put a product in the cart")
			fmt.Println("  remove <id>       take a product out of the cart")
			fmt.Println("  cart              show the cart")
			fmt.Println("  clear             empty the cart")
			fmt.Println("  checkout          place an order from the cart")
			fmt.Println("  quit              leave the shop")
		case "list":
			for _, p := range app.shop.Products() {
				marker := " "
				if !p.InStock {
					marker = "✗"
				}
				fmt.Printf("  %s %-12s %-30s %10.2f\n", marker, p.ID, p.Name, p.Price)
			}
		case "add":
			if len(rest) != 1 {
				fmt.Println("  usage: add <id>")
				continue
			}
			product, ok := app.shop.Product(rest[0])
			if !ok {
				fmt.Printf("  no product with id %s\n", rest[0])
				continue
			}
			if !product.InStock {
				fmt.Printf("  %s is out of stock\n", product.Name)
				continue
			}
			app.shop.AddToCart(product)
			fmt.Printf("  🛒 %s is in the cart\n", product.Name)
		case "remove":
			if len(rest) != 1 {
				fmt.Println("  usage: remove <id>")
				continue
			}
			app.shop.RemoveFromCart(rest[0])
			fmt.Println("  done")
		case "cart":
			cart := app.shop.Cart()
			if len(cart) == 0 {
				fmt.Println("  cart is empty")
				continue
			}
			for _, item := range cart {
				fmt.Printf("  %-12s %-30s %10.2f\n", item.ID, item.Name, item.Price)
			}
			fmt.Printf("  total: %.2f\n", app.shop.CartTotal())
		case "clear":
			app.shop.ClearCart()
			fmt.Println("  cart emptied")
		case "checkout":
			if err := runCheckout(cmd, app, reader); err != nil {
				fmt.Printf("  ❌ %v\n", err)
			}
		case "quit", "exit":
			return nil
		default:
			fmt.Printf("  unknown command %q, type 'help'\n", command)
		}
	}
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func runCheckout(cmd *cobra.Command, app *app, reader *bufio.Reader) error {
	cart := app.shop.Cart()
	if len(cart) == 0 {
		return catalog.ErrEmptyCart
	}

	form := checkoutForm{}
	var err error
	if form.Name, err = prompt(reader, "  Name: "); err != nil {
		return err
	}
	if form.Email, err = prompt(reader, "  Email: "); err != nil {
		return err
	}
	if form.Phone, err = prompt(reader, "  Phone: "); err != nil {
		return err
	}
	if err := app.input.Struct(form); err != nil {
		if fields, ok := validate.AsFieldErrors(err); ok {
			printFieldErrors(fields)
			return fmt.Errorf("invalid checkout details")
		}
		return err
	}

	quantities := make(map[string]int)
	for _, item := range cart {
		answer, err := prompt(reader, fmt.Sprintf("  Quantity for %s [1]: ", item.Name))
		if err != nil {
			return err
		}
		if answer == "" {
			continue
		}
		qty, err := strconv.Atoi(answer)
		if err != nil || qty < 1 {
			return fmt.Errorf("quantity must be a positive integer")
		}
		quantities[item.ID] = qty
	}

	order, err := app.svc.Checkout(cmd.Context(), catalog.Customer{
		Name:  form.Name,
		Email: form.Email,
		Phone: form.Phone,
	}, quantities)
	if err != nil {
		return err
	}

	fmt.Printf("  ✅ Order %s placed, total %.2f\n", order.ID, order.Total)
	fmt.Printf("  📞 We will contact you at %s to arrange payment and delivery.\n", form.Phone)
	return nil
}
