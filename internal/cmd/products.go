package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/toposhop/internal/api"
	"github.com/matthieukhl/toposhop/internal/models"
	"github.com/matthieukhl/toposhop/internal/validate"
)

var (
	productName        string
	productPrice       float64
	productDescription string
	productCategory    string
	productImages      []string
	productImageFiles  []string
	productStock       int
	productRating      float64
	productInStock     bool
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage the product catalog",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all products",
	RunE:  runProductsList,
}

var productsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsGet,
}

var productsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product (admin)",
	Long: `Create a product. Image files given with --image-file are uploaded right
after creation; if the upload fails the product is rolled back so the
catalog never keeps a half-created entry.`,
	RunE: runProductsCreate,
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update product fields (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsUpdate,
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsDelete,
}

var productsStockCmd = &cobra.Command{
	Use:   "stock <id> <quantity>",
	Short: "Set a product's stock count (admin)",
	Args:  cobra.ExactArgs(2),
	RunE:  runProductsStock,
}

func init() {
	rootCmd.AddCommand(productsCmd)
	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsGetCmd)
	productsCmd.AddCommand(productsCreateCmd)
	productsCmd.AddCommand(productsUpdateCmd)
	productsCmd.AddCommand(productsDeleteCmd)
	productsCmd.AddCommand(productsStockCmd)

	for _, c := range []*cobra.Command{productsCreateCmd, productsUpdateCmd} {
		c.Flags().StringVar(&productName, "name", "", "Product name")
		c.Flags().Float64Var(&productPrice, "price", 0, "Unit price")
		c.Flags().StringVar(&productDescription, "description", "", "Product description")
		c.Flags().StringVar(&productCategory, "category", "", "Category name")
		c.Flags().StringArrayVar(&productImages, "image", nil, "Image URL (repeatable)")
		c.Flags().IntVar(&productStock, "stock", 0, "Stock count")
		c.Flags().Float64Var(&productRating, "rating", 0, "Rating (0-5)")
		c.Flags().BoolVar(&productInStock, "in-stock", false, "Mark the product as in stock")
	}
	productsCreateCmd.Flags().StringArrayVar(&productImageFiles, "image-file", nil, "Image file to upload (repeatable)")
}

func printFieldErrors(errs validate.FieldErrors) {
	for _, fe := range errs {
		fmt.Printf("  ❌ %s\n", fe.Error())
	}
}

func runProductsList(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.svc.Refresh(cmd.Context()); err != nil {
		return err
	}
	products := app.shop.Products()
	fmt.Printf("🛰️  %d product(s)\n", len(products))
	for _, p := range products {
		stock := "untracked"
		if p.Stock != nil {
			stock = strconv.Itoa(*p.Stock)
		}
		fmt.Printf("  %-12s %-30s %10.2f  %-15s stock=%s inStock=%t\n",
			p.ID, p.Name, p.Price, p.Category, stock, p.InStock)
	}
	return nil
}

func runProductsGet(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	product, err := app.client.GetProduct(cmd.Context(), args[0])
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("product %s not found", args[0])
		}
		return err
	}
	fmt.Printf("📦 %s\n", product.Name)
	fmt.Printf("  id:          %s\n", product.ID)
	fmt.Printf("  price:       %.2f\n", product.Price)
	fmt.Printf("  category:    %s\n", product.Category)
	fmt.Printf("  in stock:    %t\n", product.InStock)
	if product.Stock != nil {
		fmt.Printf("  stock count: %d\n", *product.Stock)
	}
	if product.Rating != nil {
		fmt.Printf("  rating:      %.1f/5\n", *product.Rating)
	}
	if product.Description != "" {
		fmt.Printf("  description: %s\n", product.Description)
	}
	for _, img := range product.Image {
		fmt.Printf("  image:       %s\n", img)
	}
	for _, m := range product.Medias {
		fmt.Printf("  media:       %s (%s)\n", m.URL, m.ID)
	}
	return nil
}

func productInputFromFlags(cmd *cobra.Command) models.ProductInput {
	in := models.ProductInput{
		Name:        productName,
		Price:       productPrice,
		Description: productDescription,
		Image:       models.ImageList(productImages),
		Category:    productCategory,
		InStock:     productInStock,
	}
	if cmd.Flags().Changed("stock") {
		stock := productStock
		in.Stock = &stock
		in.InStock = models.DerivedInStock(stock)
	}
	if cmd.Flags().Changed("rating") {
		rating := productRating
		in.Rating = &rating
	}
	return in
}

func runProductsCreate(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.requireLogin(); err != nil {
		return err
	}

	in := productInputFromFlags(cmd)
	if err := app.input.Struct(in); err != nil {
		if fields, ok := validate.AsFieldErrors(err); ok {
			printFieldErrors(fields)
			return fmt.Errorf("invalid product input")
		}
		return err
	}

	var files []api.Upload
	var handles []*os.File
	defer func() {
		for _, h := range handles {
			h.Close()
		}
	}()
	for _, path := range productImageFiles {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open image file: %w", err)
		}
		handles = append(handles, f)
		files = append(files, api.Upload{Name: filepath.Base(path), Reader: f})
	}

	product, err := app.svc.CreateProductWithImages(cmd.Context(), in, files)
	if err != nil {
		return err
	}
	fmt.Printf("✅ Created product %s (%s)\n", product.Name, product.ID)
	return nil
}

func runProductsUpdate(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.requireLogin(); err != nil {
		return err
	}

	var patch models.ProductPatch
	flags := cmd.Flags()
	if flags.Changed("name") {
		patch.Name = &productName
	}
	if flags.Changed("price") {
		if productPrice <= 0 {
			fmt.Println("  ❌ price must be greater than 0")
			return fmt.Errorf("invalid product input")
		}
		patch.Price = &productPrice
	}
	if flags.Changed("description") {
		patch.Description = &productDescription
	}
	if flags.Changed("category") {
		patch.Category = &productCategory
	}
	if flags.Changed("image") {
		images := models.ImageList(productImages)
		patch.Image = &images
	}
	if flags.Changed("stock") {
		if productStock < 0 {
			fmt.Println("  ❌ stock must be at least 0")
			return fmt.Errorf("invalid product input")
		}
		patch.Stock = &productStock
	}
	if flags.Changed("rating") {
		patch.Rating = &productRating
	}
	if flags.Changed("in-stock") {
		patch.InStock = &productInStock
	}

	product, err := app.svc.UpdateProduct(cmd.Context(), args[0], patch)
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("product %s not found", args[0])
		}
		return err
	}
	fmt.Printf("✅ Updated product %s\n", product.ID)
	return nil
}

func runProductsDelete(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.requireLogin(); err != nil {
		return err
	}
	if err := app.svc.DeleteProduct(cmd.Context(), args[0]); err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("product %s not found", args[0])
		}
		return err
	}
	fmt.Printf("🗑️  Deleted product %s\n", args[0])
	return nil
}

func runProductsStock(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.requireLogin(); err != nil {
		return err
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil || quantity < 0 {
		return fmt.Errorf("quantity must be a non-negative integer")
	}
	product, err := app.svc.SetStock(cmd.Context(), args[0], quantity)
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("product %s not found", args[0])
		}
		return err
	}
	fmt.Printf("✅ Stock for %s set to %d (inStock=%t)\n", product.ID, quantity, product.InStock)
	return nil
}
