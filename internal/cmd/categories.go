package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/toposhop/internal/api"
	"github.com/matthieukhl/toposhop/internal/models"
	"github.com/matthieukhl/toposhop/internal/validate"
)

var (
	categoryName        string
	categoryDescription string
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage product categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all categories",
	RunE:  runCategoriesList,
}

var categoriesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a category (admin)",
	RunE:  runCategoriesCreate,
}

var categoriesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a category (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesUpdate,
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesDelete,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.AddCommand(categoriesListCmd)
	categoriesCmd.AddCommand(categoriesCreateCmd)
	categoriesCmd.AddCommand(categoriesUpdateCmd)
	categoriesCmd.AddCommand(categoriesDeleteCmd)

	for _, c := range []*cobra.Command{categoriesCreateCmd, categoriesUpdateCmd} {
		c.Flags().StringVar(&categoryName, "name", "", "Category name")
		c.Flags().StringVar(&categoryDescription, "description", "", "Category description")
	}
}

func runCategoriesList(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	categories, err := app.client.GetCategories(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("🏷️  %d categorie(s)\n", len(categories))
	for _, c := range categories {
		if c.Description != "" {
			fmt.Printf("  %-12s %-25s %s\n", c.ID, c.Name, c.Description)
		} else {
			fmt.Printf("  %-12s %s\n", c.ID, c.Name)
		}
	}
	return nil
}

func categoryInputFromFlags(app *app) (models.CategoryInput, error) {
	in := models.CategoryInput{
		Name:        categoryName,
		Description: categoryDescription,
	}
	if err := app.input.Struct(in); err != nil {
		if fields, ok := validate.AsFieldErrors(err); ok {
			printFieldErrors(fields)
			return in, fmt.Errorf("invalid category input")
		}
		return in, err
	}
	return in, nil
}

func runCategoriesCreate(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.requireLogin(); err != nil {
		return err
	}
	in, err := categoryInputFromFlags(app)
	if err != nil {
		return err
	}
	category, err := app.client.CreateCategory(cmd.Context(), in)
	if err != nil {
		return err
	}
	fmt.Printf("✅ Created category %s (%s)\n", category.Name, category.ID)
	return nil
}

func runCategoriesUpdate(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.requireLogin(); err != nil {
		return err
	}
	in, err := categoryInputFromFlags(app)
	if err != nil {
		return err
	}
	category, err := app.client.UpdateCategory(cmd.Context(), args[0], in)
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("category %s not found", args[0])
		}
		return err
	}
	fmt.Printf("✅ Updated category %s\n", category.ID)
	return nil
}

func runCategoriesDelete(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.requireLogin(); err != nil {
		return err
	}
	if err := app.client.DeleteCategory(cmd.Context(), args[0]); err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("category %s not found", args[0])
		}
		return err
	}
	fmt.Printf("🗑️  Deleted category %s\n", args[0])
	return nil
}
