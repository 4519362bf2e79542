package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/toposhop/internal/api"
)

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Manage product media (admin)",
}

var mediaUploadCmd = &cobra.Command{
	Use:   "upload <product-id> <file>...",
	Short: "Upload image files for a product",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runMediaUpload,
}

var mediaDeleteCmd = &cobra.Command{
	Use:   "delete <media-id>",
	Short: "Delete an uploaded media item",
	Args:  cobra.ExactArgs(1),
	RunE:  runMediaDelete,
}

func init() {
	rootCmd.AddCommand(mediaCmd)
	mediaCmd.AddCommand(mediaUploadCmd)
	mediaCmd.AddCommand(mediaDeleteCmd)
}

func runMediaUpload(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.requireLogin(); err != nil {
		return err
	}

	productID := args[0]
	var files []api.Upload
	var handles []*os.File
	defer func() {
		for _, h := range handles {
			h.Close()
		}
	}()
	for _, path := range args[1:] {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open image file: %w", err)
		}
		handles = append(handles, f)
		files = append(files, api.Upload{Name: filepath.Base(path), Reader: f})
	}

	urls, err := app.client.UploadProductImages(cmd.Context(), productID, files)
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("product %s not found", productID)
		}
		return err
	}
	fmt.Printf("✅ Uploaded %d image(s)\n", len(urls))
	for _, u := range urls {
		fmt.Printf("  %s\n", u)
	}
	return nil
}

func runMediaDelete(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.requireLogin(); err != nil {
		return err
	}
	if err := app.client.DeleteMedia(cmd.Context(), args[0]); err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("media %s not found", args[0])
		}
		return err
	}
	fmt.Printf("🗑️  Deleted media %s\n", args[0])
	return nil
}
