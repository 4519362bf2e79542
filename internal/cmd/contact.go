package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/toposhop/internal/models"
	"github.com/matthieukhl/toposhop/internal/validate"
)

var (
	contactName    string
	contactEmail   string
	contactSubject string
	contactMessage string
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send an inquiry to the shop",
	RunE:  runContact,
}

func init() {
	rootCmd.AddCommand(contactCmd)
	contactCmd.Flags().StringVar(&contactName, "name", "", "Your name")
	contactCmd.Flags().StringVar(&contactEmail, "email", "", "Your email address")
	contactCmd.Flags().StringVar(&contactSubject, "subject", "", "Subject")
	contactCmd.Flags().StringVar(&contactMessage, "message", "", "Message body")
}

func runContact(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	in := models.ContactInput{
		Name:    contactName,
		Email:   contactEmail,
		Subject: contactSubject,
		Message: contactMessage,
	}
	if err := app.input.Struct(in); err != nil {
		if fields, ok := validate.AsFieldErrors(err); ok {
			printFieldErrors(fields)
			return fmt.Errorf("invalid contact input")
		}
		return err
	}

	if err := app.client.SendContact(cmd.Context(), in); err != nil {
		return err
	}
	fmt.Println("📨 Inquiry sent")
	return nil
}
