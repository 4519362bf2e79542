package models

// ContactDetails holds the shop's public contact information.
type ContactDetails struct {
	Phone   string `json:"phone" mapstructure:"phone"`
	Email   string `json:"email" mapstructure:"email"`
	Address string `json:"address" mapstructure:"address"`
}

// SiteData is the static descriptive content of the storefront.
type SiteData struct {
	CompanyName string         `json:"companyName" mapstructure:"company_name"`
	Slogan      string         `json:"slogan" mapstructure:"slogan"`
	Contact     ContactDetails `json:"contact" mapstructure:"contact"`
	Services    []string       `json:"services" mapstructure:"services"`
}

// ContactInput is the payload for sending an inquiry through the contact
// endpoint.
type ContactInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// DefaultSiteData returns the shop's built-in site content, used when the
// configuration does not override it.
func DefaultSiteData() SiteData {
	return SiteData{
		CompanyName: "L'Oeil Du Topo Consulting",
		Slogan:      "La précision au service de vos projets",
		Contact: ContactDetails{
			Phone:   "+225 01 000 909 85 / 07 872 212 54",
			Email:   "contact@oeil-du-topo-consulting.com",
			Address: "Abidjan (Cocody 9eme Tranche), Côte d'Ivoire Non loin de l'immeuble CGK",
		},
		Services: []string{
			"Topographie",
			"Immobilier",
			"Aménagement foncier",
			"Informatique",
			"Travaux publics",
			"Lotissement",
			"Hydraulique",
			"Transit",
			"Import-Export",
			"Forage",
		},
	}
}
