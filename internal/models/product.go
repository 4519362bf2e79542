package models

import "encoding/json"

// Product is a catalog item as served by the shop backend.
type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Price       float64    `json:"price"`
	Description string     `json:"description"`
	Image       ImageList  `json:"image"`
	Medias      []Media    `json:"medias,omitempty"`
	Category    string     `json:"category"`
	InStock     bool       `json:"inStock"`
	Rating      *float64   `json:"rating,omitempty"`
	Stock       *int       `json:"stock,omitempty"`
	CreatedAt   string     `json:"createdAt,omitempty"`
	UpdatedAt   string     `json:"updated_at,omitempty"`
}

// Media is an uploaded media reference attached to a product.
type Media struct {
	ID  string `json:"id,omitempty"`
	URL string `json:"url"`
}

// StockTracked reports whether stock counting is in use for this product.
func (p Product) StockTracked() bool {
	return p.Stock != nil
}

// DerivedInStock is the canonical inStock derivation: a tracked product is in
// stock iff its count is positive. Callers updating stock must pass the result
// alongside the new count, the store never recomputes it on their behalf.
func DerivedInStock(stock int) bool {
	return stock > 0
}

// ImageList holds one or many image URLs. The backend serves either a single
// string or an array for the image field, both decode into a list.
type ImageList []string

func (l *ImageList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*l = nil
		} else {
			*l = ImageList{single}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = ImageList(many)
	return nil
}

// ProductPatch is a partial product update. Only non-nil fields are applied;
// stock and inStock are independent and neither implies the other.
type ProductPatch struct {
	Name        *string    `json:"name,omitempty"`
	Price       *float64   `json:"price,omitempty"`
	Description *string    `json:"description,omitempty"`
	Image       *ImageList `json:"image,omitempty"`
	Category    *string    `json:"category,omitempty"`
	InStock     *bool      `json:"inStock,omitempty"`
	Rating      *float64   `json:"rating,omitempty"`
	Stock       *int       `json:"stock,omitempty"`
}

// Apply merges the patch into the product.
func (patch ProductPatch) Apply(p *Product) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.InStock != nil {
		p.InStock = *patch.InStock
	}
	if patch.Rating != nil {
		p.Rating = patch.Rating
	}
	if patch.Stock != nil {
		p.Stock = patch.Stock
	}
}

// ProductInput is the payload for creating a product. The id and timestamps
// are server-assigned.
type ProductInput struct {
	Name        string    `json:"name" validate:"required"`
	Price       float64   `json:"price" validate:"gt=0"`
	Description string    `json:"description"`
	Image       ImageList `json:"image"`
	Category    string    `json:"category" validate:"required"`
	InStock     bool      `json:"inStock"`
	Rating      *float64  `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Stock       *int      `json:"stock,omitempty" validate:"omitempty,gte=0"`
}
