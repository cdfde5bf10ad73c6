package catalog

import "github.com/shopspring/decimal"

// Image is the reference to a picture plus the hint used for alt text and search.
type Image struct {
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	ImageURL    string `json:"imageUrl" yaml:"imageUrl"`
	ImageHint   string `json:"imageHint" yaml:"imageHint"`
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"string" example:"250.00"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	ExpiryDate  string          `json:"expiryDate,omitempty"`
	IsFeatured  bool            `json:"isFeatured,omitempty"`
	Image       Image           `json:"image"`
}

type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Image Image  `json:"image" yaml:"image"`
}

// Input is the admin-submitted product data.
// swagger:model ProductInput
type Input struct {
	Name        string          `json:"name" validate:"min=2" msg:"Name must be at least 2 characters."`
	Description string          `json:"description" validate:"min=10" msg:"Description must be at least 10 characters."`
	Price       decimal.Decimal `json:"price" validate:"gt=0" msg:"Price must be a positive number." swaggertype:"string"`
	Stock       int             `json:"stock" validate:"gte=0" msg:"Stock cannot be negative."`
	Category    string          `json:"category" validate:"required" msg:"Please select a category"`
	ExpiryDate  string          `json:"expiryDate,omitempty"`
	IsFeatured  bool            `json:"isFeatured"`
}

// ListResponse wraps a product listing.
// swagger:model
type ListResponse struct {
	Category string    `json:"category,omitempty"`
	Featured bool      `json:"featured,omitempty"`
	Items    []Product `json:"items"`
}
