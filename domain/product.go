// Package domain defines core business types shared by the storefront layers.
package domain

import "time"

// Review is a customer review embedded in a Product.
type Review struct {
	Rating       float64   `json:"rating"`
	Comment      string    `json:"comment"`
	Date         time.Time `json:"date"`
	ReviewerName string    `json:"reviewerName"`
}

// Product is a catalog entity. The remote catalog owns it; the storefront
// only ever holds read-only copies.
type Product struct {
	ID                  int      `json:"id"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Category            string   `json:"category"`
	Brand               string   `json:"brand,omitempty"`
	Price               float64  `json:"price"`
	DiscountPercentage  float64  `json:"discountPercentage"`
	Stock               int      `json:"stock"`
	Rating              float64  `json:"rating"`
	Thumbnail           string   `json:"thumbnail"`
	Images              []string `json:"images,omitempty"`
	ShippingInformation string   `json:"shippingInformation,omitempty"`
	WarrantyInformation string   `json:"warrantyInformation,omitempty"`
	ReturnPolicy        string   `json:"returnPolicy,omitempty"`
	Reviews             []Review `json:"reviews,omitempty"`
}

// DiscountedPrice returns the unit price after applying the discount percentage.
func (p Product) DiscountedPrice() float64 {
	return p.Price * (1 - p.DiscountPercentage/100)
}

// ProductPage is the envelope returned by the catalog list endpoints.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// DeletedProduct is the catalog's response to a delete request.
type DeletedProduct struct {
	Product
	IsDeleted bool      `json:"isDeleted"`
	DeletedOn time.Time `json:"deletedOn"`
}

// ProductInput is a partial product sent to the catalog's create and update
// endpoints. Zero-valued fields are omitted from the request body.
type ProductInput struct {
	Title              string  `json:"title,omitempty"`
	Description        string  `json:"description,omitempty"`
	Category           string  `json:"category,omitempty"`
	Brand              string  `json:"brand,omitempty"`
	Price              float64 `json:"price,omitempty"`
	DiscountPercentage float64 `json:"discountPercentage,omitempty"`
	Stock              int     `json:"stock,omitempty"`
	Thumbnail          string  `json:"thumbnail,omitempty"`
}

// ValidateInput checks a partial product before it is sent to the catalog.
// requireTitle is set for creates; updates may leave the title untouched.
func ValidateInput(in ProductInput, requireTitle bool) error {
	if requireTitle && in.Title == "" {
		return NewInvalidProductError("title", "cannot be empty", in.Title)
	}
	if in.Price < 0 {
		return NewInvalidProductError("price", "must be non-negative", in.Price)
	}
	if in.DiscountPercentage < 0 || in.DiscountPercentage > 100 {
		return NewInvalidProductError("discountPercentage", "must be between 0 and 100", in.DiscountPercentage)
	}
	if in.Stock < 0 {
		return NewInvalidProductError("stock", "must be non-negative", in.Stock)
	}
	return nil
}
