package handlers

import (
	"strings"

	"github.com/shafvantalat/ecom/internal/models"
)

const (
	maxSKULength         = 50
	maxNameLength        = 100
	maxDescriptionLength = 1000
)

// validateProduct checks a fully merged product against the write rules and
// returns one message per failing field.
func validateProduct(p models.Product) []FieldError {
	errs := make([]FieldError, 0)

	sku := strings.TrimSpace(p.SKU)
	if sku == "" {
		errs = append(errs, FieldError{Field: "sku", Message: "Product ID (SKU) is required"})
	} else if len(sku) > maxSKULength {
		errs = append(errs, FieldError{Field: "sku", Message: "SKU cannot exceed 50 characters"})
	}

	name := strings.TrimSpace(p.Name)
	if name == "" || len(name) > maxNameLength {
		errs = append(errs, FieldError{Field: "name", Message: "Product name must be between 1 and 100 characters"})
	}

	description := strings.TrimSpace(p.Description)
	if description == "" || len(description) > maxDescriptionLength {
		errs = append(errs, FieldError{Field: "description", Message: "Description must be between 1 and 1000 characters"})
	}

	if p.Price < 0 {
		errs = append(errs, FieldError{Field: "price", Message: "Price must be a positive number"})
	}

	if !models.IsValidCategory(p.Category) {
		errs = append(errs, FieldError{Field: "category", Message: "Invalid category"})
	}

	if len(p.Colors) == 0 {
		errs = append(errs, FieldError{Field: "colors", Message: "At least one color must be specified"})
	}

	if len(p.Sizes) == 0 {
		errs = append(errs, FieldError{Field: "sizes", Message: "At least one size must be specified"})
	}

	if p.Stock < 0 {
		errs = append(errs, FieldError{Field: "stock", Message: "Stock must be a non-negative integer"})
	}

	if len(p.Images) == 0 {
		errs = append(errs, FieldError{Field: "images", Message: "At least one image must be provided"})
	}

	return errs
}
