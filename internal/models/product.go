package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Categories is the closed set of catalog categories.
var Categories = []string{"shoes", "clothes", "accessories", "electronics", "home", "beauty"}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Role is the access role carried inside an admin token.
type Role string

const RoleAdmin Role = "admin"

// StockStatus is the shopper-facing availability label for a product.
type StockStatus string

const (
	StatusInStock    StockStatus = "In Stock"
	StatusLowStock   StockStatus = "Low Stock"
	StatusOutOfStock StockStatus = "Out of Stock"
)

const lowStockThreshold = 10

type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SKU          string             `bson:"sku" json:"sku"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	Images       []string           `bson:"images" json:"images"`
	Category     string             `bson:"category" json:"category"`
	Colors       StringList         `bson:"colors" json:"colors"`
	Sizes        StringList         `bson:"sizes" json:"sizes"`
	Availability bool               `bson:"availability" json:"availability"`
	Stock        int                `bson:"stock" json:"stock"`
	Featured     bool               `bson:"featured" json:"featured"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// StockStatus maps availability and stock level to the label shown to shoppers.
func (p Product) StockStatus() StockStatus {
	if !p.Availability || p.Stock == 0 {
		return StatusOutOfStock
	}
	if p.Stock < lowStockThreshold {
		return StatusLowStock
	}
	return StatusInStock
}
