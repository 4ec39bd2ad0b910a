package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shafvantalat/ecom/internal/models"
)

/* =======================
   REQUEST MODELS
======================= */

type ProductCreateRequest struct {
	SKU          string            `json:"sku"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Price        float64           `json:"price"`
	Images       []string          `json:"images"`
	Category     string            `json:"category"`
	Colors       models.StringList `json:"colors"`
	Sizes        models.StringList `json:"sizes"`
	Availability *bool             `json:"availability"`
	Stock        int               `json:"stock"`
	Featured     *bool             `json:"featured"`
}

type ProductUpdateRequest struct {
	SKU          *string            `json:"sku"`
	Name         *string            `json:"name"`
	Description  *string            `json:"description"`
	Price        *float64           `json:"price"`
	Images       *[]string          `json:"images"`
	Category     *string            `json:"category"`
	Colors       *models.StringList `json:"colors"`
	Sizes        *models.StringList `json:"sizes"`
	Availability *bool              `json:"availability"`
	Stock        *int               `json:"stock"`
	Featured     *bool              `json:"featured"`
}

/* =======================
   CREATE
======================= */

func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /products"
		defer handlePanic(c, route)

		var req ProductCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Printf("[%s] bind error: %v", route, err)
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		availability := true
		if req.Availability != nil {
			availability = *req.Availability
		}
		featured := false
		if req.Featured != nil {
			featured = *req.Featured
		}

		now := time.Now().UTC()
		product := models.Product{
			SKU:          strings.TrimSpace(req.SKU),
			Name:         strings.TrimSpace(req.Name),
			Description:  strings.TrimSpace(req.Description),
			Price:        req.Price,
			Images:       req.Images,
			Category:     strings.TrimSpace(req.Category),
			Colors:       req.Colors,
			Sizes:        req.Sizes,
			Availability: availability,
			Stock:        req.Stock,
			Featured:     featured,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if errs := validateProduct(product); len(errs) > 0 {
			respondValidationErrors(c, route, errs)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").InsertOne(ctx, product)
		if mongo.IsDuplicateKeyError(err) {
			log.Printf("[%s] duplicate sku: %s", route, product.SKU)
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"success": false,
				"message": "Duplicate SKU",
				"errors":  []FieldError{{Field: "sku", Message: "SKU already exists"}},
			})
			return
		}
		if err != nil {
			log.Printf("[%s] insert error: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "Server error while creating product")
			return
		}

		product.ID = res.InsertedID.(primitive.ObjectID)
		log.Printf("[%s] created product %s (sku=%s)", route, product.ID.Hex(), product.SKU)
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data":    product,
			"message": "Product created successfully",
		})
	}
}

/* =======================
   UPDATE
======================= */

func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /products/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "Product not found")
			return
		}

		var req ProductUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Printf("[%s] bind error: %v", route, err)
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "Product not found")
			return
		}
		if err != nil {
			log.Printf("[%s] find error: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "Server error while updating product")
			return
		}

		merged := existing
		updateSet := bson.M{}

		if req.SKU != nil {
			merged.SKU = strings.TrimSpace(*req.SKU)
			updateSet["sku"] = merged.SKU
		}
		if req.Name != nil {
			merged.Name = strings.TrimSpace(*req.Name)
			updateSet["name"] = merged.Name
		}
		if req.Description != nil {
			merged.Description = strings.TrimSpace(*req.Description)
			updateSet["description"] = merged.Description
		}
		if req.Price != nil {
			merged.Price = *req.Price
			updateSet["price"] = merged.Price
		}
		if req.Images != nil {
			merged.Images = *req.Images
			updateSet["images"] = merged.Images
		}
		if req.Category != nil {
			merged.Category = strings.TrimSpace(*req.Category)
			updateSet["category"] = merged.Category
		}
		if req.Colors != nil {
			merged.Colors = *req.Colors
			updateSet["colors"] = merged.Colors
		}
		if req.Sizes != nil {
			merged.Sizes = *req.Sizes
			updateSet["sizes"] = merged.Sizes
		}
		if req.Availability != nil {
			merged.Availability = *req.Availability
			updateSet["availability"] = merged.Availability
		}
		if req.Stock != nil {
			merged.Stock = *req.Stock
			updateSet["stock"] = merged.Stock
		}
		if req.Featured != nil {
			merged.Featured = *req.Featured
			updateSet["featured"] = merged.Featured
		}

		if len(updateSet) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}

		// The merged document must satisfy the same rules as a create.
		if errs := validateProduct(merged); len(errs) > 0 {
			respondValidationErrors(c, route, errs)
			return
		}

		updateSet["updatedAt"] = time.Now().UTC()

		result, err := db.Collection("products").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updateSet})
		if mongo.IsDuplicateKeyError(err) {
			log.Printf("[%s] duplicate sku: %s", route, merged.SKU)
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"success": false,
				"message": "Duplicate SKU",
				"errors":  []FieldError{{Field: "sku", Message: "SKU already exists"}},
			})
			return
		}
		if err != nil {
			log.Printf("[%s] update error: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "Server error while updating product")
			return
		}
		if result.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "Product not found")
			return
		}

		var updated models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "Product not found")
			return
		}
		if err != nil {
			log.Printf("[%s] find error: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "Server error while updating product")
			return
		}

		log.Printf("[%s] updated product %s", route, id.Hex())
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    updated,
			"message": "Product updated successfully",
		})
	}
}

/* =======================
   DELETE
======================= */

func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /products/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "Product not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("products").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			log.Printf("[%s] delete error: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "Server error while deleting product")
			return
		}

		if result.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "Product not found")
			return
		}

		log.Printf("[%s] deleted product %s", route, id.Hex())
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Product deleted successfully",
		})
	}
}
