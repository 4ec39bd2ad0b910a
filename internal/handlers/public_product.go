package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shafvantalat/ecom/internal/models"
)

/*
GET /api/products
- filters: category, color, size, minPrice, maxPrice, availability, featured, search
- sort: price-asc | price-desc | newest | oldest
- pagination: page (default 1) + limit (default 12)
*/
func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		log.Printf(
			"[%s] hit page=%s limit=%s category=%s search=%s sort=%s",
			route,
			c.Query("page"),
			c.Query("limit"),
			c.Query("category"),
			c.Query("search"),
			c.Query("sort"),
		)

		filter := buildProductFilter(c)
		page, limit := parseListParams(c.Query("page"), c.Query("limit"))

		findOptions := options.Find().
			SetSort(buildProductSort(c.Query("sort"))).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("products").Find(ctx, filter, findOptions)
		if err != nil {
			log.Printf("[%s] find error: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "Server error while fetching products")
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			log.Printf("[%s] decode error: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "Server error while fetching products")
			return
		}

		// Count shares the filter but not the pagination; it may drift from
		// the returned page under concurrent writes.
		total, err := db.Collection("products").CountDocuments(ctx, filter)
		if err != nil {
			log.Printf("[%s] count error: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "Server error while fetching products")
			return
		}

		log.Printf("[%s] returning %d of %d products", route, len(products), total)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    products,
			"pagination": gin.H{
				"current": page,
				"pages":   totalPages(total, limit),
				"total":   total,
				"limit":   limit,
			},
		})
	}
}

// GET /api/products/:id
func GetProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "Product not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "Product not found")
			return
		}
		if err != nil {
			log.Printf("[%s] find error: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "Server error while fetching product")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    product,
		})
	}
}

// GET /api/products/categories
// Returns the category values currently in use, not the full enum.
func GetCategories(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/categories"
		defer handlePanic(c, route)

		log.Printf("[%s] hit", route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		values, err := db.Collection("products").Distinct(ctx, "category", bson.M{})
		if err != nil {
			log.Printf("[%s] distinct error: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "Server error while fetching categories")
			return
		}

		categories := make([]string, 0, len(values))
		for _, value := range values {
			if category, ok := value.(string); ok {
				categories = append(categories, category)
			}
		}

		log.Printf("[%s] returning %d categories", route, len(categories))
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    categories,
		})
	}
}

// GET /api/health
func Health(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /health"

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "ok",
		})
	}
}
