package handlers

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/shafvantalat/ecom/internal/models"
)

const (
	defaultPage  = int64(1)
	defaultLimit = int64(12)
	maxLimit     = int64(100)
)

// buildProductFilter translates the request's query parameters into a Mongo
// filter document. Absent or empty parameters add no constraint.
func buildProductFilter(c *gin.Context) bson.M {
	filter := bson.M{}

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		filter["category"] = category
	}

	// Boolean filters apply only when the parameter is present; any value
	// other than the literal "true" means false.
	if availability, ok := c.GetQuery("availability"); ok {
		filter["availability"] = availability == "true"
	}
	if featured, ok := c.GetQuery("featured"); ok {
		filter["featured"] = featured == "true"
	}

	price := bson.M{}
	if min, ok := parsePrice(c.Query("minPrice")); ok {
		price["$gte"] = min
	}
	if max, ok := parsePrice(c.Query("maxPrice")); ok {
		price["$lte"] = max
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if color := strings.TrimSpace(c.Query("color")); color != "" {
		filter["colors"] = bson.M{"$in": models.SplitCommaList(color)}
	}
	if size := strings.TrimSpace(c.Query("size")); size != "" {
		filter["sizes"] = bson.M{"$in": models.SplitCommaList(size)}
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"description": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	return filter
}

// buildProductSort maps the sort key to a deterministic field and direction.
// Unknown or absent keys fall back to newest first.
func buildProductSort(sort string) bson.D {
	switch sort {
	case "price-asc":
		return bson.D{{Key: "price", Value: 1}}
	case "price-desc":
		return bson.D{{Key: "price", Value: -1}}
	case "oldest":
		return bson.D{{Key: "createdAt", Value: 1}}
	case "newest":
		return bson.D{{Key: "createdAt", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

// parseListParams resolves page and limit with defaults of 1 and 12. Limits
// are capped at maxLimit so a single request cannot pull the whole catalog.
func parseListParams(pageStr, limitStr string) (int64, int64) {
	page := defaultPage
	limit := defaultLimit

	if p, err := strconv.ParseInt(strings.TrimSpace(pageStr), 10, 64); err == nil && p >= 1 {
		page = p
	}
	if l, err := strconv.ParseInt(strings.TrimSpace(limitStr), 10, 64); err == nil && l >= 1 {
		limit = l
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return page, limit
}

func parsePrice(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func totalPages(total, limit int64) int64 {
	if total <= 0 {
		return 0
	}
	return int64(math.Ceil(float64(total) / float64(limit)))
}
