package handlers

import (
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

func testContextWithQuery(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/products?"+rawQuery, nil)
	return c
}

func TestBuildProductFilterEmptyQuery(t *testing.T) {
	filter := buildProductFilter(testContextWithQuery(t, ""))
	if len(filter) != 0 {
		t.Fatalf("expected empty filter, got %v", filter)
	}
}

func TestBuildProductFilterCategory(t *testing.T) {
	filter := buildProductFilter(testContextWithQuery(t, "category=shoes"))
	if filter["category"] != "shoes" {
		t.Fatalf("expected category=shoes, got %v", filter["category"])
	}
}

func TestBuildProductFilterBooleanLiteralTrue(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"availability=true", true},
		{"availability=false", false},
		{"availability=TRUE", false},
		{"availability=1", false},
	}
	for _, tt := range tests {
		filter := buildProductFilter(testContextWithQuery(t, tt.query))
		if filter["availability"] != tt.want {
			t.Fatalf("query %q: expected availability=%v, got %v", tt.query, tt.want, filter["availability"])
		}
	}
}

func TestBuildProductFilterBooleanAbsent(t *testing.T) {
	filter := buildProductFilter(testContextWithQuery(t, "category=shoes"))
	if _, ok := filter["availability"]; ok {
		t.Fatal("availability should not be present when not provided")
	}
	if _, ok := filter["featured"]; ok {
		t.Fatal("featured should not be present when not provided")
	}
}

func TestBuildProductFilterPriceRange(t *testing.T) {
	filter := buildProductFilter(testContextWithQuery(t, "minPrice=100&maxPrice=500"))
	price, ok := filter["price"].(bson.M)
	if !ok {
		t.Fatalf("expected price sub-document, got %v", filter["price"])
	}
	if price["$gte"] != 100.0 || price["$lte"] != 500.0 {
		t.Fatalf("unexpected price bounds: %v", price)
	}
}

func TestBuildProductFilterMalformedPriceIgnored(t *testing.T) {
	filter := buildProductFilter(testContextWithQuery(t, "minPrice=abc&maxPrice=500"))
	price, ok := filter["price"].(bson.M)
	if !ok {
		t.Fatalf("expected price sub-document, got %v", filter["price"])
	}
	if _, ok := price["$gte"]; ok {
		t.Fatal("malformed minPrice should add no lower bound")
	}
	if price["$lte"] != 500.0 {
		t.Fatalf("expected upper bound 500, got %v", price["$lte"])
	}

	filter = buildProductFilter(testContextWithQuery(t, "minPrice=abc"))
	if _, ok := filter["price"]; ok {
		t.Fatal("fully malformed price range should add no price filter")
	}
}

func TestBuildProductFilterColorAndSizeMembership(t *testing.T) {
	filter := buildProductFilter(testContextWithQuery(t, "color=red,blue&size=M,%20L"))

	colors, ok := filter["colors"].(bson.M)
	if !ok {
		t.Fatalf("expected colors sub-document, got %v", filter["colors"])
	}
	if !reflect.DeepEqual(colors["$in"], []string{"red", "blue"}) {
		t.Fatalf("unexpected color set: %v", colors["$in"])
	}

	sizes, ok := filter["sizes"].(bson.M)
	if !ok {
		t.Fatalf("expected sizes sub-document, got %v", filter["sizes"])
	}
	if !reflect.DeepEqual(sizes["$in"], []string{"M", "L"}) {
		t.Fatalf("unexpected size set: %v", sizes["$in"])
	}
}

func TestBuildProductFilterSearch(t *testing.T) {
	filter := buildProductFilter(testContextWithQuery(t, "search=sneaker"))
	or, ok := filter["$or"].([]bson.M)
	if !ok || len(or) != 2 {
		t.Fatalf("expected $or with two branches, got %v", filter["$or"])
	}
	name, _ := or[0]["name"].(bson.M)
	if name["$regex"] != "sneaker" || name["$options"] != "i" {
		t.Fatalf("unexpected name regex: %v", or[0])
	}
	description, _ := or[1]["description"].(bson.M)
	if description["$regex"] != "sneaker" {
		t.Fatalf("unexpected description regex: %v", or[1])
	}
}

func TestBuildProductSort(t *testing.T) {
	tests := []struct {
		sort  string
		field string
		dir   int
	}{
		{"price-asc", "price", 1},
		{"price-desc", "price", -1},
		{"newest", "createdAt", -1},
		{"oldest", "createdAt", 1},
		{"", "createdAt", -1},
		{"bogus", "createdAt", -1},
	}
	for _, tt := range tests {
		sort := buildProductSort(tt.sort)
		if len(sort) != 1 || sort[0].Key != tt.field || sort[0].Value != tt.dir {
			t.Fatalf("sort %q: expected %s %d, got %v", tt.sort, tt.field, tt.dir, sort)
		}
	}
}

func TestParseListParamsDefaults(t *testing.T) {
	page, limit := parseListParams("", "")
	if page != 1 || limit != 12 {
		t.Fatalf("expected defaults 1/12, got %d/%d", page, limit)
	}
}

func TestParseListParamsInvalidFallsBack(t *testing.T) {
	page, limit := parseListParams("abc", "-5")
	if page != 1 || limit != 12 {
		t.Fatalf("expected defaults for invalid input, got %d/%d", page, limit)
	}
}

func TestParseListParamsClampsLimit(t *testing.T) {
	_, limit := parseListParams("1", "5000")
	if limit != maxLimit {
		t.Fatalf("expected limit clamped to %d, got %d", maxLimit, limit)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, limit, want int64
	}{
		{0, 12, 0},
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{2, 2, 1},
		{25, 12, 3},
	}
	for _, tt := range tests {
		if got := totalPages(tt.total, tt.limit); got != tt.want {
			t.Fatalf("totalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}
