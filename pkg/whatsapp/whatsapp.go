// Package whatsapp composes the pre-filled purchase message and wa.me deep
// link a shopper uses to order a product.
package whatsapp

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shafvantalat/ecom/internal/models"
)

const defaultCurrency = "₹"

// FormatPrice renders a price with the currency symbol and Indian-style
// digit grouping (12,34,567).
func FormatPrice(price float64) string {
	return defaultCurrency + groupIndian(price)
}

// OrderMessage builds the pre-filled enquiry text for a product. Missing
// color or size selections are reported as "Not specified".
func OrderMessage(p models.Product, selectedColor, selectedSize string) string {
	color := strings.TrimSpace(selectedColor)
	if color == "" {
		color = "Not specified"
	}
	size := strings.TrimSpace(selectedSize)
	if size == "" {
		size = "Not specified"
	}

	availability := "Out of Stock"
	if p.Availability {
		availability = "In Stock"
	}

	return fmt.Sprintf(
		"Hi, I'm interested in product: %s (ID: %s)\nColor: %s\nSize: %s\nPrice: %s\nAvailability: %s",
		p.Name, p.SKU, color, size, FormatPrice(p.Price), availability,
	)
}

// URL returns the wa.me deep link that opens a chat with the given phone
// number and the message pre-filled.
func URL(phoneNumber, message string) string {
	return "https://wa.me/" + phoneNumber + "?text=" + url.QueryEscape(message)
}

func groupIndian(price float64) string {
	s := strconv.FormatFloat(price, 'f', -1, 64)

	intPart := s
	fracPart := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot:]
	}

	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}

	if len(intPart) <= 3 {
		return sign + intPart + fracPart
	}

	// Last three digits, then groups of two.
	head := intPart[:len(intPart)-3]
	tail := intPart[len(intPart)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return sign + strings.Join(groups, ",") + "," + tail + fracPart
}
