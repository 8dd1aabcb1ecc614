// Package model holds the documents stored in the shop's collections. Field
// names are shared by the JSON and BSON encodings so every store driver sees
// the same document shape.
package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Collection names.
const (
	CollectionProducts       = "products"
	CollectionOrders         = "orders"
	CollectionCustomers      = "customers"
	CollectionBusinessInfo   = "businessInfo"
	CollectionOutboxMessages = "outbox_messages"
)

func init() {
	// Money travels as a JSON number, both over the API and in JSONB documents.
	decimal.MarshalJSONWithoutQuotes = true
}

// NormalizeStatus lower-cases a free-text status tag. Whitespace is kept,
// so " paid" is not "paid".
func NormalizeStatus(s string) string {
	return strings.ToLower(s)
}

// StatusIs compares two status tags case-insensitively.
func StatusIs(s, want string) bool {
	return NormalizeStatus(s) == NormalizeStatus(want)
}
