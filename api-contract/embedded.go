// Package apicontract embeds the OpenAPI document the HTTP API is validated
// against.
package apicontract

import _ "embed"

// Title is the API title shown in the docs page.
const Title = "Shop Admin API"

//go:embed openapi.yml
var specBytes []byte

// GetSpecBytes returns the embedded OpenAPI specification as a byte slice.
func GetSpecBytes() []byte {
	return specBytes
}
