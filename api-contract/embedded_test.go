package apicontract_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apicontract "github.com/tuanvumaihuynh/shop-admin/api-contract"
)

func TestSpec(t *testing.T) {
	t.Run("Should be a valid openapi document", func(t *testing.T) {
		doc, err := openapi3.NewLoader().LoadFromData(apicontract.GetSpecBytes())
		require.NoError(t, err)
		require.NoError(t, doc.Validate(context.Background()))

		assert.Equal(t, apicontract.Title, doc.Info.Title)
		assert.NotNil(t, doc.Paths.Find("/v1/orders/{id}"))
		assert.NotNil(t, doc.Paths.Find("/v1/inventory/overview"))
	})
}
