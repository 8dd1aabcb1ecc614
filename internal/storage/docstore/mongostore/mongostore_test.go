package mongostore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore"
)

func TestBuildFilter(t *testing.T) {
	t.Run("Should translate conditions into a bson filter", func(t *testing.T) {
		filter, err := buildFilter([]docstore.Condition{
			docstore.Eq("category", "Shirts"),
			docstore.NotExists("processedAt"),
		})
		require.NoError(t, err)

		assert.Equal(t, bson.M{
			"category":    "Shirts",
			"processedAt": bson.M{"$exists": false},
		}, filter)
	})

	t.Run("Should match everything without conditions", func(t *testing.T) {
		filter, err := buildFilter(nil)
		require.NoError(t, err)
		assert.Empty(t, filter)
	})
}
