package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwaggerDocumentsBothChargeRoutes(t *testing.T) {
	var doc struct {
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	assert.Equal(t, "/", doc.BasePath)
	for _, path := range []string{"/api/gerar-pix", "/v1/pix/charges"} {
		require.Contains(t, doc.Paths, path)
		assert.Contains(t, doc.Paths[path], "post")
	}
}
