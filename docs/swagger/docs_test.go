package swagger_test

import (
	"encoding/json"
	"testing"

	_ "mpu-janitor/docs/swagger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestDocMatchesHandlers(t *testing.T) {
	raw, err := swag.ReadDoc("swagger")
	require.NoError(t, err)

	var doc struct {
		Paths map[string]map[string]struct {
			Summary string `json:"summary"`
		} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	// Summaries mirror the @Summary annotations of the handlers.
	want := map[string]map[string]string{
		"/buckets":                  {"get": "List Buckets"},
		"/buckets/{name}/lifecycle": {"get": "Get Lifecycle"},
		"/buckets/{name}/reconcile": {"post": "Reconcile Bucket"},
		"/events/bucket-created":    {"post": "Bucket Created Event"},
		"/history":                  {"get": "Reconcile History"},
	}

	require.Len(t, doc.Paths, len(want))
	for path, ops := range want {
		for method, summary := range ops {
			assert.Equal(t, summary, doc.Paths[path][method].Summary, "%s %s", method, path)
		}
	}
}
