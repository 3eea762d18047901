//go:build staging

package staging

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	for _, path := range []string{"/healthz", "/readyz"} {
		resp, body := makeRequest(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "%s: %s", path, body)
	}
}

func TestVersion(t *testing.T) {
	resp, body := makeRequest(t, http.MethodGet, "/version", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var info map[string]string
	require.NoError(t, json.Unmarshal(body, &info))
	assert.Contains(t, []string{"transaction", "sequential"}, info["flow_isolation"])
}
