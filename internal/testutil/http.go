package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Request describes a request sent to a test engine
type Request struct {
	Method  string
	Path    string
	Host    string
	Body    any
	Headers map[string]string
}

// Do serves req against engine and returns the recorder
func Do(t *testing.T, engine http.Handler, req Request) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if req.Body != nil {
		switch b := req.Body.(type) {
		case []byte:
			body = bytes.NewReader(b)
		case string:
			body = bytes.NewBufferString(b)
		default:
			data, err := json.Marshal(b)
			require.NoError(t, err, "Failed to marshal request body")
			body = bytes.NewReader(data)
		}
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	r := httptest.NewRequest(method, req.Path, body)
	if req.Body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if req.Host != "" {
		r.Host = req.Host
	}
	for k, v := range req.Headers {
		r.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, r)
	return w
}

// JSON decodes the response body into a map
func JSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var result map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result), "Failed to parse JSON response: %s", w.Body.String())
	return result
}

// JSONAs decodes the response body into T
func JSONAs[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result), "Failed to parse JSON response: %s", w.Body.String())
	return result
}

// AssertError asserts the status and that the body is exactly the {error} envelope
func AssertError(t *testing.T, w *httptest.ResponseRecorder, status int) string {
	t.Helper()
	assert.Equal(t, status, w.Code, "body: %s", w.Body.String())
	resp := JSON(t, w)
	msg, ok := resp["error"].(string)
	assert.True(t, ok, "expected string error field, got %v", resp)
	assert.Len(t, resp, 1, "error envelope carries only the error field")
	return msg
}
