package info

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drblury/opweaver/responder"
)

const doc = `{
  "openapi": "3.0.3",
  "info": {"title": "Items", "version": "1.0.0"},
  "paths": {
    "/items/{id}": {
      "get": {"operationId": "getItem", "responses": {"200": {"description": "ok"}}}
    }
  }
}`

func loadDoc(t *testing.T) *openapi3.T {
	t.Helper()
	spec, err := openapi3.NewLoader().LoadFromData([]byte(doc))
	require.NoError(t, err)
	return spec
}

func call(h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func decodeProbePayload(t *testing.T, body []byte) probePayload {
	t.Helper()
	var payload probePayload
	require.NoError(t, json.Unmarshal(body, &payload), string(body))
	return payload
}

func TestGetStatus(t *testing.T) {
	rr := call(NewInfoHandler().GetStatus, "/status")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "HEALTHY", decodeProbePayload(t, rr.Body.Bytes()).Status)
}

func TestGetReadyz(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		h := NewInfoHandler(WithReadinessChecks(func(context.Context) error { return nil }))
		rr := call(h.GetReadyz, "/readyz")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ready", decodeProbePayload(t, rr.Body.Bytes()).Status)
	})

	t.Run("failing check", func(t *testing.T) {
		h := NewInfoHandler(WithReadinessChecks(nil, func(context.Context) error { return errors.New("no routes") }))
		rr := call(h.GetReadyz, "/readyz")
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

		var problem responder.ProblemDetails
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &problem))
		assert.Equal(t, "probe 1 failed: no routes", problem.Detail)
	})
}

func TestGetHealthzTimesOut(t *testing.T) {
	h := NewInfoHandler(
		WithProbeTimeout(5*time.Millisecond),
		WithLivenessChecks(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}),
	)

	rr := call(h.GetHealthz, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "timed out after 5ms")
}

func TestRunChecksReportsCancellation(t *testing.T) {
	err := NewInfoHandler().runChecks(context.Background(), []ProbeFunc{func(context.Context) error {
		return context.Canceled
	}})
	assert.EqualError(t, err, "probe 1 was cancelled")
}

func TestGetVersion(t *testing.T) {
	h := NewInfoHandler(WithInfoProvider(func() any { return map[string]string{"version": "1.2.3"} }))
	rr := call(h.GetVersion, "/version")
	assert.JSONEq(t, `{"version":"1.2.3"}`, rr.Body.String())

	rr = call(NewInfoHandler(WithInfoProvider(func() any { return nil })).GetVersion, "/version")
	assert.JSONEq(t, `{}`, rr.Body.String())
}

func TestGetOpenAPIJSON(t *testing.T) {
	spec := loadDoc(t)
	h := NewInfoHandler(WithSpecProvider(func() *openapi3.T { return spec }))

	rr := call(h.GetOpenAPIJSON, "/openapi.json")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	reloaded, err := openapi3.NewLoader().LoadFromData(rr.Body.Bytes())
	require.NoError(t, err)
	require.NotNil(t, reloaded.Paths.Value("/items/{id}"))
	assert.Equal(t, "getItem", reloaded.Paths.Value("/items/{id}").Get.OperationID)
}

func TestGetOpenAPIYAML(t *testing.T) {
	spec := loadDoc(t)
	h := NewInfoHandler(WithSpecProvider(func() *openapi3.T { return spec }))

	rr := call(h.GetOpenAPIYAML, "/openapi.yaml")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/yaml", rr.Header().Get("Content-Type"))

	body := rr.Body.String()
	assert.Contains(t, body, "\nopenapi: 3.0.3\n")
	assert.Contains(t, body, `"200":`)
	assert.False(t, strings.HasPrefix(body, "{"), "expected block style output")

	reloaded, err := openapi3.NewLoader().LoadFromData(rr.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Items", reloaded.Info.Title)
}

func TestSpecEndpointsWithoutDocument(t *testing.T) {
	h := NewInfoHandler()
	assert.Equal(t, http.StatusInternalServerError, call(h.GetOpenAPIJSON, "/openapi.json").Code)

	h = NewInfoHandler(WithSpecProvider(func() *openapi3.T { return nil }))
	assert.Equal(t, http.StatusInternalServerError, call(h.GetOpenAPIYAML, "/openapi.yaml").Code)
}
