package operation

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

const itemsSpec = `{
  "openapi": "3.0.3",
  "info": {"title": "Items", "version": "1.0.0"},
  "paths": {
    "/items": {
      "get": {
        "operationId": "listItems",
        "responses": {"200": {"description": "ok"}}
      },
      "post": {
        "operationId": "createItem",
        "responses": {
          "404": {"description": "missing"},
          "201": {"description": "created"}
        }
      }
    },
    "/items/{id}": {
      "get": {
        "operationId": "getItem",
        "responses": {"200": {"description": "ok"}, "404": {"description": "missing"}}
      },
      "delete": {
        "operationId": "deleteItem",
        "responses": {"204": {"description": "gone"}}
      },
      "patch": {
        "operationId": "patchItem",
        "responses": {"default": {"description": "whatever"}}
      }
    },
    "/reports/{id}.json": {
      "get": {
        "operationId": "getReport",
        "responses": {"200": {"description": "ok"}}
      }
    },
    "/range/{from}-{to}": {
      "get": {
        "operationId": "getRange",
        "responses": {"200": {"description": "ok"}}
      }
    },
    "/items/{id}/tags/{tag}": {
      "put": {
        "operationId": "tagItem",
        "responses": {"2XX": {"description": "ok"}}
      }
    }
  }
}`

type registration struct {
	method  string
	pattern string
	handler http.Handler
}

type recordingHost struct {
	registrations []registration
}

func (h *recordingHost) Handle(method, pattern string, handler http.Handler) error {
	h.registrations = append(h.registrations, registration{method: method, pattern: pattern, handler: handler})
	return nil
}

func newTestRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	reg, err := Init(context.Background(), append([]Option{WithSpec(FromData([]byte(itemsSpec)))}, opts...)...)
	require.NoError(t, err)
	return reg
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}
