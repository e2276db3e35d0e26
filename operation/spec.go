package operation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// SpecLoader resolves the OpenAPI document. Init calls it exactly once.
type SpecLoader func(ctx context.Context) (*openapi3.T, error)

// FromDocument returns a loader for an already parsed document.
func FromDocument(doc *openapi3.T) SpecLoader {
	return func(context.Context) (*openapi3.T, error) {
		if doc == nil {
			return nil, errors.New("openapi document is nil")
		}
		return doc, nil
	}
}

// FromData parses a JSON or YAML document.
func FromData(data []byte) SpecLoader {
	return func(ctx context.Context) (*openapi3.T, error) {
		loader := openapi3.NewLoader()
		loader.Context = ctx
		doc, err := loader.LoadFromData(data)
		if err != nil {
			return nil, fmt.Errorf("parse openapi document: %w", err)
		}
		return doc, nil
	}
}

// FromFile loads a document from disk, resolving local references.
func FromFile(path string) SpecLoader {
	return func(ctx context.Context) (*openapi3.T, error) {
		loader := openapi3.NewLoader()
		loader.Context = ctx
		doc, err := loader.LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("load openapi document %s: %w", path, err)
		}
		return doc, nil
	}
}

// Validated wraps a loader so the resolved document is also checked with
// kin-openapi's structural validation.
func Validated(load SpecLoader) SpecLoader {
	return func(ctx context.Context) (*openapi3.T, error) {
		doc, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if err := doc.Validate(ctx); err != nil {
			return nil, fmt.Errorf("validate openapi document: %w", err)
		}
		return doc, nil
	}
}

func lookupOperation(doc *openapi3.T, path, method string) (*openapi3.Operation, bool) {
	if doc == nil || doc.Paths == nil {
		return nil, false
	}
	item := doc.Paths.Value(path)
	if item == nil {
		return nil, false
	}
	op := item.GetOperation(method)
	return op, op != nil
}

// SuccessStatus returns the status written for a successful call of op:
// the lowest declared response code starting with "2", 200 for a "2XX"
// range, or 200 when the operation declares no success response.
func SuccessStatus(op *openapi3.Operation) int {
	if op == nil || op.Responses == nil {
		return http.StatusOK
	}
	codes := make([]string, 0, op.Responses.Len())
	for code := range op.Responses.Map() {
		if strings.HasPrefix(code, "2") {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	for _, code := range codes {
		if status, err := strconv.Atoi(code); err == nil {
			return status
		}
	}
	return http.StatusOK
}
