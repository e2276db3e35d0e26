package operation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type principal struct {
	User string
}

func TestWithMiddlewarePassesResultToController(t *testing.T) {
	base := &Context{Global: "global"}
	handler := WithMiddleware(
		func(ctx *Context) (principal, error) {
			assert.Equal(t, "global", ctx.Global)
			return principal{User: "ada"}, nil
		},
		func(ctx *Context, p principal) (any, error) {
			assert.Equal(t, p, ctx.Middleware)
			assert.Equal(t, "global", ctx.Global)
			return "hello " + p.User, nil
		},
	)

	out, err := handler(base)
	require.NoError(t, err)
	assert.Equal(t, "hello ada", out)
	assert.Nil(t, base.Middleware, "the caller's context is left untouched")
}

func TestWithMiddlewareFailureSkipsController(t *testing.T) {
	sentinel := NewError(http.StatusForbidden, "forbidden")
	called := false
	handler := WithMiddleware(
		func(*Context) (int, error) { return 0, sentinel },
		func(*Context, int) (any, error) {
			called = true
			return nil, nil
		},
	)

	_, err := handler(&Context{})
	assert.Same(t, sentinel, err)
	assert.False(t, called)
}

type createItem struct {
	Name string `json:"name"`
}

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestTypedDecodesRequestBody(t *testing.T) {
	handler := Typed(func(_ *Context, req createItem) (item, error) {
		return item{ID: 1, Name: req.Name}, nil
	})

	ctx := &Context{Request: httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"name":"widget"}`))}
	out, err := handler(ctx)
	require.NoError(t, err)
	assert.Equal(t, item{ID: 1, Name: "widget"}, out)
}

func TestTypedRejectsMalformedBody(t *testing.T) {
	handler := Typed(func(*Context, createItem) (item, error) {
		t.Fatal("handler must not run")
		return item{}, nil
	})

	ctx := &Context{Request: httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"name":`))}
	_, err := handler(ctx)

	var opErr *Error
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, http.StatusBadRequest, opErr.Status)
	assert.Contains(t, opErr.Message, "invalid request body")
}

func TestTypedSkipsDecodingForEmptyStruct(t *testing.T) {
	handler := Typed(func(*Context, struct{}) ([]item, error) {
		return []item{{ID: 1}}, nil
	})

	out, err := handler(&Context{Request: httptest.NewRequest(http.MethodGet, "/items", nil)})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestTypedThroughRegistry(t *testing.T) {
	reg := newTestRegistry(t, WithAPI(API{
		"/items": {"post": Typed(func(_ *Context, req createItem) (item, error) {
			return item{ID: 9, Name: req.Name}, nil
		})},
	}))

	rr := serve(t, reg, http.MethodPost, "/items", `{"name":"gear"}`)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"id":9,"name":"gear"}`, rr.Body.String())

	rr = serve(t, reg, http.MethodPost, "/items", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid request body")
}

func TestErrorFormatting(t *testing.T) {
	assert.Equal(t, "422: bad", NewError(422, "bad").Error())
	assert.Equal(t, "500: Unknown Error", (&Error{}).Error())

	cause := errors.New("disk full")
	err := Errorf(http.StatusInsufficientStorage, "saving item: %w", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "saving item: disk full", err.Message)
}
