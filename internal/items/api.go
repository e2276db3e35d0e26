package items

import (
	"context"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/drblury/opweaver/compose"
	"github.com/drblury/opweaver/operation"
	"github.com/drblury/opweaver/responder"
)

// Caller identifies who issued a request. It is produced by Identify and
// stored in operation.Context.Global.
type Caller struct {
	Name      string
	Role      string
	RequestID string
}

// NewItem is the request body of createItem and replaceItem.
type NewItem struct {
	Name string   `json:"name"`
	Tags []string `json:"tags,omitempty"`
}

// Stats is the body of getStats.
type Stats struct {
	Count int `json:"count"`
	Tags  int `json:"tags"`
}

// Identify reads the caller from the X-Caller, X-Role and X-Request-Id
// headers. A missing request id is replaced by a fresh trace id.
func Identify(ctx *operation.Context) (any, error) {
	h := ctx.Request.Header
	caller := Caller{
		Name:      strings.TrimSpace(h.Get("X-Caller")),
		Role:      strings.ToLower(strings.TrimSpace(h.Get("X-Role"))),
		RequestID: h.Get("X-Request-Id"),
	}
	if caller.Name == "" {
		caller.Name = "anonymous"
	}
	if caller.RequestID == "" {
		caller.RequestID = responder.NewTraceID()
	}
	return caller, nil
}

// API exposes a Store as operation handlers.
type API struct {
	store  *Store
	create compose.Pipeline
}

// NewAPI builds the handlers around store.
func NewAPI(store *Store) *API {
	a := &API{store: store}
	a.create = compose.Sequence(
		normalize,
		compose.Provides([]string{"id"}, a.allocate),
		compose.Provides([]string{"item"}, a.persist),
	)
	return a
}

// Handlers returns the static API map for operation.WithAPI.
func (a *API) Handlers() operation.API {
	return operation.API{
		"/items": {
			"get":  a.list,
			"post": operation.Typed(a.createItem),
		},
		"/items/{id}": {
			"get":    a.get,
			"put":    operation.Typed(a.replace),
			"delete": operation.WithMiddleware(requireAdmin, a.remove),
		},
		"/stats": {
			"get": a.stats,
		},
	}
}

func (a *API) list(ctx *operation.Context) (any, error) {
	return a.store.List(ctx.Context(), ctx.Query("tag")), nil
}

func (a *API) get(ctx *operation.Context) (any, error) {
	id, err := itemID(ctx)
	if err != nil {
		return nil, err
	}
	item, ok := a.store.Get(ctx.Context(), id)
	if !ok {
		return nil, notFound(id)
	}
	return item, nil
}

func (a *API) createItem(ctx *operation.Context, in NewItem) (Item, error) {
	out, err := a.create(ctx.Context(), compose.Record{
		"input":  in,
		"caller": callerOf(ctx),
	})
	if err != nil {
		return Item{}, err
	}
	return out["item"].(Item), nil
}

func (a *API) replace(ctx *operation.Context, in NewItem) (Item, error) {
	id, err := itemID(ctx)
	if err != nil {
		return Item{}, err
	}
	current, ok := a.store.Get(ctx.Context(), id)
	if !ok {
		return Item{}, notFound(id)
	}
	in, err = clean(in)
	if err != nil {
		return Item{}, err
	}
	current.Name, current.Tags = in.Name, in.Tags
	if err := a.store.Put(ctx.Context(), current); err != nil {
		return Item{}, err
	}
	return current, nil
}

func (a *API) remove(ctx *operation.Context, _ Caller) (any, error) {
	id, err := itemID(ctx)
	if err != nil {
		return nil, err
	}
	if !a.store.Delete(ctx.Context(), id) {
		return nil, notFound(id)
	}
	return nil, nil
}

func (a *API) stats(ctx *operation.Context) (any, error) {
	counts, err := compose.Parallel(ctx.Context(), map[string]compose.Task[int]{
		"count": a.store.Count,
		"tags":  a.store.TagCount,
	})
	if err != nil {
		return nil, err
	}
	return Stats{Count: counts["count"], Tags: counts["tags"]}, nil
}

func requireAdmin(ctx *operation.Context) (Caller, error) {
	caller := callerOf(ctx)
	if caller.Role != "admin" {
		return caller, operation.NewError(http.StatusForbidden, "admin role required")
	}
	return caller, nil
}

func normalize(_ context.Context, in compose.Record) (compose.Record, error) {
	item, err := clean(in["input"].(NewItem))
	if err != nil {
		return nil, err
	}
	return compose.Record{"input": item}, nil
}

func (a *API) allocate(ctx context.Context, _ compose.Record) (compose.Record, error) {
	id, err := a.store.NextID(ctx)
	if err != nil {
		return nil, err
	}
	return compose.Record{"id": id}, nil
}

func (a *API) persist(ctx context.Context, in compose.Record) (compose.Record, error) {
	input := in["input"].(NewItem)
	caller, _ := in["caller"].(Caller)
	item := Item{
		ID:        in["id"].(int),
		Name:      input.Name,
		Tags:      input.Tags,
		CreatedBy: caller.Name,
	}
	if err := a.store.Put(ctx, item); err != nil {
		return nil, err
	}
	return compose.Record{"item": item}, nil
}

func clean(in NewItem) (NewItem, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, operation.NewError(http.StatusBadRequest, "name is required")
	}
	tags := make([]string, 0, len(in.Tags))
	for _, tag := range in.Tags {
		if tag = strings.TrimSpace(tag); tag != "" && !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		tags = nil
	}
	in.Tags = tags
	return in, nil
}

func callerOf(ctx *operation.Context) Caller {
	caller, _ := ctx.Global.(Caller)
	return caller
}

func itemID(ctx *operation.Context) (int, error) {
	raw := ctx.PathParam("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, operation.Errorf(http.StatusBadRequest, "invalid item id %q", raw)
	}
	return id, nil
}

func notFound(id int) error {
	return operation.Errorf(http.StatusNotFound, "item %d not found", id)
}
