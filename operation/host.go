package operation

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/mux"
)

// Host is the router operations are registered on. pattern uses colon
// placeholders such as /items/:id. Handle reports patterns the router
// cannot express instead of registering a route that never matches.
type Host interface {
	Handle(method, pattern string, handler http.Handler) error
}

// HostFunc adapts a function to Host.
type HostFunc func(method, pattern string, handler http.Handler) error

// Handle implements Host.
func (f HostFunc) Handle(method, pattern string, handler http.Handler) error {
	return f(method, pattern, handler)
}

type serveMuxHost struct {
	mux *http.ServeMux
}

// ServeMuxHost registers routes on a net/http ServeMux using method-aware
// patterns such as "GET /items/{id}". Placeholders must fill a whole path
// segment.
func ServeMuxHost(m *http.ServeMux) Host {
	return serveMuxHost{mux: m}
}

func (h serveMuxHost) Handle(method, pattern string, handler http.Handler) (err error) {
	segments, err := parsePattern(pattern)
	if err != nil {
		return err
	}
	if err := wholeSegments(segments, pattern); err != nil {
		return err
	}
	names := placeholderNames(segments)
	for _, name := range names {
		if name[0] >= '0' && name[0] <= '9' {
			return fmt.Errorf("%w: placeholder %q in %q must not start with a digit", ErrUnsupportedPattern, name, pattern)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrUnsupportedPattern, r)
		}
	}()
	h.mux.Handle(method+" "+bracePattern(segments), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := make(map[string]string, len(names))
		for _, name := range names {
			params[name] = r.PathValue(name)
		}
		handler.ServeHTTP(w, WithPathParams(r, params))
	}))
	return nil
}

type muxHost struct {
	router *mux.Router
}

// MuxHost registers routes on a gorilla/mux router. Placeholders may share
// a segment with literals or other placeholders, as in /range/{from}-{to}.
func MuxHost(router *mux.Router) Host {
	return muxHost{router: router}
}

func (h muxHost) Handle(method, pattern string, handler http.Handler) error {
	segments, err := parsePattern(pattern)
	if err != nil {
		return err
	}
	route := h.router.Handle(bracePattern(segments), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, WithPathParams(r, mux.Vars(r)))
	})).Methods(method)
	if err := route.GetError(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedPattern, err)
	}
	return nil
}

type ginHost struct {
	engine gin.IRoutes
}

// GinHost registers routes on a gin engine or router group, which already
// understand colon placeholders filling a whole segment.
func GinHost(routes gin.IRoutes) Host {
	return ginHost{engine: routes}
}

func (h ginHost) Handle(method, pattern string, handler http.Handler) (err error) {
	segments, err := parsePattern(pattern)
	if err != nil {
		return err
	}
	if err := wholeSegments(segments, pattern); err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrUnsupportedPattern, r)
		}
	}()
	h.engine.Handle(method, pattern, func(c *gin.Context) {
		params := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}
		handler.ServeHTTP(c.Writer, WithPathParams(c.Request, params))
	})
	return nil
}

// part is a literal run or a placeholder within one path segment.
type part struct {
	literal     string
	placeholder string
}

// parsePattern splits a colon pattern into segments of parts. A
// placeholder name runs from ":" up to the first character that is not a
// letter, digit or underscore.
func parsePattern(pattern string) ([][]part, error) {
	raw := strings.Split(pattern, "/")
	segments := make([][]part, len(raw))
	for i, segment := range raw {
		var parts []part
		for segment != "" {
			idx := strings.IndexByte(segment, ':')
			if idx < 0 {
				parts = append(parts, part{literal: segment})
				break
			}
			if idx > 0 {
				parts = append(parts, part{literal: segment[:idx]})
			}
			end := 1
			for end < len(segment) && isIdentByte(segment[end]) {
				end++
			}
			if end == 1 {
				return nil, fmt.Errorf("%w: empty placeholder in %q", ErrMalformedPath, pattern)
			}
			parts = append(parts, part{placeholder: segment[1:end]})
			segment = segment[end:]
		}
		segments[i] = parts
	}
	return segments, nil
}

func isIdentByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// wholeSegments rejects placeholders sharing a segment with anything else.
func wholeSegments(segments [][]part, pattern string) error {
	for _, parts := range segments {
		if len(parts) > 1 {
			for _, p := range parts {
				if p.placeholder != "" {
					return fmt.Errorf("%w: placeholder %q in %q must fill a whole segment", ErrUnsupportedPattern, p.placeholder, pattern)
				}
			}
		}
	}
	return nil
}

func placeholderNames(segments [][]part) []string {
	var names []string
	for _, parts := range segments {
		for _, p := range parts {
			if p.placeholder != "" {
				names = append(names, p.placeholder)
			}
		}
	}
	return names
}

// bracePattern renders parsed segments with {name} placeholders.
func bracePattern(segments [][]part) string {
	var b strings.Builder
	for i, parts := range segments {
		if i > 0 {
			b.WriteByte('/')
		}
		for _, p := range parts {
			if p.placeholder != "" {
				b.WriteString("{" + p.placeholder + "}")
			} else {
				b.WriteString(p.literal)
			}
		}
	}
	return b.String()
}
