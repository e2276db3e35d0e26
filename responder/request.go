package responder

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/drblury/opweaver/jsonutil"
)

// ErrBodyRequired is returned by DecodeRequestBody for requests without a body.
var ErrBodyRequired = errors.New("request body is required")

// DecodeRequestBody parses the JSON request body into v. An empty body is
// reported as io.ErrUnexpectedEOF.
func DecodeRequestBody(req *http.Request, v any) error {
	if req == nil || req.Body == nil || req.Body == http.NoBody {
		return ErrBodyRequired
	}
	if err := jsonutil.Decode(req.Body, v); err != nil {
		if errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	return nil
}

func requestInstance(req *http.Request) string {
	if req == nil || req.URL == nil {
		return ""
	}
	return req.URL.RequestURI()
}

func requestContext(req *http.Request) context.Context {
	if req == nil {
		return context.Background()
	}
	return req.Context()
}
