package responder

import (
	"net/http"

	"github.com/drblury/opweaver/jsonutil"
)

// MessageBody is the minimal error payload written when an operation fails
// and no custom error handler is installed.
type MessageBody struct {
	Message string `json:"message"`
}

// RespondWithJSON serialises v and writes it with the supplied status code.
// Statuses that forbid a body (1xx, 204, 304) only get the header.
func (r *Responder) RespondWithJSON(w http.ResponseWriter, req *http.Request, status int, v any) {
	r.respondWithJSON(w, req, status, v, jsonContentType)
}

// RespondMessage writes {"message": message} with the given status.
func (r *Responder) RespondMessage(w http.ResponseWriter, req *http.Request, status int, message string) {
	r.respondWithJSON(w, req, status, MessageBody{Message: message}, jsonContentType)
}

// HandleAPIError renders an RFC 9457 problem document for the supplied
// status and logs it with a fresh trace id.
func (r *Responder) HandleAPIError(w http.ResponseWriter, req *http.Request, status int, err error, logMsg ...string) {
	if err == nil {
		return
	}

	meta := r.statusMetaFor(status)
	problem := r.buildProblemDetails(req, status, err.Error(), "", meta)
	r.logProblem(req, meta, err, problem.TraceID, status, logMsg)
	r.respondWithJSON(w, req, status, problem, problemContentType)
}

// RespondProblem writes a problem document for a failure the caller has
// already logged under traceID. An empty traceID gets a fresh one.
func (r *Responder) RespondProblem(w http.ResponseWriter, req *http.Request, status int, detail, traceID string) {
	problem := r.buildProblemDetails(req, status, detail, traceID, r.statusMetaFor(status))
	r.respondWithJSON(w, req, status, problem, problemContentType)
}

func (r *Responder) respondWithJSON(w http.ResponseWriter, _ *http.Request, status int, payload any, contentType string) {
	if w == nil {
		return
	}

	if !bodyAllowed(status) {
		w.WriteHeader(status)
		return
	}

	body, err := r.marshalPayload(payload)
	if err != nil {
		r.logger().Error("failed to encode response", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	r.writeResponse(w, status, contentType, body)
}

func (r *Responder) marshalPayload(payload any) ([]byte, error) {
	data, err := jsonutil.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return data, nil
}

func (r *Responder) writeResponse(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		r.logger().Error("failed to write response", "error", err)
	}
}

func bodyAllowed(status int) bool {
	switch {
	case status >= 100 && status < 200:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	}
	return true
}
