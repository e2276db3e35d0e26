package info

import (
	"errors"
	"net/http"

	"gopkg.in/yaml.v3"

	"github.com/drblury/opweaver/jsonutil"
)

var errSpecUnavailable = errors.New("openapi document not configured")

// GetStatus returns a simple health payload.
func (ih *InfoHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ih.respondProbe(w, r, http.StatusOK, "HEALTHY")
}

// GetHealthz runs the liveness checks.
func (ih *InfoHandler) GetHealthz(w http.ResponseWriter, r *http.Request) {
	if err := ih.runChecks(r.Context(), ih.livenessChecks); err != nil {
		ih.HandleAPIError(w, r, http.StatusServiceUnavailable, err, "liveness probe failed")
		return
	}
	ih.respondProbe(w, r, http.StatusOK, "ok")
}

// GetReadyz runs the readiness checks.
func (ih *InfoHandler) GetReadyz(w http.ResponseWriter, r *http.Request) {
	if err := ih.runChecks(r.Context(), ih.readinessChecks); err != nil {
		ih.HandleAPIError(w, r, http.StatusServiceUnavailable, err, "readiness probe failed")
		return
	}
	ih.respondProbe(w, r, http.StatusOK, "ready")
}

// GetVersion returns the structure provided by the configured InfoProvider.
func (ih *InfoHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	payload := ih.infoProvider()
	if payload == nil {
		payload = map[string]string{}
	}
	ih.RespondWithJSON(w, r, http.StatusOK, payload)
}

// GetOpenAPIJSON writes the resolved OpenAPI document as JSON.
func (ih *InfoHandler) GetOpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	data, err := ih.specJSON()
	if err != nil {
		ih.HandleAPIError(w, r, http.StatusInternalServerError, err, "failed to render openapi document")
		return
	}
	ih.writeDocument(w, "application/json", data)
}

// GetOpenAPIYAML writes the resolved OpenAPI document as block-style YAML,
// keeping the key order of the JSON rendering.
func (ih *InfoHandler) GetOpenAPIYAML(w http.ResponseWriter, r *http.Request) {
	data, err := ih.specJSON()
	if err == nil {
		data, err = jsonToYAML(data)
	}
	if err != nil {
		ih.HandleAPIError(w, r, http.StatusInternalServerError, err, "failed to render openapi document")
		return
	}
	ih.writeDocument(w, "application/yaml", data)
}

func (ih *InfoHandler) specJSON() ([]byte, error) {
	if ih.specProvider == nil {
		return nil, errSpecUnavailable
	}
	doc := ih.specProvider()
	if doc == nil {
		return nil, errSpecUnavailable
	}
	return jsonutil.Marshal(doc)
}

func (ih *InfoHandler) writeDocument(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		ih.Logger().Error("failed to write openapi document", "error", err)
	}
}

func jsonToYAML(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	blockStyle(&node)
	return yaml.Marshal(&node)
}

func blockStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		blockStyle(child)
	}
}
