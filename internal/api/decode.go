package api

import (
	"encoding/json"

	"github.com/harborview-io/harborview/internal/models"
)

// Decoded is the result of decoding a response payload at the client
// boundary: either a well-formed value or the raw bytes for the caller to
// surface. Views never probe arbitrary payload shapes themselves.
type Decoded[T any] struct {
	Value     T
	Malformed bool
	Raw       json.RawMessage
}

// Decode unmarshals a payload into T, tagging it malformed on failure.
func Decode[T any](raw json.RawMessage) Decoded[T] {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return Decoded[T]{Malformed: true, Raw: raw}
	}
	return Decoded[T]{Value: v, Raw: raw}
}

// decodeProjectList accepts the two list shapes the server is known to
// produce: a bare array, or an object wrapping it under "projects".
func decodeProjectList(raw json.RawMessage) ([]models.Project, bool) {
	if d := Decode[[]models.Project](raw); !d.Malformed {
		return d.Value, true
	}
	var wrapped struct {
		Projects []models.Project `json:"projects"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Projects != nil {
		return wrapped.Projects, true
	}
	return nil, false
}

// decodeContainerList accepts a bare array or an object wrapping it under
// "containers" or "data".
func decodeContainerList(raw json.RawMessage) ([]models.Container, bool) {
	if d := Decode[[]models.Container](raw); !d.Malformed {
		return d.Value, true
	}
	var wrapped struct {
		Containers []models.Container `json:"containers"`
		Data       []models.Container `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, false
	}
	if wrapped.Containers != nil {
		return wrapped.Containers, true
	}
	if wrapped.Data != nil {
		return wrapped.Data, true
	}
	return nil, false
}

// ExtractDeployments finds the deployment list inside a service payload.
// The usual home is a top-level "deployments" array; some service kinds nest
// it elsewhere, so any array whose elements carry a deploymentId counts.
func ExtractDeployments(raw json.RawMessage) []models.Deployment {
	var record map[string]json.RawMessage
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil
	}

	if list, ok := deploymentsFrom(record["deployments"]); ok {
		return list
	}
	for _, value := range record {
		if list, ok := deploymentsFrom(value); ok && len(list) > 0 {
			return list
		}
	}
	return nil
}

func deploymentsFrom(raw json.RawMessage) ([]models.Deployment, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var list []models.Deployment
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, false
	}
	var out []models.Deployment
	for _, d := range list {
		if d.DeploymentID != "" {
			out = append(out, d)
		}
	}
	return out, len(out) > 0 || len(list) == 0
}
