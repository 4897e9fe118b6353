package api

import (
	"encoding/json"
	"net/http"

	"github.com/kwyip/qroute/pkg/cache"
	"github.com/kwyip/qroute/pkg/errors"
	"github.com/kwyip/qroute/pkg/pipeline"
	"github.com/kwyip/qroute/pkg/route"
)

// routeResponse is the wire form of a synchronous routing result.
type routeResponse struct {
	Result       *route.Result     `json:"result"`
	CircuitHash  string            `json:"circuit_hash"`
	TopologyHash string            `json:"topology_hash"`
	Cached       bool              `json:"cached"`
	Artifacts    map[string]string `json:"artifacts,omitempty"`
}

// handleRoute routes a circuit synchronously. The request body is
// pipeline.Options JSON with the circuit inline; topology specs resolve to
// presets or registered custom topologies, never to server-side files.
func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	opts, ok := decodeRouteOptions(w, r)
	if !ok {
		return
	}

	c, err := pipeline.LoadCircuit(opts)
	if err != nil {
		respondError(w, err)
		return
	}
	topo, g, err := s.resolveTopology(r.Context(), opts.Topology)
	if err != nil {
		respondError(w, err)
		return
	}

	res, hit, err := s.runner.RouteWithCacheInfo(r.Context(), c, topo, g, s.pipelineOptions(opts))
	if err != nil {
		respondError(w, err)
		return
	}

	artifacts, err := pipeline.Emit(res, opts)
	if err != nil {
		respondError(w, err)
		return
	}

	circuitHash, _ := cache.HashJSON(c)
	topologyHash, _ := cache.HashJSON(topo)

	resp := routeResponse{
		Result:       res,
		CircuitHash:  circuitHash,
		TopologyHash: topologyHash,
		Cached:       hit,
		Artifacts:    make(map[string]string, len(artifacts)),
	}
	for format, data := range artifacts {
		resp.Artifacts[format] = string(data)
	}
	respondJSON(w, http.StatusOK, resp)
}

// decodeRouteOptions decodes and sanity-checks routing options from the
// request body. It writes the error response itself when decoding fails.
func decodeRouteOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	var opts pipeline.Options
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&opts); err != nil {
		respondError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return pipeline.Options{}, false
	}
	if opts.CircuitPath != "" {
		respondError(w, errors.New(errors.ErrCodeInvalidInput,
			"circuit_path is not accepted over HTTP, send the circuit inline"))
		return pipeline.Options{}, false
	}
	if err := opts.ValidateForLoad(); err != nil {
		respondError(w, err)
		return pipeline.Options{}, false
	}
	if err := opts.ValidateForEmit(); err != nil {
		respondError(w, err)
		return pipeline.Options{}, false
	}
	return opts, true
}
