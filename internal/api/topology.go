package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kwyip/qroute/pkg/cache"
	"github.com/kwyip/qroute/pkg/coupling"
	"github.com/kwyip/qroute/pkg/errors"
	"github.com/kwyip/qroute/pkg/observability"
)

// topologyResponse describes a resolved topology plus its graph metrics.
type topologyResponse struct {
	coupling.Topology
	EdgeCount int  `json:"edge_count"`
	Diameter  int  `json:"diameter"`
	Connected bool `json:"connected"`
}

// handleListTopologies lists the built-in preset families.
func (s *Server) handleListTopologies(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"presets": coupling.PresetFamilies(),
	})
}

// handleRegisterTopology stores a custom topology under its name. The name
// must not contain a colon; that form is reserved for presets. Registered
// topologies live in the cache backend, so persistence follows the backend
// (file and Redis survive restarts, the null cache does not).
func (s *Server) handleRegisterTopology(w http.ResponseWriter, r *http.Request) {
	var topo coupling.Topology
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&topo); err != nil {
		respondError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if topo.Name == "" {
		respondError(w, errors.New(errors.ErrCodeInvalidInput, "topology name is required"))
		return
	}
	if strings.Contains(topo.Name, ":") {
		respondError(w, errors.New(errors.ErrCodeInvalidInput,
			"topology name must not contain ':', that form is reserved for presets"))
		return
	}

	g, err := topo.Graph()
	if err != nil {
		respondError(w, errors.Wrap(errors.ErrCodeInvalidTopology, err, "invalid topology"))
		return
	}

	data, err := json.Marshal(topo)
	if err != nil {
		respondError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode topology"))
		return
	}
	key := s.runner.Keyer.TopologyKey(topo.Name)
	err = cache.RetryWithBackoff(r.Context(), func() error {
		return s.runner.Cache.Set(r.Context(), key, data, cache.TTLTopology)
	})
	if err != nil {
		respondError(w, errors.Wrap(errors.ErrCodeCacheFailure, err, "store topology"))
		return
	}
	observability.Cache().OnCacheSet(r.Context(), "topology", len(data))

	s.logger.Info("topology registered", "name", topo.Name, "qubits", topo.Qubits)
	respondJSON(w, http.StatusCreated, describeTopology(topo, g))
}

// handleGetTopology describes a preset or registered topology.
func (s *Server) handleGetTopology(w http.ResponseWriter, r *http.Request) {
	topo, g, err := s.resolveTopology(r.Context(), chi.URLParam(r, "spec"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, describeTopology(topo, g))
}

// handleRenderTopology renders a topology as SVG. Rendering shells out to
// Graphviz layout, so results are cached by topology content.
func (s *Server) handleRenderTopology(w http.ResponseWriter, r *http.Request) {
	topo, _, err := s.resolveTopology(r.Context(), chi.URLParam(r, "spec"))
	if err != nil {
		respondError(w, err)
		return
	}

	hash, err := cache.HashJSON(topo)
	if err != nil {
		respondError(w, errors.Wrap(errors.ErrCodeInternal, err, "hash topology"))
		return
	}
	key := s.runner.Keyer.RenderKey(hash, cache.RenderKeyOpts{Format: "svg"})

	if data, hit, err := s.runner.Cache.Get(r.Context(), key); err == nil && hit {
		observability.Cache().OnCacheHit(r.Context(), "render")
		writeSVG(w, data)
		return
	}
	observability.Cache().OnCacheMiss(r.Context(), "render")

	data, err := topo.RenderSVG(r.Context())
	if err != nil {
		respondError(w, errors.Wrap(errors.ErrCodeInternal, err, "render topology"))
		return
	}

	if err := s.runner.Cache.Set(r.Context(), key, data, cache.TTLRender); err == nil {
		observability.Cache().OnCacheSet(r.Context(), "render", len(data))
	}
	writeSVG(w, data)
}

func writeSVG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// resolveTopology turns a spec into a topology and its graph. Preset forms
// contain a colon; bare names look up registered custom topologies. File
// paths are never read here.
func (s *Server) resolveTopology(ctx context.Context, spec string) (coupling.Topology, *coupling.Graph, error) {
	if spec == "" {
		return coupling.Topology{}, nil, errors.New(errors.ErrCodeInvalidInput, "topology is required")
	}

	var topo coupling.Topology
	if strings.Contains(spec, ":") {
		t, err := coupling.FromSpec(spec)
		if err != nil {
			return coupling.Topology{}, nil, errors.Wrap(errors.ErrCodeInvalidTopology, err, "resolve topology %q", spec)
		}
		topo = t
	} else {
		t, err := s.lookupCustomTopology(ctx, spec)
		if err != nil {
			return coupling.Topology{}, nil, err
		}
		topo = t
	}

	g, err := topo.Graph()
	if err != nil {
		return coupling.Topology{}, nil, errors.Wrap(errors.ErrCodeInvalidTopology, err, "topology %q", spec)
	}
	return topo, g, nil
}

// lookupCustomTopology fetches a registered topology by name.
func (s *Server) lookupCustomTopology(ctx context.Context, name string) (coupling.Topology, error) {
	key := s.runner.Keyer.TopologyKey(name)
	data, hit, err := s.runner.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "topology")
		return coupling.Topology{}, errors.New(errors.ErrCodeTopologyNotFound, "unknown topology %q", name)
	}
	observability.Cache().OnCacheHit(ctx, "topology")

	var t coupling.Topology
	if err := json.Unmarshal(data, &t); err != nil {
		return coupling.Topology{}, errors.Wrap(errors.ErrCodeCacheFailure, err, "decode stored topology %q", name)
	}
	return t, nil
}

// describeTopology builds the wire form of a topology.
func describeTopology(topo coupling.Topology, g *coupling.Graph) topologyResponse {
	return topologyResponse{
		Topology:  topo,
		EdgeCount: g.EdgeCount(),
		Diameter:  g.Diameter(),
		Connected: g.Connected(),
	}
}
