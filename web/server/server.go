package server

import (
	"encoding/json"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/BlockOG/ray-tracing/pkg/renderer"
	"github.com/BlockOG/ray-tracing/pkg/scene"
)

// Server renders built-in scenes on request and returns them as PNG
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string `json:"scene"`      // Scene name (e.g., "cornell")
	Width      int    `json:"width"`      // Image width
	Height     int    `json:"height"`     // Image height
	Samples    int    `json:"samples"`    // Rays per pixel
	MaxBounces int    `json:"maxBounces"` // Bounces after the primary hit
	Seed       int64  `json:"seed"`       // Base random seed
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	return mux
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the scenes that can be rendered without a PLY upload
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	defaults := renderer.DefaultSamplingConfig()
	json.NewEncoder(w).Encode(map[string]interface{}{
		"scenes": renderableScenes(),
		"defaults": map[string]int{
			"samples":    defaults.RaysPerPixel,
			"maxBounces": defaults.MaxBounceCount,
		},
	})
}

// handleRender renders one image and writes it as PNG.
// The render stops between tiles when the client disconnects.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	if scene.NeedsPLY(req.Scene) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("scene %q needs a PLY file and cannot be rendered here", req.Scene))
		return
	}
	sceneObj, err := scene.NewByName(req.Scene, "")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sceneObj.Preprocess(true)

	config := renderer.RenderConfig{
		Width:      req.Width,
		Height:     req.Height,
		TileSize:   32,
		NumWorkers: 0, // Auto-detect
		Seed:       req.Seed,
		Sampling: renderer.SamplingConfig{
			RaysPerPixel:   req.Samples,
			MaxBounceCount: req.MaxBounces,
		},
	}
	raytracer := renderer.NewRaytracer(sceneObj, config, renderer.NewDefaultLogger())

	startTime := time.Now()
	img, stats, err := raytracer.Render(r.Context())
	if err != nil {
		log.Printf("Render of %s aborted: %v", req.Scene, err)
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(time.Since(startTime).Milliseconds(), 10))
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	if err := png.Encode(w, img.ToRGBA()); err != nil {
		log.Printf("Failed to encode PNG: %v", err)
	}
}

// parseRenderRequest parses and validates render parameters from URL query
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	defaults := renderer.DefaultRenderConfig()

	req := &RenderRequest{
		Scene: query.Get("scene"),
	}
	if req.Scene == "" {
		req.Scene = "cornell"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 400, 1, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 50, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxBounces, err = parseIntParam(query, "maxBounces", defaults.Sampling.MaxBounceCount, 0, 1000); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(query, "seed", int(defaults.Seed), 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// renderableScenes returns the built-in scenes that need no input file
func renderableScenes() []string {
	var names []string
	for _, name := range scene.Names() {
		if !scene.NeedsPLY(name) {
			names = append(names, name)
		}
	}
	return names
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// writeError sends a JSON error body
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
