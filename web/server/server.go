package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/golang/glog"
	"golang.org/x/sync/semaphore"

	"github.com/df07/go-montecarlo-raytracer/pkg/imagesink"
	"github.com/df07/go-montecarlo-raytracer/pkg/integrator"
	"github.com/df07/go-montecarlo-raytracer/pkg/renderer"
	"github.com/df07/go-montecarlo-raytracer/pkg/scene"
)

// Request limits
const (
	minWidth, maxWidth = 16, 2000
	minSPP, maxSPP     = 1, 10000
	minDepth, maxDepth = 1, 200
)

// Server handles web requests for the raytracer
type Server struct {
	port int
	// renders bounds concurrent renders; each one already uses every CPU
	renders *semaphore.Weighted
	// scenesDirs are searched for YAML scenes; requests may only name listed IDs
	scenesDirs []string
}

// NewServer creates a new web server allowing maxRenders renders at once
func NewServer(port int, maxRenders int64) *Server {
	if maxRenders <= 0 {
		maxRenders = 1
	}
	return &Server{
		port:       port,
		renders:    semaphore.NewWeighted(maxRenders),
		scenesDirs: scene.DefaultScenesDirs,
	}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string // Built-in or discovered scene ID
	Width           int    // Image width; height follows the scene's aspect ratio
	SamplesPerPixel int
	MaxDepth        int
	Seed            int64           // 0 means entropy-seeded
	Integrator      integrator.Type // Empty means the scene's preference
	Format          imagesink.Format
}

// Handler returns the API routes plus static files from static/
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir("static/")))
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	glog.Infof("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and discovered YAML scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDirs...)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the default settings for a scene along with the request limits
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, status, err := s.resolveScene(sceneName)
	if err != nil {
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	config := sceneObj.SamplingConfig
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"aspectRatio":     config.AspectRatio,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
			"integrator":      sceneObj.Integrator,
		},
		"limits": map[string]interface{}{
			"width":           map[string]int{"min": minWidth, "max": maxWidth},
			"samplesPerPixel": map[string]int{"min": minSPP, "max": maxSPP},
			"maxDepth":        map[string]int{"min": minDepth, "max": maxDepth},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// handleRender renders a scene in one pass and returns the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	sceneObj, status, err := s.resolveScene(req.Scene)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}

	integratorType := req.Integrator
	if integratorType == "" {
		integratorType = sceneObj.Integrator
	}
	integ, err := integrator.New(integratorType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	settings := renderer.Settings{
		ImageWidth:      req.Width,
		AspectRatio:     sceneObj.SamplingConfig.AspectRatio,
		SamplesPerPixel: req.SamplesPerPixel,
		MaxDepth:        req.MaxDepth,
		Seed:            req.Seed,
	}
	raytracer, err := renderer.New(sceneObj, integ, settings)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if err := s.renders.Acquire(ctx, 1); err != nil {
		// Client went away while queued
		return
	}
	defer s.renders.Release(1)

	startTime := time.Now()
	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		http.Error(w, fmt.Sprintf("Render error: %v", err), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := imagesink.Encode(&buf, img, req.Format); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	glog.Infof("web render of %s: %v", req.Scene, stats)

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(time.Since(startTime).Milliseconds(), 10))
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// resolveScene maps a requested scene ID to a scene. Only built-in IDs and
// IDs of discovered scene files are accepted, never filesystem paths. Load
// failures are logged and reported without file details.
func (s *Server) resolveScene(id string) (*scene.Scene, int, error) {
	sceneObj, err := scene.LookupID(id, s.scenesDirs)
	switch {
	case err == nil:
		return sceneObj, http.StatusOK, nil
	case errors.Is(err, scene.ErrUnknownScene):
		return nil, http.StatusBadRequest, fmt.Errorf("unknown scene %q", id)
	default:
		glog.Errorf("Error loading scene %q: %v", id, err)
		return nil, http.StatusInternalServerError, fmt.Errorf("failed to load scene %q", id)
	}
}

// parseRenderRequest parses and validates request parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{
		Scene:      values.Get("scene"),
		Integrator: integrator.Type(values.Get("integrator")),
		Format:     imagesink.FormatPNG,
	}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if format := values.Get("format"); format != "" {
		if req.Format, err = imagesink.FormatFromPath("render." + format); err != nil {
			return nil, err
		}
	}
	if req.Width, err = parseIntParam(values, "width", 400, minWidth, maxWidth); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(values, "spp", 10, minSPP, maxSPP); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", 10, minDepth, maxDepth); err != nil {
		return nil, err
	}
	if seed := values.Get("seed"); seed != "" {
		if req.Seed, err = strconv.ParseInt(seed, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", seed)
		}
	}

	// Performance warning
	if req.Width > 800 && req.SamplesPerPixel > 100 {
		glog.Warningf("Render warning: large image with high samples may render slowly")
	}

	return req, nil
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

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		glog.Errorf("Error writing response: %v", err)
	}
}
