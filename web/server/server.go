package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Request limits shared by the render and inspect endpoints
const (
	MinDimension = 16
	MaxDimension = 2000
	MaxSamples   = 10000
	MaxDepth     = 500
)

// Server handles web requests for the path tracer
type Server struct {
	port int
	mux  *http.ServeMux
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	s := &Server{port: port, mux: http.NewServeMux()}
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	return s
}

// Handler exposes the routes for embedding and tests
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string         `json:"scene"`
	Width           int            `json:"width"`
	Height          int            `json:"height"`
	SamplesPerPixel int            `json:"samplesPerPixel"`
	MaxDepth        int            `json:"maxDepth"`
	Seed            int64          `json:"seed"`
	Format          imageio.Format `json:"format"`
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists every registered scene grouped for the UI
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListAllScenes())
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := scene.Create(sceneName)
	if err != nil {
		writeJSON(w, sceneErrorStatus(err), map[string]string{"error": err.Error()})
		return
	}

	config := sceneObj.SamplingConfig
	response := map[string]interface{}{
		"scene":          sceneName,
		"primitiveCount": sceneObj.GetPrimitiveCount(),
		"camera":         sceneObj.CameraConfig,
		"defaults": map[string]int{
			"width":           config.Width,
			"height":          config.Height,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
		},
		"limits": map[string]interface{}{
			"width":           map[string]int{"min": MinDimension, "max": MaxDimension},
			"height":          map[string]int{"min": MinDimension, "max": MaxDimension},
			"samplesPerPixel": map[string]int{"min": 1, "max": MaxSamples},
			"maxDepth":        map[string]int{"min": 0, "max": MaxDepth},
		},
		"formats": imageio.SupportedExtensions(),
	}

	writeJSON(w, http.StatusOK, response)
}

// parseSceneRequest resolves the scene and the shared size parameters.
// The returned scene's camera already matches the requested aspect ratio.
func (s *Server) parseSceneRequest(r *http.Request) (*RenderRequest, *scene.Scene, error) {
	req := &RenderRequest{Scene: r.URL.Query().Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	sceneObj, err := scene.Create(req.Scene)
	if err != nil {
		return nil, nil, err
	}

	query := r.URL.Query()
	defaults := sceneObj.SamplingConfig
	if req.Width, err = parseIntParam(query, "width", defaults.Width, MinDimension, MaxDimension); err != nil {
		return nil, nil, err
	}
	if req.Height, err = parseIntParam(query, "height", defaults.Height, MinDimension, MaxDimension); err != nil {
		return nil, nil, err
	}

	aspect := float64(req.Width) / float64(req.Height)
	sceneObj.SetCamera(geometry.MergeCameraConfig(sceneObj.CameraConfig, geometry.CameraConfig{AspectRatio: aspect}))
	return req, sceneObj, nil
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

// parseInt64Param parses an unbounded 64-bit integer parameter
func parseInt64Param(values url.Values, key string, defaultValue int64) (int64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func sceneErrorStatus(err error) int {
	if errors.Is(err, scene.ErrUnknownScene) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
