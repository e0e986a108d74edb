package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/df07/go-phong-raytracer/pkg/scene"
)

const (
	DefaultTileSize = 32
	MinImageSize    = 1
	MaxImageSize    = 2000
)

// Server handles web requests for the raytracer
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// SceneRequest holds the parameters shared by render and inspect requests
type SceneRequest struct {
	Scene  string `json:"scene"`  // Built-in name or script:<name>
	Width  int    `json:"width"`  // Image width
	Height int    `json:"height"` // Image height
}

// Handler returns the API routes plus the static file server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir("static/")))

	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and script scenes grouped for the scene picker
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// parseSceneRequest parses the scene, width and height query parameters
func parseSceneRequest(r *http.Request) (*SceneRequest, error) {
	query := r.URL.Query()
	req := &SceneRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", scene.DefaultWidth, MinImageSize, MaxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", scene.DefaultHeight, MinImageSize, MaxImageSize); err != nil {
		return nil, err
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

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img *image.RGBA) (string, error) {
	var buf bytes.Buffer
	if err := gg.NewContextForRGBA(img).EncodePNG(&buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
