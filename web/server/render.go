package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	SceneRequest
	Workers  int `json:"workers"`  // 0 = use CPU count
	TileSize int `json:"tileSize"` // Tile edge in pixels
}

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX      int    `json:"tileX"`
	TileY      int    `json:"tileY"`
	X          int    `json:"x"` // Pixel offset of the tile
	Y          int    `json:"y"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Tiles completed so far (1-based)
	TotalTiles int    `json:"totalTiles"`
}

// CompleteUpdate is the final event of a successful render
type CompleteUpdate struct {
	RenderID         string  `json:"renderId"`
	Scene            string  `json:"scene"`
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	TotalTiles       int     `json:"totalTiles"`
	NumWorkers       int     `json:"numWorkers"`
	ElapsedMs        int64   `json:"elapsedMs"`
	AverageLuminance float64 `json:"averageLuminance"`
	ImageData        string  `json:"imageData"` // Base64 encoded PNG of the whole image
}

// SSEEvent is one server-sent event
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "error", "complete"
	Data string `json:"data"` // JSON-encoded data or a plain message
}

// handleRender renders a scene and streams tiles, console output and a
// completion event via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	setSSEHeaders(w)
	ctx := r.Context()

	req, err := parseRenderRequest(r)
	if err != nil {
		writeSSEEvent(w, SSEEvent{Type: "error", Data: fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	renderID := uuid.New().String()
	consoleChan := make(chan ConsoleMessage, 50)
	webLogger := NewWebLogger(renderID, consoleChan)

	sceneObj, err := scene.Load(req.Scene, req.Width, req.Height, webLogger)
	if err != nil {
		drainConsole(w, consoleChan)
		writeSSEEvent(w, SSEEvent{Type: "error", Data: err.Error()})
		return
	}

	config := renderer.RenderConfig{TileSize: req.TileSize, NumWorkers: req.Workers}
	raytracer := renderer.NewRaytracer(sceneObj.World, sceneObj.Camera, config, webLogger)

	startTime := time.Now()
	resultChan, tileChan, errChan := raytracer.RenderProgressive(ctx, renderer.RenderOptions{TileUpdates: true})

	result, ok := streamRenderEvents(ctx, w, consoleChan, resultChan, tileChan, errChan)
	drainConsole(w, consoleChan)
	if !ok {
		return
	}

	rgba := result.Canvas.ToRGBA()
	imageData, err := imageToBase64PNG(rgba)
	if err != nil {
		writeSSEEvent(w, SSEEvent{Type: "error", Data: fmt.Sprintf("Encoding image: %v", err)})
		return
	}
	writeSSEJSON(w, "complete", CompleteUpdate{
		RenderID:         renderID,
		Scene:            sceneObj.Name,
		Width:            req.Width,
		Height:           req.Height,
		TotalTiles:       result.Stats.TotalTiles,
		NumWorkers:       result.Stats.NumWorkers,
		ElapsedMs:        time.Since(startTime).Milliseconds(),
		AverageLuminance: renderer.CalculateAverageLuminance(rgba),
		ImageData:        imageData,
	})
}

// streamRenderEvents forwards tiles and console output until the render
// finishes. It reports false if the render failed or the client went away.
func streamRenderEvents(ctx context.Context, w http.ResponseWriter, consoleChan <-chan ConsoleMessage,
	resultChan <-chan renderer.RenderResult, tileChan <-chan renderer.TileCompletionResult, errChan <-chan error) (renderer.RenderResult, bool) {

	var result *renderer.RenderResult
	for resultChan != nil || tileChan != nil || errChan != nil {
		select {
		case msg := <-consoleChan:
			writeSSEJSON(w, "console", msg)

		case tile, ok := <-tileChan:
			if !ok {
				tileChan = nil
				continue
			}
			handleTileUpdate(w, tile)

		case res, ok := <-resultChan:
			if !ok {
				resultChan = nil
				continue
			}
			result = &res

		case err, ok := <-errChan:
			if !ok {
				errChan = nil
				continue
			}
			writeSSEEvent(w, SSEEvent{Type: "error", Data: fmt.Sprintf("Rendering failed: %v", err)})
			return renderer.RenderResult{}, false

		case <-ctx.Done():
			return renderer.RenderResult{}, false
		}
	}

	if result == nil {
		writeSSEEvent(w, SSEEvent{Type: "error", Data: "Rendering produced no image"})
		return renderer.RenderResult{}, false
	}
	return *result, true
}

// handleTileUpdate encodes a finished tile and sends it
func handleTileUpdate(w http.ResponseWriter, tile renderer.TileCompletionResult) {
	tileData, err := imageToBase64PNG(tile.TileImage)
	if err != nil {
		log.Printf("Error encoding tile image (%d, %d): %v", tile.TileX, tile.TileY, err)
		return
	}
	writeSSEJSON(w, "tile", TileUpdate{
		TileX:      tile.TileX,
		TileY:      tile.TileY,
		X:          tile.Bounds.Min.X,
		Y:          tile.Bounds.Min.Y,
		ImageData:  tileData,
		TileNumber: tile.TileNumber,
		TotalTiles: tile.TotalTiles,
	})
}

// drainConsole flushes any buffered console messages without blocking
func drainConsole(w http.ResponseWriter, consoleChan <-chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			writeSSEJSON(w, "console", msg)
		default:
			return
		}
	}
}

// parseRenderRequest parses request parameters
func parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	sceneReq, err := parseSceneRequest(r)
	if err != nil {
		return nil, err
	}
	req := &RenderRequest{SceneRequest: *sceneReq}

	query := r.URL.Query()
	if req.Workers, err = parseIntParam(query, "workers", 0, 0, 64); err != nil {
		return nil, err
	}
	if req.TileSize, err = parseIntParam(query, "tile", DefaultTileSize, 8, 256); err != nil {
		return nil, err
	}
	return req, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

func writeSSEJSON(w http.ResponseWriter, eventType string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", eventType, err)
		return
	}
	writeSSEEvent(w, SSEEvent{Type: eventType, Data: string(data)})
}

// writeSSEEvent writes and flushes one event. Only the handler goroutine
// writes to w.
func writeSSEEvent(w http.ResponseWriter, event SSEEvent) {
	data := strings.ReplaceAll(event.Data, "\n", "\ndata: ")
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data); err != nil {
		return
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}
