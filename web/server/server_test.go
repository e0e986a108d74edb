package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/scene"
)

func get(t *testing.T, url string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	NewServer(0).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

// sseEvents splits a recorded SSE stream into (type, data) pairs
func sseEvents(body string) [][2]string {
	var events [][2]string
	for _, block := range strings.Split(body, "\n\n") {
		var eventType string
		var data []string
		for _, line := range strings.Split(block, "\n") {
			switch {
			case strings.HasPrefix(line, "event: "):
				eventType = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				data = append(data, strings.TrimPrefix(line, "data: "))
			}
		}
		if eventType != "" {
			events = append(events, [2]string{eventType, strings.Join(data, "\n")})
		}
	}
	return events
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestHandleScenes(t *testing.T) {
	rec := get(t, "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var response scene.ScenesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatal(err)
	}
	if len(response.Groups) == 0 || len(response.Groups[0].Scenes) != len(scene.BuiltinNames()) {
		t.Errorf("Expected the built-in scene group first, got %+v", response.Groups)
	}
}

func TestHandleRender(t *testing.T) {
	rec := get(t, "/api/render?scene=silhouette&width=20&height=10&tile=8&workers=2")
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected text/event-stream, got %q", ct)
	}

	events := sseEvents(rec.Body.String())
	counts := make(map[string]int)
	for _, e := range events {
		counts[e[0]]++
	}
	// 20x10 with 8px tiles is a 3x2 grid
	if counts["tile"] != 6 {
		t.Errorf("Expected 6 tile events, got %d", counts["tile"])
	}
	if counts["error"] != 0 {
		t.Errorf("Expected no errors, got %v", events)
	}
	if counts["console"] == 0 {
		t.Error("Expected console events from the render log")
	}

	last := events[len(events)-1]
	if last[0] != "complete" {
		t.Fatalf("Expected complete as the last event, got %q", last[0])
	}
	var complete CompleteUpdate
	if err := json.Unmarshal([]byte(last[1]), &complete); err != nil {
		t.Fatal(err)
	}
	if complete.Scene != "silhouette" || complete.Width != 20 || complete.Height != 10 || complete.TotalTiles != 6 {
		t.Errorf("Unexpected completion %+v", complete)
	}

	raw, err := base64.StdEncoding.DecodeString(complete.ImageData)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Expected a PNG image: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("Expected a 20x10 image, got %v", b)
	}
}

func TestHandleRender_TileEvent(t *testing.T) {
	rec := get(t, "/api/render?scene=default&width=8&height=8&tile=8")

	for _, e := range sseEvents(rec.Body.String()) {
		if e[0] != "tile" {
			continue
		}
		var tile TileUpdate
		if err := json.Unmarshal([]byte(e[1]), &tile); err != nil {
			t.Fatal(err)
		}
		if tile.TileNumber != 1 || tile.TotalTiles != 1 || tile.X != 0 || tile.Y != 0 {
			t.Errorf("Unexpected tile %+v", tile)
		}
		if tile.ImageData == "" {
			t.Error("Expected tile image data")
		}
		return
	}
	t.Fatal("Expected a tile event")
}

func TestHandleRender_Errors(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"bad width", "/api/render?width=abc"},
		{"width too large", "/api/render?width=5000"},
		{"bad tile", "/api/render?tile=1"},
		{"unknown scene", "/api/render?scene=nowhere&width=8&height=8"},
		{"missing script", "/api/render?scene=script:nowhere&width=8&height=8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := sseEvents(get(t, tt.url).Body.String())
			if len(events) == 0 || events[len(events)-1][0] != "error" {
				t.Errorf("Expected a trailing error event, got %v", events)
			}
			for _, e := range events {
				if e[0] == "complete" {
					t.Error("Expected no complete event")
				}
			}
		})
	}
}

func TestHandleInspect_Hit(t *testing.T) {
	rec := get(t, "/api/inspect?scene=silhouette&width=11&height=11&x=5&y=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var response InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatal(err)
	}

	if !response.Hit || response.GeometryType != "sphere" {
		t.Fatalf("Expected a sphere hit, got %+v", response)
	}
	if math.Abs(response.Distance-4) > 1e-4 {
		t.Errorf("Expected distance 4, got %v", response.Distance)
	}
	expectedPoint := [3]float64{0, 0, -1}
	for i := range expectedPoint {
		if math.Abs(response.Point[i]-expectedPoint[i]) > 1e-4 {
			t.Errorf("Expected point %v, got %v", expectedPoint, response.Point)
			break
		}
	}
	if math.Abs(response.Normal[2]+1) > 1e-4 || response.Inside {
		t.Errorf("Expected outward normal (0, 0, -1), got %v inside=%v", response.Normal, response.Inside)
	}
	if response.Material["hex"] != "#ff33ff" {
		t.Errorf("Expected purple material, got %v", response.Material["hex"])
	}
	if len(response.Lights) != 1 || response.Lights[0].Type != "point" || response.Lights[0].Shadowed {
		t.Errorf("Expected one unshadowed point light, got %+v", response.Lights)
	}
	if r, ok := response.Geometry["radius"].(float64); !ok || math.Abs(r-1) > 1e-9 {
		t.Errorf("Expected unit radius, got %v", response.Geometry["radius"])
	}
}

func TestHandleInspect_Miss(t *testing.T) {
	rec := get(t, "/api/inspect?scene=silhouette&width=11&height=11&x=0&y=0")
	var response InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatal(err)
	}
	if response.Hit {
		t.Errorf("Expected a miss in the corner, got %+v", response)
	}
}

func TestHandleInspect_Pattern(t *testing.T) {
	rec := get(t, "/api/inspect?scene=pattern&width=20&height=20&x=10&y=19")
	var response InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatal(err)
	}
	if !response.Hit {
		t.Fatal("Expected the floor to be hit")
	}
	if _, ok := response.Material["pattern"]; !ok {
		t.Errorf("Expected pattern details, got %v", response.Material)
	}
}

func TestHandleInspect_BadParams(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"x out of range", "/api/inspect?width=10&height=10&x=10&y=0"},
		{"negative y", "/api/inspect?width=10&height=10&x=0&y=-1"},
		{"bad height", "/api/inspect?height=zero"},
		{"unknown scene", "/api/inspect?scene=nowhere"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := get(t, tt.url); rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestImageToBase64PNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(1, 1, color.RGBA{255, 0, 0, 255})

	encoded, err := imageToBase64PNG(img)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := decoded.At(1, 1).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("Expected red pixel, got %v %v %v", r, g, b)
	}
}
