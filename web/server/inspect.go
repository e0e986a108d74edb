package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Inside       bool                   `json:"inside"`
	Colour       [3]float64             `json:"colour"` // Shaded colour at the hit
	Geometry     map[string]interface{} `json:"geometry,omitempty"`
	Material     map[string]interface{} `json:"material,omitempty"`
	Lights       []LightInfo            `json:"lights,omitempty"`
}

// LightInfo reports whether a light reaches the inspected point
type LightInfo struct {
	Type     string     `json:"type"`
	Position [3]float64 `json:"position"`
	Shadowed bool       `json:"shadowed"`
}

// handleInspect casts the camera ray through one pixel and reports what it hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := parseSceneRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	query := r.URL.Query()
	x, err := parseIntParam(query, "x", 0, 0, req.Width-1)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	y, err := parseIntParam(query, "y", 0, 0, req.Height-1)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sceneObj, err := scene.Load(req.Scene, req.Width, req.Height, nil)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, x, y))
}

// inspectPixel casts a ray through the centre of pixel (x, y) and describes
// the visible hit
func inspectPixel(sceneObj *scene.Scene, x, y int) InspectResponse {
	ray := sceneObj.Camera.RayForPixel(x, y)
	hit, ok := geometry.VisibleHit(sceneObj.World.IntersectWithRay(ray))
	if !ok {
		return InspectResponse{Hit: false}
	}

	comps := geometry.PrepareComputation(hit, ray)
	var lightInfo []LightInfo
	for _, light := range sceneObj.World.Lights() {
		lightInfo = append(lightInfo, LightInfo{
			Type:     string(light.Type()),
			Position: tupleArray(light.Position),
			Shadowed: sceneObj.World.IsShadowed(comps.BiasedPoint, light),
		})
	}

	return InspectResponse{
		Hit:          true,
		GeometryType: string(comps.Shape.Kind()),
		Point:        tupleArray(comps.Point),
		Normal:       tupleArray(comps.Normal),
		Distance:     comps.T,
		Inside:       comps.Inside,
		Colour:       colourArray(sceneObj.World.ShadeHit(comps)),
		Geometry:     extractGeometryInfo(comps.Shape),
		Material:     extractMaterialInfo(comps.Shape.Material()),
		Lights:       lightInfo,
	}
}

// extractGeometryInfo reports where the shape sits in the world
func extractGeometryInfo(shape geometry.Shape) map[string]interface{} {
	properties := map[string]interface{}{
		"origin": tupleArray(shape.Transform().Apply(core.Point(0, 0, 0))),
	}
	switch shape.Kind() {
	case geometry.KindPlane:
		properties["normal"] = tupleArray(shape.WorldNormalAt(core.Point(0, 0, 0)))
	case geometry.KindSphere:
		// Radius along local x; exact for uniformly scaled spheres
		edge := shape.Transform().Apply(core.Point(1, 0, 0))
		properties["radius"] = edge.Sub(shape.Transform().Apply(core.Point(0, 0, 0))).Magnitude()
	}
	return properties
}

// extractMaterialInfo reports the Phong parameters and any pattern
func extractMaterialInfo(m material.Material) map[string]interface{} {
	properties := map[string]interface{}{
		"colour":    colourArray(m.Colour),
		"hex":       hexColour(m.Colour),
		"ambient":   m.Ambient,
		"diffuse":   m.Diffuse,
		"specular":  m.Specular,
		"shininess": m.Shininess,
	}
	if m.Pattern != nil {
		properties["pattern"] = map[string]interface{}{
			"kind": string(m.Pattern.Kind()),
			"a":    colourArray(m.Pattern.ColourA()),
			"b":    colourArray(m.Pattern.ColourB()),
		}
	}
	return properties
}

func tupleArray(t core.Tuple) [3]float64 {
	return [3]float64{t.X(), t.Y(), t.Z()}
}

func colourArray(c core.Colour) [3]float64 {
	return [3]float64{c.R, c.G, c.B}
}

func hexColour(c core.Colour) string {
	channel := func(v float64) int {
		return int(min(max(v, 0), 1) * 255)
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}
