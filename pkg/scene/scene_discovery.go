package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScriptExt is the file extension of scene scripts
const ScriptExt = ".zygo"

const builtinGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "script"
	FilePath    string `json:"filePath"`    // Path to script file (script type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// Constructor builds a scene for the given image size
type Constructor func(width, height int) (*Scene, error)

type builtinScene struct {
	info SceneInfo
	new  Constructor
}

var builtins = map[string]builtinScene{
	"default": {
		info: SceneInfo{Name: "Default Scene", Description: "Floor and walls of flattened spheres with three spheres"},
		new:  NewDefaultScene,
	},
	"plane": {
		info: SceneInfo{Name: "Planes", Description: "Floor and roof planes with three spheres"},
		new:  NewPlaneScene,
	},
	"pattern": {
		info: SceneInfo{Name: "Patterns", Description: "Checkered floor with striped walls and spheres"},
		new:  NewPatternScene,
	},
	"silhouette": {
		info: SceneInfo{Name: "Sphere Silhouette", Description: "A single shaded purple sphere"},
		new:  NewSilhouetteScene,
	},
	"sphere-on-wall": {
		info: SceneInfo{Name: "Sphere On Wall", Description: "Flat red silhouette of a unit sphere, no shading"},
		new:  NewSphereOnWallScene,
	},
	"clock": {
		info: SceneInfo{Name: "Clock", Description: "Twelve hour marks placed by rotating one point about z"},
		new:  NewClockScene,
	},
}

// BuiltinNames returns the IDs of the built-in scenes in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin creates the named built-in scene
func Builtin(name string, width, height int) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(BuiltinNames(), ", "))
	}
	return b.new(width, height)
}

// ListScriptScenes scans the scenes directory and returns discovered scripts
func ListScriptScenes() ([]SceneInfo, error) {
	// Try different possible paths for scenes directory
	possiblePaths := []string{"scenes", "../scenes"}
	var scenesDir string

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			scenesDir = path
			break
		}
	}

	if scenesDir == "" {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(scenesDir, "*"+ScriptExt))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %v", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		sceneInfo, err := ParseScriptMetadata(filePath)
		if err != nil {
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseScriptMetadata extracts metadata from the leading ; comments of a
// scene script:
//
//	; Scene: Cornell Room
//	; Description: Two walls and a sphere
//	; Group: Rooms
func ParseScriptMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          "script:" + nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       "Script Scenes",
		Type:        "script",
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		// Unreadable files keep their fallback values
		return sceneInfo, nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, ";") {
			break
		}

		content := strings.TrimSpace(strings.TrimLeft(line, ";"))
		switch {
		case strings.HasPrefix(content, "Scene:"):
			sceneInfo.Name = strings.TrimSpace(strings.TrimPrefix(content, "Scene:"))
		case strings.HasPrefix(content, "Description:"):
			sceneInfo.Description = strings.TrimSpace(strings.TrimPrefix(content, "Description:"))
		case strings.HasPrefix(content, "Group:"):
			if g := strings.TrimSpace(strings.TrimPrefix(content, "Group:")); g != "" {
				sceneInfo.Group = g
			}
		}
	}
	if sceneInfo.Name == "" {
		sceneInfo.Name = titleCase(nameWithoutExt)
	}
	sceneInfo.DisplayName = sceneInfo.Name

	return sceneInfo, scanner.Err()
}

// ListAllScenes returns both built-in and script scenes, grouped by category
func ListAllScenes() (ScenesResponse, error) {
	var response ScenesResponse

	var builtInScenes []SceneInfo
	for _, id := range BuiltinNames() {
		info := builtins[id].info
		info.ID = id
		info.DisplayName = info.Name
		info.Group = builtinGroup
		info.Type = "builtin"
		builtInScenes = append(builtInScenes, info)
	}

	scriptScenes, err := ListScriptScenes()
	if err != nil {
		return response, fmt.Errorf("failed to list script scenes: %v", err)
	}

	groupMap := make(map[string][]SceneInfo)
	for _, s := range append(builtInScenes, scriptScenes...) {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if group, exists := groupMap[builtinGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: group})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
