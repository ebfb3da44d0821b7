package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/geometry"
)

// ErrUnknownScene is returned when a scene ID is not in the catalog
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
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

// Constructor builds a scene, optionally overriding its default camera
type Constructor func(cameraOverrides ...geometry.CameraConfig) *Scene

type catalogEntry struct {
	info   SceneInfo
	create Constructor
}

const (
	groupShowcase  = "Showcase"
	groupReference = "Reference"
)

var catalog = map[string]catalogEntry{
	"default": {
		info:   newSceneInfo("default", groupShowcase, "Metal, diffuse, solid and hollow glass spheres on a green ground"),
		create: NewDefaultScene,
	},
	"simple": {
		info:   newSceneInfo("simple", groupReference, "Single diffuse sphere above a large ground sphere"),
		create: NewSimpleScene,
	},
	"spheregrid": {
		info:   newSceneInfo("sphere-grid", groupShowcase, "10x10 grid of rainbow-colored metallic spheres"),
		create: NewSphereGridScene,
	},
	"random": {
		info:   newSceneInfo("random", groupShowcase, "Random field of small spheres with three large feature spheres"),
		create: NewRandomScene,
	},
}

func newSceneInfo(name, group, description string) SceneInfo {
	id := strings.ReplaceAll(name, "-", "")
	return SceneInfo{
		ID:          id,
		Name:        titleCase(name),
		DisplayName: titleCase(name),
		Description: description,
		Group:       group,
	}
}

// Create builds the scene registered under id
func Create(id string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	entry, ok := catalog[strings.ToLower(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, id, strings.Join(SceneIDs(), ", "))
	}
	return entry.create(cameraOverrides...), nil
}

// SceneIDs returns the sorted IDs of all built-in scenes
func SceneIDs() []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ListScenes returns information about every built-in scene, sorted by display name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(catalog))
	for _, entry := range catalog {
		scenes = append(scenes, entry.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes
}

// ListAllScenes returns the built-in scenes grouped by category, Showcase first
func ListAllScenes() ScenesResponse {
	var response ScenesResponse

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range ListScenes() {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != groupShowcase {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if showcase, exists := groupMap[groupShowcase]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: groupShowcase, Scenes: showcase})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response
}

// titleCase converts an identifier-style string to title case
// e.g., "sphere-grid" -> "Sphere Grid"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
