package scene

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/glog"

	"github.com/df07/go-montecarlo-raytracer/pkg/geometry"
)

// Scene types reported by discovery
const (
	TypeBuiltin = "builtin"
	TypeYAML    = "yaml"
)

// builtinGroup is the group name for scenes compiled into the binary
const builtinGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`                 // Unique identifier, accepted by Lookup
	Name        string `json:"name"`               // Scene name
	Description string `json:"description"`        // Optional description
	Group       string `json:"group"`              // Grouping category
	Type        string `json:"type"`               // "builtin" or "yaml"
	FilePath    string `json:"filePath,omitempty"` // Path to the YAML file (yaml type only)
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

type builtinScene struct {
	info  SceneInfo
	build func(cameraOverrides ...geometry.CameraConfig) *Scene
}

var builtinScenes = []builtinScene{
	{
		info:  SceneInfo{ID: "default", Name: "Default Scene", Description: "Ground, diffuse centre sphere and two metal spheres"},
		build: NewDefaultScene,
	},
	{
		info:  SceneInfo{ID: "glass", Name: "Glass", Description: "Hollow glass bubble next to diffuse and mirror spheres"},
		build: NewGlassScene,
	},
	{
		info:  SceneInfo{ID: "normals", Name: "Normals", Description: "Two spheres shaded by surface normal"},
		build: NewNormalsScene,
	},
	{
		info:  SceneInfo{ID: "spheregrid", Name: "Sphere Grid", Description: "Grid of spheres cycling through every material"},
		build: NewSphereGridScene,
	},
}

// DefaultScenesDirs are searched in order for YAML scene files
var DefaultScenesDirs = []string{"scenes", "../scenes"}

// BuiltinScenes returns metadata for every built-in scene
func BuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		info := b.info
		info.Group = builtinGroup
		info.Type = TypeBuiltin
		infos = append(infos, info)
	}
	return infos
}

// findScenesDir returns the first existing directory in dirs
func findScenesDir(dirs []string) string {
	for _, dir := range dirs {
		if stat, err := os.Stat(dir); err == nil && stat.IsDir() {
			return dir
		}
	}
	return ""
}

// ListSceneFiles scans the first existing scenes directory for YAML scenes
func ListSceneFiles(dirs ...string) ([]SceneInfo, error) {
	if len(dirs) == 0 {
		dirs = DefaultScenesDirs
	}
	scenesDir := findScenesDir(dirs)
	if scenesDir == "" {
		return []SceneInfo{}, nil
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(scenesDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			glog.Warningf("failed to parse metadata for %s: %v", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseSceneMetadata extracts metadata from the header comments of a YAML
// scene file:
//
//	# Scene: Three Spheres
//	# Description: Classic three sphere setup
//	# Group: Examples
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:       nameWithoutExt,
		Name:     titleCase(nameWithoutExt),
		Group:    "YAML Scenes",
		Type:     TypeYAML,
		FilePath: filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return sceneInfo, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		// Stop parsing at first non-comment line
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		switch {
		case strings.HasPrefix(content, "Scene:"):
			sceneInfo.Name = strings.TrimSpace(strings.TrimPrefix(content, "Scene:"))
		case strings.HasPrefix(content, "Description:"):
			sceneInfo.Description = strings.TrimSpace(strings.TrimPrefix(content, "Description:"))
		case strings.HasPrefix(content, "Group:"):
			sceneInfo.Group = strings.TrimSpace(strings.TrimPrefix(content, "Group:"))
		}
	}

	return sceneInfo, scanner.Err()
}

// ListAllScenes returns both built-in and YAML scenes, grouped by category
func ListAllScenes(dirs ...string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListSceneFiles(dirs...)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	groupMap := make(map[string][]SceneInfo)
	for _, s := range append(BuiltinScenes(), fileScenes...) {
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

	response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: groupMap[builtinGroup]})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// ErrUnknownScene is returned (wrapped) when a name matches no scene
var ErrUnknownScene = errors.New("unknown scene")

// Lookup resolves a scene by built-in ID, by discovered YAML scene ID, or by
// a path to a .yaml/.yml file
func Lookup(name string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".yaml" || ext == ".yml" {
		return loadWithOverrides(name, cameraOverrides)
	}
	return LookupID(name, DefaultScenesDirs, cameraOverrides...)
}

// LookupID resolves a scene by built-in ID or by the ID of a YAML scene found
// in dirs. Arbitrary paths are never opened.
func LookupID(id string, dirs []string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == id {
			return b.build(cameraOverrides...), nil
		}
	}

	fileScenes, err := ListSceneFiles(dirs...)
	if err != nil {
		return nil, err
	}
	for _, info := range fileScenes {
		if info.ID == id {
			return loadWithOverrides(info.FilePath, cameraOverrides)
		}
	}

	return nil, fmt.Errorf("%w %q", ErrUnknownScene, id)
}

func loadWithOverrides(path string, cameraOverrides []geometry.CameraConfig) (*Scene, error) {
	s, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if len(cameraOverrides) > 0 {
		s.CameraConfig = geometry.MergeCameraConfig(s.CameraConfig, cameraOverrides[0])
		s.Camera = geometry.NewCamera(s.CameraConfig)
		s.SamplingConfig.AspectRatio = s.CameraConfig.AspectRatio
	}
	return s, nil
}

// titleCase converts a filename-style string to title case
// e.g., "three-spheres" -> "Three Spheres"
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
