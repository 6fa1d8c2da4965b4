package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/df07/go-montecarlo-raytracer/pkg/geometry"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"three-spheres", "Three Spheres"},
		{"glass_bubble", "Glass Bubble"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func writeScene(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestParseSceneMetadata(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name:    "complete.yaml",
			content: "# Scene: Three Spheres\n# Description: One of each material\n# Group: Examples\n\nrender:\n  image_width: 10\n",
			expected: SceneInfo{
				ID:          "complete",
				Name:        "Three Spheres",
				Description: "One of each material",
				Group:       "Examples",
				Type:        TypeYAML,
			},
		},
		{
			name:    "partial.yml",
			content: "# Scene: Bubble\nrender: {}\n# Description: ignored after body starts\n",
			expected: SceneInfo{
				ID:    "partial",
				Name:  "Bubble",
				Group: "YAML Scenes",
				Type:  TypeYAML,
			},
		},
		{
			name:    "no_metadata.yaml",
			content: "render: {}\n",
			expected: SceneInfo{
				ID:    "no_metadata",
				Name:  "No Metadata",
				Group: "YAML Scenes",
				Type:  TypeYAML,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeScene(t, dir, tc.name, tc.content)
			tc.expected.FilePath = path

			result, err := ParseSceneMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneMetadata() error: %v", err)
			}
			if diff := cmp.Diff(tc.expected, result); diff != "" {
				t.Errorf("ParseSceneMetadata() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListSceneFiles(t *testing.T) {
	dir := t.TempDir()
	writeScene(t, dir, "zeta.yaml", "# Scene: Zeta\n")
	writeScene(t, dir, "alpha.yml", "# Scene: Alpha\n")
	writeScene(t, dir, "notes.txt", "# Scene: Not a scene\n")

	scenes, err := ListSceneFiles(filepath.Join(dir, "missing"), dir)
	if err != nil {
		t.Fatalf("ListSceneFiles() error: %v", err)
	}

	var names []string
	for _, s := range scenes {
		names = append(names, s.Name)
	}
	if diff := cmp.Diff([]string{"Alpha", "Zeta"}, names); diff != "" {
		t.Errorf("Scene names mismatch (-want +got):\n%s", diff)
	}
}

func TestListSceneFiles_NoDirectory(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Errorf("ListSceneFiles() error: %v", err)
	}
	if scenes == nil || len(scenes) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", scenes)
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeScene(t, dir, "a.yaml", "# Scene: A\n# Group: Examples\n")
	writeScene(t, dir, "b.yaml", "# Scene: B\n")

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	var groupNames []string
	for _, g := range response.Groups {
		groupNames = append(groupNames, g.Name)
	}
	if diff := cmp.Diff([]string{"Built-in Scenes", "Examples", "YAML Scenes"}, groupNames); diff != "" {
		t.Errorf("Group order mismatch (-want +got):\n%s", diff)
	}

	var builtinIDs []string
	for _, s := range response.Groups[0].Scenes {
		builtinIDs = append(builtinIDs, s.ID)
		if s.Type != TypeBuiltin {
			t.Errorf("Expected builtin type for %s, got %s", s.ID, s.Type)
		}
	}
	if diff := cmp.Diff([]string{"default", "glass", "normals", "spheregrid"}, builtinIDs); diff != "" {
		t.Errorf("Built-in scenes mismatch (-want +got):\n%s", diff)
	}
}

func TestLookup(t *testing.T) {
	for _, info := range BuiltinScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := Lookup(info.ID)
			if err != nil {
				t.Fatalf("Lookup(%q) error: %v", info.ID, err)
			}
			if len(s.Shapes) == 0 {
				t.Error("Expected shapes in built-in scene")
			}
		})
	}

	t.Run("yaml path", func(t *testing.T) {
		path := writeScene(t, t.TempDir(), "scene.yaml", threeSpheresYAML)
		s, err := Lookup(path, geometry.CameraConfig{AspectRatio: 1})
		if err != nil {
			t.Fatalf("Lookup(%q) error: %v", path, err)
		}
		if s.CameraConfig.AspectRatio != 1 || s.SamplingConfig.AspectRatio != 1 {
			t.Errorf("Expected camera override to apply, got camera %f sampling %f",
				s.CameraConfig.AspectRatio, s.SamplingConfig.AspectRatio)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := Lookup("does-not-exist"); err == nil {
			t.Error("Expected error for unknown scene")
		}
	})
}

func TestLookupID(t *testing.T) {
	dir := t.TempDir()
	inside := writeScene(t, dir, "three-spheres.yaml", threeSpheresYAML)
	outside := writeScene(t, t.TempDir(), "private.yaml", threeSpheresYAML)

	t.Run("builtin", func(t *testing.T) {
		if _, err := LookupID("glass", []string{dir}); err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
	})

	t.Run("discovered", func(t *testing.T) {
		s, err := LookupID("three-spheres", []string{dir})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(s.Shapes) != 4 {
			t.Errorf("Expected 4 shapes, got %d", len(s.Shapes))
		}
	})

	// Paths are refused even when they name a valid scene file
	for _, name := range []string{inside, outside, "../private.yaml", "three-spheres.yaml", ""} {
		t.Run("path "+name, func(t *testing.T) {
			_, err := LookupID(name, []string{dir})
			if !errors.Is(err, ErrUnknownScene) {
				t.Errorf("LookupID(%q) = %v, want ErrUnknownScene", name, err)
			}
		})
	}
}
