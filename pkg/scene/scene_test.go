package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dorahawk/voxelray/pkg/core"
)

const minimalYAML = `
camera:
  look_from: [0, 0, 0]
  look_at: [0, 0, -1]
  world_up: [0, 1, 0]
  vfov: 90
  aspect_ratio: 1
  focus_distance: 1
sampling:
  width: 64
  height: 64
  samples_per_pixel: 8
  max_depth: 4
sun:
  direction: [0, 1, 0]
  color: [1, 1, 1]
materials:
  red:
    type: lambertian
    albedo: [0.8, 0.2, 0.2]
primitives:
  - type: sphere
    material: red
    center: [0, 0, -1]
    radius: 0.5
`

func writeTempScene(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write temp scene: %v", err)
	}
	return path
}

func TestLoadMinimalScene(t *testing.T) {
	path := writeTempScene(t, minimalYAML)

	world, err := Load(path, core.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(world.Primitives) != 1 {
		t.Fatalf("Primitives = %d, want 1", len(world.Primitives))
	}
	if world.Config.Width != 64 || world.Config.Height != 64 {
		t.Errorf("Config = %+v, want 64x64 from the scene file", world.Config)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), core.DefaultConfig(), nil); err == nil {
		t.Error("expected an error for a missing scene file")
	}
}

func TestLoadRejectsUnknownMaterialReference(t *testing.T) {
	path := writeTempScene(t, `
camera: {look_from: [0,0,0], look_at: [0,0,-1], world_up: [0,1,0], vfov: 90, aspect_ratio: 1, focus_distance: 1}
sampling: {width: 16, height: 16, samples_per_pixel: 1, max_depth: 1}
materials: {}
primitives:
  - type: sphere
    material: does-not-exist
    center: [0, 0, -1]
    radius: 0.5
`)
	if _, err := Load(path, core.DefaultConfig(), nil); err == nil {
		t.Error("expected an error for a primitive referencing an unknown material")
	}
}

func TestLoadRejectsEmptyPrimitiveSet(t *testing.T) {
	path := writeTempScene(t, `
camera: {look_from: [0,0,0], look_at: [0,0,-1], world_up: [0,1,0], vfov: 90, aspect_ratio: 1, focus_distance: 1}
sampling: {width: 16, height: 16, samples_per_pixel: 1, max_depth: 1}
materials: {}
primitives: []
`)
	if _, err := Load(path, core.DefaultConfig(), nil); err == nil {
		t.Error("expected an error for a scene with an empty primitive set (spec.md §4.3: an empty set is an error)")
	}
}

func TestLoadSkipsDegenerateTriangle(t *testing.T) {
	path := writeTempScene(t, `
camera: {look_from: [0,0,0], look_at: [0,0,-1], world_up: [0,1,0], vfov: 90, aspect_ratio: 1, focus_distance: 1}
sampling: {width: 16, height: 16, samples_per_pixel: 1, max_depth: 1}
materials:
  red: {type: lambertian, albedo: [0.8, 0.2, 0.2]}
primitives:
  - type: triangle
    material: red
    v0: [0, 0, 0]
    v1: [0, 0, 0]
    v2: [0, 0, 0]
  - type: sphere
    material: red
    center: [0, 0, -1]
    radius: 0.5
`)
	world, err := Load(path, core.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(world.Primitives) != 1 {
		t.Fatalf("Primitives = %d, want 1 (degenerate triangle skipped)", len(world.Primitives))
	}
}

func TestNewDefaultSceneHasPrimitives(t *testing.T) {
	world := NewDefaultScene()
	if len(world.Primitives) == 0 {
		t.Error("NewDefaultScene produced no primitives")
	}
	if world.Camera == nil {
		t.Error("NewDefaultScene produced a nil camera")
	}
}
