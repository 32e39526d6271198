// Package scene loads a YAML scene description into a fully-populated
// hittable.World (spec.md §6: "the scene loader supplies a fully-populated
// World"), and provides one built-in scene, NewDefaultScene.
package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dorahawk/voxelray/pkg/camera"
	"github.com/dorahawk/voxelray/pkg/core"
	"github.com/dorahawk/voxelray/pkg/hittable"
	"github.com/dorahawk/voxelray/pkg/lights"
	"github.com/dorahawk/voxelray/pkg/loaders"
	"github.com/dorahawk/voxelray/pkg/material"
)

// Document is the top-level YAML shape a scene file is unmarshalled into.
type Document struct {
	Camera      CameraDoc      `yaml:"camera"`
	Sampling    SamplingDoc    `yaml:"sampling"`
	Sun         *SunDoc        `yaml:"sun"`
	PointLights []PointLightDoc `yaml:"point_lights"`
	Environment *EnvironmentDoc `yaml:"environment"`
	Materials   map[string]MaterialDoc `yaml:"materials"`
	Primitives  []PrimitiveDoc `yaml:"primitives"`
}

// CameraDoc mirrors camera.Config, with YAML-friendly field names.
type CameraDoc struct {
	LookFrom      [3]float64 `yaml:"look_from"`
	LookAt        [3]float64 `yaml:"look_at"`
	WorldUp       [3]float64 `yaml:"world_up"`
	VFOV          float64    `yaml:"vfov"`
	AspectRatio   float64    `yaml:"aspect_ratio"`
	Aperture      float64    `yaml:"aperture"`
	FocusDistance float64    `yaml:"focus_distance"`
}

// SamplingDoc mirrors core.Config's render-quality fields (spec.md §6's
// "CLI flags merge over scene-file defaults" pattern: explicit zero values
// here are left to CLI flags or core.DefaultConfig to fill in).
type SamplingDoc struct {
	Width             int  `yaml:"width"`
	Height            int  `yaml:"height"`
	SamplesPerPixel   int  `yaml:"samples_per_pixel"`
	MaxDepth          int  `yaml:"max_depth"`
	DeterministicSeed bool `yaml:"deterministic_seed"`
}

// SunDoc describes a directional light.
type SunDoc struct {
	Direction [3]float64 `yaml:"direction"`
	Color     [3]float64 `yaml:"color"`
}

// PointLightDoc describes one point light.
type PointLightDoc struct {
	Position  [3]float64 `yaml:"position"`
	Color     [3]float64 `yaml:"color"`
	Intensity float64    `yaml:"intensity"`
}

// EnvironmentDoc describes the environment map, or the default sky gradient
// when File is empty. Intensity scales the map's texels; the gradient is not
// scaled by it.
type EnvironmentDoc struct {
	File      string  `yaml:"file"`
	Intensity float64 `yaml:"intensity"`
	RotationY float64 `yaml:"rotation_y"`
}

// MaterialDoc is a tagged union of the four material kinds, keyed by name
// in Document.Materials and referenced from PrimitiveDoc.Material.
type MaterialDoc struct {
	Type            string     `yaml:"type"` // "lambertian", "metal", "dielectric", "emissive"
	Albedo          [3]float64 `yaml:"albedo"`
	Fuzz            float64    `yaml:"fuzz"`
	RefractiveIndex float64    `yaml:"refractive_index"`
	Emission        [3]float64 `yaml:"emission"`
}

// PrimitiveDoc is a tagged union of the shape kinds ("sphere", "triangle",
// "mesh").
type PrimitiveDoc struct {
	Type     string     `yaml:"type"`
	Material string     `yaml:"material"`
	Center   [3]float64 `yaml:"center"`
	Radius   float64    `yaml:"radius"`
	V0       [3]float64 `yaml:"v0"`
	V1       [3]float64 `yaml:"v1"`
	V2       [3]float64 `yaml:"v2"`
	File     string     `yaml:"file"` // mesh: path to .obj or .gltf/.glb
}

// Load reads and parses a YAML scene file, returning a fully-populated
// hittable.World. baseConfig supplies render settings the scene file's
// sampling block doesn't override; the CLI applies its own flag overrides to
// the returned World's Config afterwards.
func Load(filename string, baseConfig core.Config, logger core.Logger) (*hittable.World, error) {
	if logger == nil {
		logger = core.NopLogger{}
	}

	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scene file: %w", err)
	}

	return build(&doc, baseConfig, logger)
}

func build(doc *Document, baseConfig core.Config, logger core.Logger) (*hittable.World, error) {
	cfg := mergeSamplingConfig(baseConfig, doc.Sampling)

	cam := camera.NewCamera(camera.Config{
		LookFrom:      vec3(doc.Camera.LookFrom),
		LookAt:        vec3(doc.Camera.LookAt),
		WorldUp:       vec3(doc.Camera.WorldUp),
		VFOV:          doc.Camera.VFOV,
		AspectRatio:   doc.Camera.AspectRatio,
		Aperture:      doc.Camera.Aperture,
		FocusDistance: doc.Camera.FocusDistance,
	})

	sun := lights.NewSun(core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 0))
	if doc.Sun != nil {
		sun = lights.NewSun(vec3(doc.Sun.Direction), vec3(doc.Sun.Color))
	}

	pointLights := make([]lights.PointLight, 0, len(doc.PointLights))
	for _, pl := range doc.PointLights {
		pointLights = append(pointLights, lights.NewPointLight(vec3(pl.Position), vec3(pl.Color), pl.Intensity))
	}

	env, err := buildEnvironment(doc.Environment)
	if err != nil {
		return nil, err
	}

	materials, err := buildMaterials(doc.Materials)
	if err != nil {
		return nil, err
	}

	primitives, err := buildPrimitives(doc.Primitives, materials, logger)
	if err != nil {
		return nil, err
	}
	if len(primitives) == 0 {
		return nil, fmt.Errorf("scene has no primitives after loading (an empty primitive set is a configuration error)")
	}

	return hittable.NewWorld(cfg, cam, sun, pointLights, env, primitives), nil
}

func mergeSamplingConfig(base core.Config, s SamplingDoc) core.Config {
	cfg := base
	if s.Width > 0 {
		cfg.Width = s.Width
	}
	if s.Height > 0 {
		cfg.Height = s.Height
	}
	if s.SamplesPerPixel > 0 {
		cfg.SamplesPerPixel = s.SamplesPerPixel
	}
	if s.MaxDepth > 0 {
		cfg.MaxDepth = s.MaxDepth
	}
	if s.DeterministicSeed {
		cfg.DeterministicSeed = true
	}
	return cfg
}

func buildEnvironment(e *EnvironmentDoc) (*lights.Environment, error) {
	if e == nil {
		return lights.NewDefaultEnvironment(), nil
	}
	if e.File == "" {
		env := lights.NewDefaultEnvironment()
		env.Intensity = e.Intensity
		return env, nil
	}

	img, err := loaders.LoadEnvironment(e.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment map: %w", err)
	}
	intensity := e.Intensity
	if intensity == 0 {
		intensity = 1
	}
	return lights.NewEquirectangularEnvironment(img.Pixels, img.Width, img.Height, intensity, e.RotationY), nil
}

func buildMaterials(docs map[string]MaterialDoc) (map[string]material.Material, error) {
	out := make(map[string]material.Material, len(docs))
	for name, m := range docs {
		mat, err := buildMaterial(m)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		out[name] = mat
	}
	return out, nil
}

func buildMaterial(m MaterialDoc) (material.Material, error) {
	switch m.Type {
	case "lambertian":
		return material.NewLambertian(vec3(m.Albedo)), nil
	case "metal":
		return material.NewMetal(vec3(m.Albedo), m.Fuzz), nil
	case "dielectric":
		return material.NewDielectric(m.RefractiveIndex), nil
	case "emissive":
		return material.NewEmissive(vec3(m.Emission)), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", m.Type)
	}
}

func buildPrimitives(docs []PrimitiveDoc, materials map[string]material.Material, logger core.Logger) ([]hittable.Hittable, error) {
	primitives := make([]hittable.Hittable, 0, len(docs))
	for i, p := range docs {
		mat, ok := materials[p.Material]
		if !ok {
			return nil, fmt.Errorf("primitive %d references unknown material %q", i, p.Material)
		}

		switch p.Type {
		case "sphere":
			primitives = append(primitives, hittable.NewSphere(vec3(p.Center), p.Radius, mat))
		case "triangle":
			tri := hittable.NewTriangle(vec3(p.V0), vec3(p.V1), vec3(p.V2), mat)
			if triangleIsDegenerate(tri) {
				logger.Printf("scene: skipping degenerate zero-area triangle at primitive %d", i)
				continue
			}
			primitives = append(primitives, tri)
		case "mesh":
			triangles, err := loadMeshTriangles(p.File, mat)
			if err != nil {
				logger.Printf("scene: skipping mesh %q: %v", p.File, err)
				continue
			}
			if len(triangles) == 0 {
				continue
			}
			primitives = append(primitives, hittable.NewMesh(triangles))
		default:
			return nil, fmt.Errorf("unknown primitive type %q at primitive %d", p.Type, i)
		}
	}
	return primitives, nil
}

func triangleIsDegenerate(tri *hittable.Triangle) bool {
	edge1 := tri.V1.Subtract(tri.V0)
	edge2 := tri.V2.Subtract(tri.V0)
	return edge1.Cross(edge2).Length() == 0
}

func loadMeshTriangles(file string, mat material.Material) ([]*hittable.Triangle, error) {
	ext := fileExt(file)
	switch ext {
	case "gltf", "glb":
		data, err := loaders.LoadGLTF(file)
		if err != nil {
			return nil, err
		}
		return data.ToTriangles(mat), nil
	default:
		data, err := loaders.LoadOBJ(file)
		if err != nil {
			return nil, err
		}
		return data.ToTriangles(mat), nil
	}
}

func fileExt(filename string) string {
	for i := len(filename) - 1; i >= 0 && filename[i] != '/'; i-- {
		if filename[i] == '.' {
			return filename[i+1:]
		}
	}
	return ""
}

func vec3(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
