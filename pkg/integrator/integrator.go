// Package integrator implements the recursive path-tracing integrator with
// next-event estimation for the sun and point lights, described in
// spec.md §4.5 (C9).
package integrator

import (
	"math"
	"math/rand"

	"github.com/dorahawk/voxelray/pkg/core"
	"github.com/dorahawk/voxelray/pkg/hittable"
)

// shadowSoftening is the stylised constant attenuation applied to the
// indirect term when the sun is occluded. Not physically grounded; kept as
// a deliberate stylistic choice rather than a proper transmittance model.
const shadowSoftening = 0.3

// shadowBias keeps shadow and scatter rays from re-intersecting their own
// origin surface.
const shadowBias = 0.001

// Trace recursively estimates the radiance arriving along r by sampling the
// world's materials and lights, down to maxDepth bounces (spec.md §4.5).
func Trace(r core.Ray, depth int, world *hittable.World, random *rand.Rand) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{}
	}

	rec, ok := world.Hit(r, shadowBias, math.Inf(1))
	if !ok {
		return sampleBackground(r, world)
	}

	emitted := rec.Material.Emitted(rec.UV.X, rec.UV.Y, rec.Point)

	scatter, scattered := rec.Material.Scatter(r, *rec, random)
	if !scattered {
		return emitted
	}

	indirect := scatter.Attenuation.MultiplyVec(Trace(scatter.Scattered, depth-1, world, random))

	// Next-event estimation is skipped only for refraction through a
	// dielectric (dot(scattered.dir, normal) < 0); reflective paths,
	// including reflective dielectrics, still receive NEE (spec.md §9,
	// Open Questions — preserved verbatim).
	isRefracted := scatter.Scattered.Direction.Dot(rec.Normal) < 0
	if !isRefracted {
		indirect = applySunLighting(world, rec.Point, indirect)
		indirect = addPointLightContributions(world, rec.Point, rec.Normal, indirect)
	}

	return emitted.Add(indirect)
}

// applySunLighting casts a shadow ray toward the sun and either tints
// indirect by the sun's color (visible) or darkens it by shadowSoftening
// (occluded). The sun term is multiplicative over the whole indirect
// contribution — for a non-white sun this tints every bounce, an unusual
// but deliberate, preserved behaviour (spec.md §4.5/§9).
func applySunLighting(world *hittable.World, p core.Vec3, indirect core.Vec3) core.Vec3 {
	shadowRay := core.NewRay(p, world.Sun.Direction)
	if _, occluded := world.Hit(shadowRay, shadowBias, math.Inf(1)); occluded {
		return indirect.Multiply(shadowSoftening)
	}
	return indirect.MultiplyVec(world.Sun.Color)
}

// addPointLightContributions adds each unoccluded point light's direct
// contribution to indirect (additive, unlike the sun's multiplicative
// term) (spec.md §4.5).
func addPointLightContributions(world *hittable.World, p, normal, indirect core.Vec3) core.Vec3 {
	for _, light := range world.PointLights {
		toLight := light.Position.Subtract(p)
		dist := toLight.Length()
		if dist == 0 {
			continue
		}
		dir := toLight.Multiply(1 / dist)

		shadowRay := core.NewRay(p, dir)
		if _, occluded := world.Hit(shadowRay, shadowBias, dist-shadowBias); occluded {
			continue
		}

		cosTheta := math.Max(0, normal.Dot(dir))
		attenuation := light.Intensity / (dist * dist)
		indirect = indirect.Add(light.Color.Multiply(cosTheta * attenuation))
	}
	return indirect
}

// sampleBackground returns the environment's radiance for a ray miss: the
// HDRI if the world has one, else the procedural sky gradient (spec.md
// §4.5).
func sampleBackground(r core.Ray, world *hittable.World) core.Vec3 {
	unitDir := r.Direction.Normalize()
	return world.Environment.Sample(unitDir)
}
