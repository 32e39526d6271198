// Package lights implements the Sun, PointLight and Environment described in
// spec.md §3/§4.6 — the light sources the integrator samples for
// next-event estimation and environment misses.
package lights

import (
	"math"

	"github.com/dorahawk/voxelray/pkg/core"
)

// Sun is a directional light: a unit direction toward the sun and a color
// (radiance), sampled by the integrator's next-event estimation (spec.md §3).
type Sun struct {
	Direction core.Vec3 // unit vector pointing toward the sun
	Color     core.Vec3
}

// NewSun creates a Sun, normalizing direction.
func NewSun(direction, color core.Vec3) Sun {
	return Sun{Direction: direction.Normalize(), Color: color}
}

// PointLight is a positional light with color, intensity and an optional
// radius (reserved for a soft-shadow extension, not required by the core
// integrator) (spec.md §3).
type PointLight struct {
	Position  core.Vec3
	Color     core.Vec3
	Intensity float64
	Radius    float64
}

// NewPointLight creates a PointLight.
func NewPointLight(position, color core.Vec3, intensity float64) PointLight {
	return PointLight{Position: position, Color: color, Intensity: intensity}
}

// skyDown and skyUp are the default procedural sky gradient's endpoints
// (spec.md §4.5: lerp((1,1,1), (0.5,0.7,1.0), 0.5*(dir.y+1))): skyDown is
// returned for a straight-down direction, skyUp for a straight-up one.
var (
	skyDown = core.NewVec3(1.0, 1.0, 1.0)
	skyUp   = core.NewVec3(0.5, 0.7, 1.0)
)

// Environment is either absent, the default procedural sky gradient, or a
// bilinearly-addressable equirectangular HDRI buffer (spec.md §3/§4.6).
type Environment struct {
	// Buffer holds linear-RGB texels in row-major order, width*height long.
	// A nil Buffer means "use the default procedural gradient".
	Buffer        []core.Vec3
	Width, Height int
	Intensity     float64
	RotationY     float64 // radians
}

// NewDefaultEnvironment returns an Environment with no HDRI buffer, so
// Sample falls back to the procedural sky gradient.
func NewDefaultEnvironment() *Environment {
	return &Environment{Intensity: 1}
}

// NewEquirectangularEnvironment wraps a decoded linear-RGB equirectangular
// buffer (spec.md §4.6: "8-bit sRGB inputs are decoded on load").
func NewEquirectangularEnvironment(buffer []core.Vec3, width, height int, intensity, rotationY float64) *Environment {
	return &Environment{Buffer: buffer, Width: width, Height: height, Intensity: intensity, RotationY: rotationY}
}

// Sample returns the radiance along unit direction d: the equirectangular
// HDRI texel if the environment has a valid buffer, else the procedural sky
// gradient (spec.md §4.5/§4.6).
func (e *Environment) Sample(d core.Vec3) core.Vec3 {
	if e != nil && e.Buffer != nil && e.Width > 0 && e.Height > 0 {
		return e.sampleEquirectangular(d)
	}
	return SkyGradient(d)
}

// sampleEquirectangular implements spec.md §4.6: optionally rotate d about
// the Y axis, convert to spherical (theta, phi), map to texel indices, and
// return the texel scaled by intensity.
func (e *Environment) sampleEquirectangular(d core.Vec3) core.Vec3 {
	dir := d
	if e.RotationY != 0 {
		dir = rotateY(dir, e.RotationY)
	}

	theta := math.Acos(clamp(dir.Y, -1, 1))
	phi := math.Atan2(dir.Z, dir.X)

	u := (phi + math.Pi) / (2 * math.Pi)
	v := theta / math.Pi

	i := int(math.Mod(u*float64(e.Width), float64(e.Width)))
	if i < 0 {
		i += e.Width
	}
	j := int(math.Mod(v*float64(e.Height), float64(e.Height)))
	if j < 0 {
		j += e.Height
	}

	texel := e.Buffer[j*e.Width+i]
	return texel.Multiply(e.Intensity)
}

// SkyGradient is the default procedural sky used when no environment map is
// present (spec.md §4.5).
func SkyGradient(d core.Vec3) core.Vec3 {
	unit := d.Normalize()
	t := 0.5 * (unit.Y + 1)
	return core.Lerp(skyDown, skyUp, t)
}

func rotateY(v core.Vec3, angle float64) core.Vec3 {
	s, c := math.Sin(angle), math.Cos(angle)
	return core.NewVec3(
		v.X*c+v.Z*s,
		v.Y,
		-v.X*s+v.Z*c,
	)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
