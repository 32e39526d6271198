// Package postprocess converts accumulated per-pixel sample sums to 8-bit
// RGB output, per spec.md §4.8 (C11): the default pipeline is a fixed
// gamma=2 sqrt operator; ACES, Reinhard and Uncharted2 are documented
// alternates, available but disabled by default.
package postprocess

import (
	"math"

	"github.com/dorahawk/voxelray/pkg/core"
)

// RGB8 is an 8-bit RGB pixel.
type RGB8 struct {
	R, G, B uint8
}

// Operator is an optional tone-mapping curve applied to linear HDR color
// before gamma correction. The default pipeline (Process) applies none of
// these — it uses the fixed sqrt approximation described in spec.md §4.8.
type Operator func(core.Vec3) core.Vec3

// Process converts one accumulated pixel (R, G, B) sample-sum to 8-bit RGB,
// following spec.md §4.8 exactly:
//  1. Replace NaN components with 0.
//  2. Divide by samples-per-pixel.
//  3. Gamma-correct via sqrt(scale*x) (a fixed gamma=2 approximation).
//  4. Clamp to [0, 0.999], multiply by 256, cast to uint8.
func Process(accumulated core.Vec3, samplesPerPixel int) RGB8 {
	scrubbed := accumulated.ScrubNaN()
	scale := 1.0 / float64(samplesPerPixel)

	gammaCorrect := func(x float64) uint8 {
		v := math.Sqrt(scale * x)
		if v < 0 {
			v = 0
		}
		if v > 0.999 {
			v = 0.999
		}
		return uint8(256 * v)
	}

	return RGB8{
		R: gammaCorrect(scrubbed.X),
		G: gammaCorrect(scrubbed.Y),
		B: gammaCorrect(scrubbed.Z),
	}
}

// ProcessBitmap converts a full bitmap of accumulated sample sums to 8-bit
// RGB in row-major, top-row-first order (spec.md §6).
func ProcessBitmap(bitmap []core.Vec3, samplesPerPixel int) []RGB8 {
	out := make([]RGB8, len(bitmap))
	for i, px := range bitmap {
		out[i] = Process(px, samplesPerPixel)
	}
	return out
}

// ACESFilmic is Krzysztof Narkowicz's ACES approximation, provided as an
// alternate Operator but not used by the default pipeline.
func ACESFilmic(hdr core.Vec3) core.Vec3 {
	const a, b, c, d, e = 2.51, 0.03, 2.43, 0.59, 0.14
	tone := func(x float64) float64 {
		if x < 0 {
			x = 0
		}
		return clamp01((x * (a*x + b)) / (x*(c*x+d) + e))
	}
	return core.NewVec3(tone(hdr.X), tone(hdr.Y), tone(hdr.Z))
}

// Reinhard is the simple Reinhard tone-mapping operator, provided as an
// alternate Operator but not used by the default pipeline.
func Reinhard(hdr core.Vec3) core.Vec3 {
	tone := func(x float64) float64 { return x / (1 + x) }
	return core.NewVec3(tone(hdr.X), tone(hdr.Y), tone(hdr.Z))
}

// Uncharted2 is the filmic curve used in Uncharted 2, provided as an
// alternate Operator but not used by the default pipeline.
func Uncharted2(hdr core.Vec3) core.Vec3 {
	const A, B, C, D, E, F = 0.15, 0.50, 0.10, 0.20, 0.02, 0.30
	curve := func(x float64) float64 {
		return ((x*(A*x+C*B) + D*E) / (x*(A*x+B) + D*F)) - E/F
	}
	const exposureBias = 2.0
	const whitePoint = 11.2
	whiteScale := 1.0 / curve(whitePoint)

	tone := func(x float64) float64 { return clamp01(curve(x*exposureBias) * whiteScale) }
	return core.NewVec3(tone(hdr.X), tone(hdr.Y), tone(hdr.Z))
}

// ProcessWithOperator applies an alternate Operator followed by sRGB gamma
// correction (gamma=2.2, the conventional display gamma), for callers that
// opt into ACES/Reinhard/Uncharted2 instead of the default sqrt pipeline.
func ProcessWithOperator(accumulated core.Vec3, samplesPerPixel int, op Operator) RGB8 {
	scrubbed := accumulated.ScrubNaN()
	scale := 1.0 / float64(samplesPerPixel)
	exposed := scrubbed.Multiply(scale)
	toneMapped := op(exposed)

	const invGamma = 1.0 / 2.2
	gammaCorrect := func(x float64) uint8 {
		if x < 0 {
			x = 0
		}
		v := math.Pow(x, invGamma)
		if v > 0.999 {
			v = 0.999
		}
		return uint8(256 * v)
	}

	return RGB8{
		R: gammaCorrect(toneMapped.X),
		G: gammaCorrect(toneMapped.Y),
		B: gammaCorrect(toneMapped.Z),
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
