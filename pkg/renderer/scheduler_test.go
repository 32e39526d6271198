package renderer

import (
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dorahawk/voxelray/pkg/camera"
	"github.com/dorahawk/voxelray/pkg/core"
	"github.com/dorahawk/voxelray/pkg/hittable"
	"github.com/dorahawk/voxelray/pkg/lights"
	"github.com/dorahawk/voxelray/pkg/material"
)

func testWorld(deterministic bool) *hittable.World {
	cam := camera.NewCamera(camera.Config{
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		WorldUp:       core.NewVec3(0, 1, 0),
		VFOV:          90,
		AspectRatio:   1,
		FocusDistance: 1,
	})
	sphere := hittable.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3)))
	cfg := core.Config{
		Width: 16, Height: 16, SamplesPerPixel: 4, MaxDepth: 5,
		Acceleration: core.AccelerationBVH, DeterministicSeed: deterministic,
	}
	return hittable.NewWorld(cfg, cam, lights.NewSun(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1)), nil, lights.NewDefaultEnvironment(), []hittable.Hittable{sphere})
}

// TestDeterministicSeedProducesIdenticalBitmaps implements spec.md §8
// property 5: given identical scene, configuration, tile size and
// deterministic per-tile seeds, two runs produce identical output bitmaps
// regardless of thread count.
func TestDeterministicSeedProducesIdenticalBitmaps(t *testing.T) {
	world := testWorld(true)

	run := func(threads int) []core.Vec3 {
		job := &Job{
			World: world, Width: 16, Height: 16, Samples: 4, MaxDepth: 5,
			TileSize: 4, Threads: threads,
		}
		bitmap, outcome := job.Run()
		if outcome != Completed {
			t.Fatalf("expected Completed, got %v", outcome)
		}
		return bitmap
	}

	a := run(2)
	b := run(8)

	if !reflect.DeepEqual(a, b) {
		t.Fatal("deterministic-seed renders with different thread counts must be byte-identical")
	}
}

// TestCancellationLivenessAllWorkersExitPromptly implements spec.md §8
// property 6: setting the cancel flag causes every worker to exit within
// one tile's worth of work.
func TestCancellationLivenessAllWorkersExitPromptly(t *testing.T) {
	world := testWorld(false)

	var cancel atomic.Bool
	job := &Job{
		World: world, Width: 128, Height: 128, Samples: 64, MaxDepth: 10,
		TileSize: 16, Threads: 4, Cancel: &cancel,
	}

	done := make(chan Outcome, 1)
	go func() {
		_, outcome := job.Run()
		done <- outcome
	}()

	time.Sleep(5 * time.Millisecond)
	cancel.Store(true)

	select {
	case outcome := <-done:
		if outcome != Cancelled {
			t.Errorf("outcome = %v, want Cancelled", outcome)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("workers did not exit promptly after cancellation")
	}
}
