// Command bench measures keyline edit throughput: how fast the engine
// can run toggle and rescale transactions over a synthetic timeline.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/keyline"
	"github.com/aretw0/keyline/pkg/adapters/memory"
	"github.com/aretw0/keyline/pkg/core"
)

func main() {
	clipCount := flag.Int("clips", 100, "Number of clips on the timeline")
	frames := flag.Int("frames", 300, "Duration of each clip in frames")
	step := flag.Int("step", 10, "Frame step between keyframe toggles")
	flag.Parse()

	clips := memory.NewClipStore()
	for i := 0; i < *clipCount; i++ {
		baseline, err := core.DefaultProperties(core.KindVideo)
		if err != nil {
			panic(err)
		}
		clips.Add(&core.Clip{
			ID:            fmt.Sprintf("clip-%d", i),
			Kind:          core.KindVideo,
			TimelineStart: i * *frames,
			TimelineEnd:   i**frames + *frames,
			Baseline:      baseline,
		})
	}

	// The bench measures engine transaction cost, not log formatting.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	anim, err := keyline.New(
		keyline.WithClipProvider(clips),
		keyline.WithRenderer(memory.NewRenderer()),
		keyline.WithLogger(logger),
	)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()

	// Run 1: toggle keyframes across every clip.
	fmt.Printf("Toggling keyframes every %d frames across %d clips...\n", *step, *clipCount)
	var toggles int
	startToggle := time.Now()
	for i := 0; i < *clipCount; i++ {
		id := fmt.Sprintf("clip-%d", i)
		start := i * *frames
		for f := start; f <= start+*frames; f += *step {
			if _, err := anim.Toggle(ctx, id, f); err != nil {
				panic(err)
			}
			toggles++
		}
	}
	toggleDur := time.Since(startToggle)

	// Run 2: rescale every clip to half duration.
	fmt.Println("Rescaling every clip to half duration...")
	startRescale := time.Now()
	for i := 0; i < *clipCount; i++ {
		id := fmt.Sprintf("clip-%d", i)
		if err := anim.RescaleClip(ctx, id, *frames, *frames/2); err != nil {
			panic(err)
		}
	}
	rescaleDur := time.Since(startRescale)

	// Run 3: unwind the whole toggle history.
	fmt.Println("Undoing the full history...")
	var undos int
	startUndo := time.Now()
	for anim.History.CanUndo() {
		if err := anim.Undo(ctx); err != nil {
			panic(err)
		}
		undos++
	}
	undoDur := time.Since(startUndo)

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d clips, %d frames each):\n", *clipCount, *frames)
	fmt.Printf("  Toggle:  %d ops in %v (%.0f ops/s)\n", toggles, toggleDur, float64(toggles)/toggleDur.Seconds())
	fmt.Printf("  Rescale: %d ops in %v (%.0f ops/s)\n", *clipCount, rescaleDur, float64(*clipCount)/rescaleDur.Seconds())
	fmt.Printf("  Undo:    %d ops in %v (%.0f ops/s)\n", undos, undoDur, float64(undos)/undoDur.Seconds())
	fmt.Printf("--------------------------------------------------\n")
}
