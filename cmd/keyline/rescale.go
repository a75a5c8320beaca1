package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aretw0/keyline/pkg/adapters/docfile"
	"github.com/spf13/cobra"
)

var rescaleCmd = &cobra.Command{
	Use:   "rescale [file] [new-duration]",
	Short: "Change a clip's duration, repositioning its keyframes",
	Long: `Set a new effective duration (in frames) for the clip and reposition
every keyframe proportionally. Keyframes that no longer fit are dropped.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		newDur, err := strconv.Atoi(args[1])
		if err != nil {
			fatal("Invalid duration", err)
		}
		if newDur <= 0 {
			fatal("Invalid duration", fmt.Errorf("must be positive, got %d", newDur))
		}

		anim, clip, err := openDocument(args[0])
		if err != nil {
			fatal("Failed to open document", err)
		}

		oldDur := clip.DurationFrames()
		if err := anim.RescaleClip(context.Background(), clip.ID, oldDur, newDur); err != nil {
			fatal("Failed to rescale", err)
		}
		clip.TimelineEnd = clip.TimelineStart + newDur

		if err := docfile.Save(args[0], clip); err != nil {
			fatal("Failed to save document", err)
		}
		fmt.Printf("Clip '%s' rescaled from %d to %d frames.\n", clip.ID, oldDur, newDur)
	},
}

func init() {
	rootCmd.AddCommand(rescaleCmd)
}
