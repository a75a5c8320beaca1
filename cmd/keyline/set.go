package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aretw0/keyline/pkg/adapters/docfile"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set [file] [frame] [property] [value]",
	Short: "Set a property value at an absolute frame",
	Long: `Change one animatable property at the given absolute frame. The effect
depends on the keyframe state at that frame: with no animation the
baseline changes, on a keyframe the keyframe is updated, and between
keyframes a new keyframe is created capturing the change.`,
	Args: cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		frame, err := strconv.Atoi(args[1])
		if err != nil {
			fatal("Invalid frame", err)
		}
		value, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			fatal("Invalid value", err)
		}

		anim, clip, err := openDocument(args[0])
		if err != nil {
			fatal("Failed to open document", err)
		}

		if err := anim.SetProperty(context.Background(), clip.ID, frame, args[2], value); err != nil {
			fatal("Failed to set property", err)
		}

		if err := docfile.Save(args[0], clip); err != nil {
			fatal("Failed to save document", err)
		}
		fmt.Printf("%s = %v at frame %d\n", args[2], value, frame)
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
}
