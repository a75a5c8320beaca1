package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state [file] [frame]",
	Short: "Show the keyframe state at an absolute frame",
	Long: `Derive the keyframe state (none, on-keyframe, between-keyframes) for
the clip in the document at the given absolute timeline frame.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		frame, err := strconv.Atoi(args[1])
		if err != nil {
			fatal("Invalid frame", err)
		}

		anim, clip, err := openDocument(args[0])
		if err != nil {
			fatal("Failed to open document", err)
		}

		state, err := anim.StateAt(context.Background(), clip.ID, frame)
		if err != nil {
			fatal("Failed to derive state", err)
		}
		fmt.Println(state)
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
}
