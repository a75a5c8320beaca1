package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aretw0/keyline/pkg/adapters/docfile"
	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle [file] [frame]",
	Short: "Toggle a keyframe at an absolute frame",
	Long: `Flip the keyframe state at the given absolute frame: create a keyframe
where there is none, remove the keyframe the playhead sits on. Saves the
document in place and prints the resulting state.`,
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

		state, err := anim.Toggle(context.Background(), clip.ID, frame)
		if err != nil {
			fatal("Failed to toggle keyframe", err)
		}

		if err := docfile.Save(args[0], clip); err != nil {
			fatal("Failed to save document", err)
		}
		fmt.Println(state)
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
