package main

import (
	"context"
	"fmt"

	"github.com/aretw0/keyline/pkg/adapters/docfile"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear [file]",
	Short: "Remove all keyframes from a clip",
	Long:  `Delete every keyframe and disable the clip's animation. The baseline is kept.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		anim, clip, err := openDocument(args[0])
		if err != nil {
			fatal("Failed to open document", err)
		}

		if err := anim.Clear(context.Background(), clip.ID); err != nil {
			fatal("Failed to clear animation", err)
		}

		if err := docfile.Save(args[0], clip); err != nil {
			fatal("Failed to save document", err)
		}
		fmt.Printf("Animation cleared for clip '%s'.\n", clip.ID)
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
