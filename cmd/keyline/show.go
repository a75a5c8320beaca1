package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/keyline/pkg/adapters/docfile"
	"github.com/spf13/cobra"
)

var (
	showJSON bool
)

var showCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Show a clip's animation",
	Long:  `Print the clip's keyframes. Outputs a table by default, or the full document as JSON with --json.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		clip, err := docfile.Load(args[0])
		if err != nil {
			fatal("Failed to open document", err)
		}

		if showJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(docfile.Encode(clip)); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		fmt.Printf("clip %s (%s), frames %d to %d\n", clip.ID, clip.Kind, clip.TimelineStart, clip.TimelineEnd)
		if clip.Animation == nil || len(clip.Animation.Keyframes) == 0 {
			fmt.Println("no keyframes")
			return
		}
		fmt.Printf("animation enabled=%v easing=%q\n", clip.Animation.Enabled, clip.Animation.Easing)
		for _, kf := range clip.Animation.Keyframes {
			fmt.Printf("  frame %4d (abs %4d):", kf.FramePosition, clip.TimelineStart+kf.FramePosition)
			for _, name := range kf.Properties.Names() {
				if v, ok := kf.Properties.Value(name); ok {
					fmt.Printf(" %s=%v", name, v)
				}
			}
			fmt.Println()
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
}
