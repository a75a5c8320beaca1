package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/keyline"
	"github.com/aretw0/keyline/pkg/adapters/docfile"
	"github.com/aretw0/keyline/pkg/adapters/memory"
	"github.com/aretw0/keyline/pkg/core"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	frameRate float64
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "keyline",
	Short: "A keyframe property animation engine for timeline clips",
	Long: `Keyline animates clip properties (position, size, rotation, opacity,
volume) with keyframes. This CLI edits clip documents in place: each
command loads a YAML clip document, applies one animation operation and
writes the document back.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Float64Var(&frameRate, "fps", 30, "Project frame rate")
}

// openDocument loads the clip document and wires an animator around it.
// The loaded clip is live: mutations apply to it directly, and saving
// the same pointer persists them.
func openDocument(path string) (*keyline.Animator, *core.Clip, error) {
	clip, err := docfile.Load(path)
	if err != nil {
		return nil, nil, err
	}

	clips := memory.NewClipStore()
	clips.Add(clip)

	anim, err := keyline.New(
		keyline.WithClipProvider(clips),
		keyline.WithLogger(slog.Default()),
		keyline.WithFrameRate(frameRate),
	)
	if err != nil {
		return nil, nil, err
	}
	return anim, clip, nil
}
