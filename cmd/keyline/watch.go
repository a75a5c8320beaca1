package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/keyline/pkg/adapters/docfile"
	"github.com/aretw0/keyline/pkg/core"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Watch a clip document for external edits",
	Long: `Watch the document file and print a line for every settled change until
interrupted. Useful to verify that another tool's edits are picked up.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		clip, err := docfile.Load(args[0])
		if err != nil {
			fatal("Failed to open document", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events := make(chan core.Event, 16)
		watcher := docfile.NewWatcher(args[0], clip.ID, events, slog.Default())
		if err := watcher.Start(ctx); err != nil {
			fatal("Failed to start watcher", err)
		}

		fmt.Printf("Watching %s (clip '%s'), Ctrl-C to stop...\n", args[0], clip.ID)
		for {
			select {
			case <-ctx.Done():
				if err := watcher.Stop(context.Background()); err != nil {
					fatal("Failed to stop watcher", err)
				}
				close(events)
				fmt.Println("\nStopped.")
				return
			case e := <-events:
				fmt.Println(e)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
