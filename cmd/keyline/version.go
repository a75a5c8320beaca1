package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/keyline"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of keyline",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("keyline version %s\n", strings.TrimSpace(keyline.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
