package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/tinkit"
	"github.com/aretw0/tinkit/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tinkit",
	Run: func(cmd *cobra.Command, args []string) {
		if banner, _ := cmd.Flags().GetBool("banner"); banner {
			tui.PrintBanner(os.Stdout, tinkit.Version)
			return
		}
		fmt.Printf("tinkit version %s\n", strings.TrimSpace(tinkit.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("banner", false, "Print the ASCII banner")
}
