package main

import (
	"context"
	"os"

	"github.com/aretw0/tinkit/internal/cli"
	"github.com/spf13/cobra"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <input.xml>",
	Short: "Report statistics about a surface",
	Long:  `Prints point and face counts, faces ignored for not being triangles, degenerate faces, duplicate point IDs, total area and bounds.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		jsonOut, _ := cmd.Flags().GetBool("json")

		app := setupApp(cmd)
		defer app.Close()

		if err := cli.RunInspect(context.Background(), app, args[0], jsonOut, os.Stdout); err != nil {
			fail(app, err)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().Bool("json", false, "Print the report as JSON")
}
