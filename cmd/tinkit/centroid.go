package main

import (
	"context"
	"os"

	"github.com/aretw0/tinkit/internal/cli"
	"github.com/spf13/cobra"
)

// centroidCmd represents the centroid command
var centroidCmd = &cobra.Command{
	Use:   "centroid <input.xml>",
	Short: "Print the area-weighted centroid of a surface",
	Long: `Extracts points and triangular faces and prints the area-weighted centroid
as "X Y Z". A surface without area has no centroid and prints
"centroid: undefined"; this is not an error.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		jsonOut, _ := cmd.Flags().GetBool("json")

		app := setupApp(cmd)
		defer app.Close()

		if err := cli.RunCentroid(context.Background(), app, args[0], jsonOut, os.Stdout); err != nil {
			fail(app, err)
		}
	},
}

func init() {
	rootCmd.AddCommand(centroidCmd)

	centroidCmd.Flags().Bool("json", false, "Print the full result as JSON")
}
