package main

import (
	"context"
	"os"

	"github.com/aretw0/tinkit/internal/cli"
	"github.com/spf13/cobra"
)

// scaleCmd represents the scale command
var scaleCmd = &cobra.Command{
	Use:   "scale <input.xml> <scale_factor> <output.xml>",
	Short: "Rescale X and Y of every point",
	Long: `Multiplies X and Y of every <P> element by scale_factor (written with 12
decimals), rewrites Z unscaled with 4 decimals, normalizes every <F> element
and writes the whole document to output.xml. Everything else is preserved.

A negative factor may be passed as is: flags are not parsed after the first argument.`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		quiet, _ := cmd.Flags().GetBool("quiet")

		app := setupApp(cmd)
		defer app.Close()

		err := cli.RunScale(context.Background(), app, cli.ScaleOptions{
			Input:  args[0],
			Factor: args[1],
			Output: args[2],
			Quiet:  quiet,
		}, os.Stdout)
		if err != nil {
			fail(app, err)
		}
	},
}

func init() {
	rootCmd.AddCommand(scaleCmd)

	scaleCmd.Flags().BoolP("quiet", "q", false, "Do not print the summary")
	scaleCmd.Flags().SetInterspersed(false)
}
