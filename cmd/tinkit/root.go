package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/tinkit/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tinkit",
	Short: "tinkit rescales and measures TIN surfaces stored as XML",
	Long: `tinkit works on Triangulated Irregular Network (TIN) documents made of
<P id="N">x y z</P> points and <F>i j k</F> faces.

It rescales X and Y of every point, computes the area-weighted centroid of
the surface and reports statistics, from the command line, over HTTP or as
Model Context Protocol tools.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a tinkit.yaml configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
}

// setupApp builds the toolkit from the global flags or exits.
func setupApp(cmd *cobra.Command) *cli.App {
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	app, err := cli.Setup(context.Background(), cli.Options{ConfigPath: configPath, Debug: debug})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing tinkit: %v\n", err)
		os.Exit(1)
	}
	return app
}

// fail prints err and exits with status 1.
func fail(app *cli.App, err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	_ = app.Close()
	os.Exit(1)
}
