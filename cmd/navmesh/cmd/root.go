package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "navmesh",
	Short: "build, stitch and query layered any-angle navigation meshes",
	Long: `navmesh is the command-line companion to the polyanya-mesh package:
	- build a navmesh from a declarative YAML layer definition,
	- stitch or unstitch layers at shared boundary points,
	- save/load meshes to/from the binary .mesh format,
	- run point-to-point queries against a saved mesh,
	- generate a few synthetic fixtures for smoke-testing.`,
}

// Execute adds all child commands to RootCmd and executes it. Called once
// by main.main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
