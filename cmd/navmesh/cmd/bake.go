package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// bakeCmd represents the bake command.
var bakeCmd = &cobra.Command{
	Use:   "bake NAVMESH",
	Short: "recompute a saved navmesh's BVH locators and island map",
	Long: `Load a navmesh, recompute every layer's point-location BVH and
connected-component island map, and save it back in place.

Useful after a stitch/unstitch pass done with external tooling, or simply
to refresh a file produced by an older navmesh build that predates an
island-map change.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		m := loadMesh(path)
		m.Bake()

		f, err := os.Create(path)
		check(err)
		defer f.Close()
		check(m.Encode(f))
		fmt.Printf("%s rebaked (%+v)\n", path, m.Stats())
	},
}

func init() {
	RootCmd.AddCommand(bakeCmd)
}
