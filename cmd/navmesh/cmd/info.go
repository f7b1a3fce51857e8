package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// infoCmd represents the info command.
var infoCmd = &cobra.Command{
	Use:   "info NAVMESH",
	Short: "show summary information about a saved navmesh",
	Long: `Read a navigation mesh from its binary file and print its layer/vertex/
polygon counts, diagonal extent, search steps and query count. The query
count is not saved in the file, so a freshly loaded mesh reports 0.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m := loadMesh(args[0])
		s := m.Stats()
		fmt.Printf("layers:       %d\n", s.Layers)
		fmt.Printf("vertices:     %d\n", s.Vertices)
		fmt.Printf("polygons:     %d\n", s.Polygons)
		fmt.Printf("diagonal:     %.3f\n", s.Diagonal)
		fmt.Printf("search steps: %d\n", s.SearchSteps)
		fmt.Printf("scenarios run: %d\n", s.Scenarios)
		for i := range m.Layers {
			l := &m.Layers[i]
			fmt.Printf("  layer %d: %d vertices, %d polygons, offset=%v scale=%v cost=%.3f\n",
				i, len(l.Vertices), len(l.Polygons), l.Offset, l.Scale, l.Cost)
		}
	},
}

func init() {
	RootCmd.AddCommand(infoCmd)
}
