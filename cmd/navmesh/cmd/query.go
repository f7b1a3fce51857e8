package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arl/polyanya-mesh/navmesh"
)

var queryFromVal, queryToVal string

// queryCmd represents the query command.
var queryCmd = &cobra.Command{
	Use:   "query NAVMESH",
	Short: "find the taut path between two points in a saved navmesh",
	Long: `Load a navmesh and run a single point-to-point query against it, printing
the resulting polyline, its cost-weighted length, and the layer each point
lies on.

--from and --to are "x,y" (search every layer) or "x,y,layer" (pin to one).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m := loadMesh(args[0])

		from, err := parseCoords(queryFromVal)
		check(err)
		to, err := parseCoords(queryToVal)
		check(err)

		path, ok := m.Path(from, to)
		if !ok {
			fmt.Println("no path")
			return
		}
		fmt.Printf("length: %.4f\n", path.Length)
		for _, lp := range path.PathWithLayers {
			fmt.Printf("  (%.3f, %.3f) layer %d\n", lp.Point.X, lp.Point.Y, lp.Layer)
		}
	},
}

// parseCoords parses "x,y" or "x,y,layer" into a navmesh.Coords.
func parseCoords(s string) (navmesh.Coords, error) {
	parts, err := splitFloats(s)
	if err != nil {
		return navmesh.Coords{}, err
	}
	switch len(parts) {
	case 2:
		return navmesh.AnyLayer(navmesh.Vec2{X: float32(parts[0]), Y: float32(parts[1])}), nil
	case 3:
		return navmesh.OnLayer(navmesh.Vec2{X: float32(parts[0]), Y: float32(parts[1])}, int(parts[2])), nil
	default:
		return navmesh.Coords{}, fmt.Errorf("malformed point %q, want x,y or x,y,layer", s)
	}
}

func init() {
	RootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVar(&queryFromVal, "from", "", "start point, x,y or x,y,layer (required)")
	queryCmd.Flags().StringVar(&queryToVal, "to", "", "end point, x,y or x,y,layer (required)")
}
