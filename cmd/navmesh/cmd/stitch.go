package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arl/polyanya-mesh/navmesh"
)

var (
	stitchLayerA, stitchLayerB uint8
	stitchPointsVal            string
	stitchOneWayVal            bool
	stitchRemoveVal            bool
	stitchRemoveLayerVal       int
)

// stitchCmd represents the stitch command.
var stitchCmd = &cobra.Command{
	Use:   "stitch NAVMESH",
	Short: "weld or unweld layers in a saved navmesh",
	Long: `Load a navmesh, apply one stitch/unstitch operation, rebake and save it
back in place.

--points pairs up two layers' boundary vertices by world coordinate:
"x1,y1:x2,y2;x3,y3:x4,y4" stitches (x1,y1) in --layer-a to (x2,y2) in
--layer-b, and likewise for the second pair. --remove drops every stitch
in the mesh; --remove-layer N drops only the stitches touching layer N.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		m := loadMesh(path)

		switch {
		case stitchRemoveVal:
			m.RemoveStitches()
		case stitchRemoveLayerVal >= 0:
			check(m.RemoveStitchesToLayer(uint8(stitchRemoveLayerVal)))
		case stitchPointsVal != "":
			pairs, err := parseStitchPoints(stitchPointsVal)
			check(err)
			check(m.StitchAtPoints(stitchLayerA, stitchLayerB, pairs, stitchOneWayVal))
		default:
			fmt.Println("nothing to do: pass --points, --remove or --remove-layer")
			os.Exit(-1)
		}

		m.Bake()
		f, err := os.Create(path)
		check(err)
		defer f.Close()
		check(m.Encode(f))
		fmt.Printf("%s restitched (%+v)\n", path, m.Stats())
	},
}

// parseStitchPoints parses "x1,y1:x2,y2;x3,y3:x4,y4" into point pairs.
func parseStitchPoints(s string) ([][2]navmesh.Vec2, error) {
	groups := strings.Split(s, ";")
	pairs := make([][2]navmesh.Vec2, 0, len(groups))
	for _, g := range groups {
		halves := strings.Split(g, ":")
		if len(halves) != 2 {
			return nil, fmt.Errorf("malformed point pair %q, want x1,y1:x2,y2", g)
		}
		a, err := parseVec2(halves[0])
		if err != nil {
			return nil, err
		}
		b, err := parseVec2(halves[1])
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, [2]navmesh.Vec2{a, b})
	}
	return pairs, nil
}

func parseVec2(s string) (navmesh.Vec2, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return navmesh.Vec2{}, fmt.Errorf("malformed point %q, want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 32)
	if err != nil {
		return navmesh.Vec2{}, fmt.Errorf("malformed point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 32)
	if err != nil {
		return navmesh.Vec2{}, fmt.Errorf("malformed point %q: %w", s, err)
	}
	return navmesh.Vec2{X: float32(x), Y: float32(y)}, nil
}

func init() {
	RootCmd.AddCommand(stitchCmd)
	stitchCmd.Flags().Uint8Var(&stitchLayerA, "layer-a", 0, "first layer index")
	stitchCmd.Flags().Uint8Var(&stitchLayerB, "layer-b", 1, "second layer index")
	stitchCmd.Flags().StringVar(&stitchPointsVal, "points", "", "point pairs, x1,y1:x2,y2;...")
	stitchCmd.Flags().BoolVar(&stitchOneWayVal, "one-way", false, "stitch only from layer-a into layer-b")
	stitchCmd.Flags().BoolVar(&stitchRemoveVal, "remove", false, "remove every stitch in the mesh")
	stitchCmd.Flags().IntVar(&stitchRemoveLayerVal, "remove-layer", -1, "remove stitches touching this layer index")
}
