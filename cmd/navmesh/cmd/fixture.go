package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arl/gobj"

	"github.com/arl/polyanya-mesh/internal/arena"
	"github.com/arl/polyanya-mesh/navmesh"
)

var fixtureObjVal string

// fixtureCmd represents the fixture command.
var fixtureCmd = &cobra.Command{
	Use:   "fixture NAME OUTFILE",
	Short: "write a synthetic or OBJ-imported mesh for smoke-testing",
	Long: `Write one of the built-in synthetic meshes (NAME: ugrid, overlapping,
corner-nook, pillar-room) to OUTFILE, or, with --obj, import a single-layer
mesh from a 2D polygon soup in Wavefront OBJ format (NAME is then ignored,
pass "-").

OBJ import drops the z coordinate and derives adjacency automatically; it
does not triangulate non-convex faces, so every face in the file must
already be a convex, counter-clockwise polygon.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		name, out := args[0], args[1]

		var m *navmesh.Mesh
		if fixtureObjVal != "" {
			var err error
			m, err = meshFromOBJ(fixtureObjVal)
			check(err)
		} else {
			switch name {
			case "ugrid":
				m = arena.UGrid()
			case "overlapping":
				m = arena.OverlappingLayers()
			case "corner-nook":
				m = arena.CornerNook()
			case "pillar-room":
				m = arena.PillarRoom()
			default:
				fmt.Println("unknown fixture", name, "(want ugrid, overlapping, corner-nook, pillar-room)")
				os.Exit(-1)
			}
		}

		f, err := os.Create(out)
		check(err)
		defer f.Close()
		check(m.Encode(f))
		fmt.Printf("fixture written to '%s' (%+v)\n", out, m.Stats())
	},
}

// meshFromOBJ loads a 2D polygon soup from a Wavefront OBJ file and builds
// a single-layer mesh from it. Vertices are deduplicated by position
// (within navmesh.Epsilon) since gobj resolves each face to literal vertex
// values rather than shared indices.
func meshFromOBJ(path string) (*navmesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	of, err := gobj.Decode(f)
	if err != nil {
		return nil, err
	}

	var coords []navmesh.Vec2
	index := func(x, y float32) uint32 {
		p := navmesh.Vec2{X: x, Y: y}
		for i, c := range coords {
			if c.ApproxEqual(p) {
				return uint32(i)
			}
		}
		coords = append(coords, p)
		return uint32(len(coords) - 1)
	}

	verts := of.Verts()
	var rings [][]uint32
	for _, poly := range of.Polys() {
		ring := make([]uint32, len(poly))
		for i, v := range poly {
			vtx := verts[v]
			ring[i] = index(float32(vtx.X()), float32(vtx.Y()))
		}
		rings = append(rings, ring)
	}

	l, err := navmesh.NewLayerFromPolygons(coords, rings)
	if err != nil {
		return nil, err
	}
	m, err := navmesh.NewMesh([]*navmesh.Layer{l})
	if err != nil {
		return nil, err
	}
	m.Bake()
	return m, nil
}

func init() {
	RootCmd.AddCommand(fixtureCmd)
	fixtureCmd.Flags().StringVar(&fixtureObjVal, "obj", "", "import a 2D polygon soup from this OBJ file instead")
}
