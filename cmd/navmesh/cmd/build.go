package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arl/polyanya-mesh/navmesh"
)

var buildInputVal string

// buildCmd represents the build command.
var buildCmd = &cobra.Command{
	Use:   "build OUTFILE",
	Short: "build a navmesh from a declarative YAML mesh definition",
	Long: `Build a navigation mesh from a YAML mesh definition (see 'navmesh config')
describing each layer as an already convex-decomposed polygon soup, plus the
stitches joining them. Saved to OUTFILE in the binary .mesh format, readable
with 'navmesh info'/'navmesh query' or navmesh.Decode.

This command does not triangulate or decompose raw level geometry - each
layer's polygons must already be convex and counter-clockwise wound.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out := args[0]
		check(fileExists(buildInputVal))

		var def MeshDef
		check(unmarshalYAMLFile(buildInputVal, &def))

		m, err := buildMesh(def)
		check(err)

		ok, err := confirmIfExists(out, fmt.Sprintf("file '%s' already exists, overwrite? [y/N]", out))
		check(err)
		if !ok {
			fmt.Println("aborted by user")
			return
		}

		f, err := os.Create(out)
		check(err)
		defer f.Close()
		check(m.Encode(f))
		fmt.Printf("navmesh written to '%s' (%+v)\n", out, m.Stats())
	},
}

// buildMesh assembles a Mesh from a MeshDef: one navmesh.NewLayerFromPolygons
// call per LayerDef, a Bake, then every StitchDef in order, and a second
// Bake if any stitch was applied.
func buildMesh(def MeshDef) (*navmesh.Mesh, error) {
	if len(def.Layers) == 0 {
		return nil, fmt.Errorf("mesh definition has no layers")
	}

	layers := make([]*navmesh.Layer, len(def.Layers))
	for i, ld := range def.Layers {
		coords := make([]navmesh.Vec2, len(ld.Vertices))
		for vi, v := range ld.Vertices {
			coords[vi] = navmesh.Vec2{X: v.X, Y: v.Y}
		}
		l, err := navmesh.NewLayerFromPolygons(coords, ld.Polygons)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		l.Offset = navmesh.Vec2{X: ld.Offset[0], Y: ld.Offset[1]}
		scale := ld.Scale
		if scale == ([2]float32{}) {
			scale = [2]float32{1, 1}
		}
		l.Scale = navmesh.Vec2{X: scale[0], Y: scale[1]}
		if ld.Cost == 0 {
			ld.Cost = 1
		}
		l.Cost = ld.Cost
		layers[i] = l
	}

	m, err := navmesh.NewMesh(layers)
	if err != nil {
		return nil, err
	}
	if def.Delta != 0 {
		m.Delta = def.Delta
	}
	if def.SearchSteps != 0 {
		m.SearchSteps = def.SearchSteps
	}
	m.Bake()

	for si, sd := range def.Stitches {
		pairs := make([][2]navmesh.Vec2, len(sd.Points))
		for pi, pt := range sd.Points {
			pairs[pi] = [2]navmesh.Vec2{
				{X: pt[0][0], Y: pt[0][1]},
				{X: pt[1][0], Y: pt[1][1]},
			}
		}
		if err := m.StitchAtPoints(sd.LayerA, sd.LayerB, pairs, sd.OneWay); err != nil {
			return nil, fmt.Errorf("stitch %d: %w", si, err)
		}
	}
	if len(def.Stitches) > 0 {
		m.Bake()
	}
	return m, nil
}

func init() {
	RootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVar(&buildInputVal, "input", "navmesh.yml", "mesh definition YAML file")
}
