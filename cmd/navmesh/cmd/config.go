package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// VertexDef is one vertex of a LayerDef, in the layer's own local
// coordinates.
type VertexDef struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// LayerDef is one layer of a MeshDef: a counter-clockwise polygon soup plus
// the read-time transform and cost multiplier applied to it.
type LayerDef struct {
	Vertices []VertexDef `yaml:"vertices"`
	Polygons [][]uint32  `yaml:"polygons"`
	Offset   [2]float32  `yaml:"offset"`
	Scale    [2]float32  `yaml:"scale"`
	Cost     float32     `yaml:"cost"`
}

// StitchDef names a weld between two layers at a list of world-coordinate
// point pairs, by layer index.
type StitchDef struct {
	LayerA uint8           `yaml:"layer_a"`
	LayerB uint8           `yaml:"layer_b"`
	Points [][2][2]float32 `yaml:"points"`
	OneWay bool            `yaml:"one_way"`
}

// MeshDef is the declarative, triangulation-free mesh description consumed
// by "navmesh build": a set of already-convex-decomposed layers (as a
// caller, or an OBJ import via "navmesh fixture --obj", would produce) plus
// the stitches joining them.
type MeshDef struct {
	// Layers is evaluated in order; a StitchDef's LayerA/LayerB index into
	// this slice.
	Layers []LayerDef `yaml:"layers"`
	// Stitches lists the cross-layer welds to apply, in order, after every
	// layer has been built.
	Stitches []StitchDef `yaml:"stitches"`
	// Delta is the point-location probe radius (navmesh.Mesh.Delta).
	Delta float32 `yaml:"delta"`
	// SearchSteps bounds the closest-point spiral search
	// (navmesh.Mesh.SearchSteps).
	SearchSteps uint32 `yaml:"search_steps"`
}

// defaultMeshDef returns a minimal, buildable single-layer unit-square
// mesh: a starting point a user edits rather than writes from scratch.
func defaultMeshDef() MeshDef {
	return MeshDef{
		Layers: []LayerDef{
			{
				Vertices: []VertexDef{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
				Polygons: [][]uint32{{0, 1, 2, 3}},
				Offset:   [2]float32{0, 0},
				Scale:    [2]float32{1, 1},
				Cost:     1,
			},
		},
		Delta:       0.01,
		SearchSteps: 3,
	}
}

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:   "config FILE",
	Short: "write a starter mesh definition in YAML format",
	Long: `Write a mesh definition file in YAML format, prefilled with a minimal
single-layer unit square, ready to edit into a real layout.

If FILE is not provided, 'navmesh.yml' is used.`,
	Run: func(cmd *cobra.Command, args []string) {
		path := "navmesh.yml"
		if len(args) >= 1 {
			path = args[0]
		}
		ok, err := confirmIfExists(path, fmt.Sprintf("file '%s' already exists, overwrite? [y/N]", path))
		if err != nil {
			fmt.Println("aborted,", err)
			return
		}
		if !ok {
			fmt.Println("aborted by user")
			return
		}
		check(marshalYAMLFile(path, defaultMeshDef()))
		fmt.Printf("mesh definition written to '%s'\n", path)
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
}
