package cmd

import (
	"os"

	"github.com/arl/polyanya-mesh/navmesh"
)

// loadMesh opens and decodes path, exiting the process on any error - every
// subcommand that operates on an existing .mesh file wants this same
// all-or-nothing behavior.
func loadMesh(path string) *navmesh.Mesh {
	check(fileExists(path))
	f, err := os.Open(path)
	check(err)
	defer f.Close()

	m, err := navmesh.Decode(f)
	check(err)
	return m
}
