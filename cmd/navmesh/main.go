package main

import "github.com/arl/polyanya-mesh/cmd/navmesh/cmd"

func main() {
	cmd.Execute()
}
