package navmesh

import (
	"encoding/binary"
	"fmt"
	"io"
)

// meshSetMagic/meshSetVersion identify the on-disk .mesh file format: a
// magic/version-stamped file header, then one variable-length block per
// layer.
const (
	meshSetMagic   = 'P'<<24 | 'N'<<16 | 'M'<<8 | 'S' // "Polyanya NavMesh Set"
	meshSetVersion = 1
)

type fileHeader struct {
	Magic       int32
	Version     int32
	NumLayers   int32
	Delta       float32
	SearchSteps uint32
}

type layerHeader struct {
	NumVertices int32
	NumPolygons int32
	Offset      Vec2
	Scale       Vec2
	Cost        float32
}

// Encode writes m to w in the package's binary .mesh format: a file header,
// then each layer's header, vertices (coordinates + incidence lists) and
// polygons (vertex-index rings) in turn. Baked state (locator, islands) is
// not serialized; call Bake after Decode.
func (m *Mesh) Encode(w io.Writer) error {
	hdr := fileHeader{
		Magic:       meshSetMagic,
		Version:     meshSetVersion,
		NumLayers:   int32(len(m.Layers)),
		Delta:       m.Delta,
		SearchSteps: m.SearchSteps,
	}
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("navmesh: writing file header: %w", err)
	}
	for li := range m.Layers {
		if err := encodeLayer(w, &m.Layers[li]); err != nil {
			return fmt.Errorf("navmesh: writing layer %d: %w", li, err)
		}
	}
	return nil
}

func encodeLayer(w io.Writer, l *Layer) error {
	lhdr := layerHeader{
		NumVertices: int32(len(l.Vertices)),
		NumPolygons: int32(len(l.Polygons)),
		Offset:      l.Offset,
		Scale:       l.Scale,
		Cost:        l.Cost,
	}
	if err := binary.Write(w, binary.LittleEndian, &lhdr); err != nil {
		return err
	}
	for _, v := range l.Vertices {
		if err := binary.Write(w, binary.LittleEndian, v.Coords); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, int32(len(v.Polygons))); err != nil {
			return err
		}
		for _, p := range v.Polygons {
			if err := binary.Write(w, binary.LittleEndian, uint32(p)); err != nil {
				return err
			}
		}
	}
	for _, p := range l.Polygons {
		if err := binary.Write(w, binary.LittleEndian, int32(len(p.Vertices))); err != nil {
			return err
		}
		for _, vi := range p.Vertices {
			if err := binary.Write(w, binary.LittleEndian, vi); err != nil {
				return err
			}
		}
	}
	return nil
}

// Decode reads a Mesh previously written by Encode. The returned mesh is
// validated (as NewMesh/NewLayer would) but not baked; callers must call
// Bake before running queries.
func Decode(r io.Reader) (*Mesh, error) {
	var hdr fileHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("navmesh: reading file header: %w", err)
	}
	if hdr.Magic != meshSetMagic {
		return nil, newError(WrongMagic, "wrong magic number: %x", hdr.Magic)
	}
	if hdr.Version != meshSetVersion {
		return nil, newError(WrongVersion, "wrong version: %d, want %d", hdr.Version, meshSetVersion)
	}

	layers := make([]*Layer, hdr.NumLayers)
	for li := range layers {
		l, err := decodeLayer(r)
		if err != nil {
			return nil, fmt.Errorf("navmesh: reading layer %d: %w", li, err)
		}
		layers[li] = l
	}

	if len(layers) == 0 {
		return nil, newError(EmptyMesh, "mesh has no layers")
	}
	if len(layers) > MaxLayers {
		return nil, newError(TooManyLayers, "%d layers exceeds limit of %d", len(layers), MaxLayers)
	}
	// Not NewMesh: encoded incidence entries already carry their layer tags,
	// and re-tagging would turn stitched layer-0 entries into own entries.
	m := &Mesh{Layers: make([]Layer, len(layers))}
	for i, l := range layers {
		m.Layers[i] = *l
		m.Layers[i].Index = uint8(i)
	}
	m.Diagonal = m.computeDiagonal()
	m.Delta = hdr.Delta
	m.SearchSteps = hdr.SearchSteps
	return m, nil
}

func decodeLayer(r io.Reader) (*Layer, error) {
	var lhdr layerHeader
	if err := binary.Read(r, binary.LittleEndian, &lhdr); err != nil {
		return nil, err
	}

	vertices := make([]Vertex, lhdr.NumVertices)
	for vi := range vertices {
		var coords Vec2
		if err := binary.Read(r, binary.LittleEndian, &coords); err != nil {
			return nil, err
		}
		var n int32
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, err
		}
		polys := make([]PolyID, n)
		for pi := range polys {
			var raw uint32
			if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
				return nil, err
			}
			polys[pi] = PolyID(raw)
		}
		vertices[vi] = Vertex{Coords: coords, Polygons: polys, IsCorner: isBoundaryVertex(Vertex{Polygons: polys})}
	}

	polygons := make([]Polygon, lhdr.NumPolygons)
	for pi := range polygons {
		var n int32
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, err
		}
		verts := make([]uint32, n)
		for vi := range verts {
			if err := binary.Read(r, binary.LittleEndian, &verts[vi]); err != nil {
				return nil, err
			}
		}
		polygons[pi] = Polygon{Vertices: verts}
	}

	l, err := NewLayer(vertices, polygons)
	if err != nil {
		return nil, err
	}
	l.Offset, l.Scale, l.Cost = lhdr.Offset, lhdr.Scale, lhdr.Cost
	return l, nil
}
