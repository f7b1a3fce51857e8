package navmesh

import "fmt"

// ErrorKind identifies the category of a MeshError.
type ErrorKind uint8

// Error kinds: construction errors from NewLayer/NewMesh and the file-format
// errors of Decode. Encode and Decode can also return I/O errors wrapped
// with fmt.Errorf, which are not MeshErrors. Query failures are instead
// reported as (Path{}, false), and
// internal degeneracies (NaN distances, zero-length intervals, duplicate
// path points) are absorbed silently, never surfaced.
const (
	// EmptyMesh means a layer was built with no vertices or no polygons.
	EmptyMesh ErrorKind = iota
	// TooManyPolygons means a layer would exceed MaxPolygonsPerLayer.
	TooManyPolygons
	// TooManyLayers means a mesh would exceed MaxLayers.
	TooManyLayers
	// InvalidVertex means a polygon referenced a vertex index out of range.
	InvalidVertex
	// MalformedPolygon means a polygon ring has fewer than 3 vertices, or
	// is not wound counter-clockwise.
	MalformedPolygon
	// WrongMagic means a serialized mesh file's magic number didn't match.
	WrongMagic
	// WrongVersion means a serialized mesh file's version didn't match.
	WrongVersion
)

func (k ErrorKind) String() string {
	switch k {
	case EmptyMesh:
		return "empty mesh"
	case TooManyPolygons:
		return "too many polygons"
	case TooManyLayers:
		return "too many layers"
	case InvalidVertex:
		return "invalid vertex reference"
	case MalformedPolygon:
		return "malformed polygon"
	case WrongMagic:
		return "wrong magic number"
	case WrongVersion:
		return "wrong version number"
	default:
		return "unknown error"
	}
}

// MeshError is returned by the mesh construction and (de)serialization
// functions.
type MeshError struct {
	Kind ErrorKind
	Msg  string
}

func (e *MeshError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func newError(kind ErrorKind, format string, args ...interface{}) *MeshError {
	return &MeshError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
