package navmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackPolyID(t *testing.T) {
	id := PackPolyID(3, 42)
	assert.Equal(t, uint8(3), id.Layer())
	assert.Equal(t, uint32(42), id.Polygon())
	assert.False(t, id.IsSentinel())
}

func TestSentinelPolyID(t *testing.T) {
	assert.True(t, SentinelPolyID.IsSentinel())
	assert.Equal(t, uint8(0xFF), SentinelPolyID.Layer())
}

func TestWithLayer(t *testing.T) {
	id := PackPolyID(0, 7).WithLayer(5)
	assert.Equal(t, uint8(5), id.Layer())
	assert.Equal(t, uint32(7), id.Polygon())
	assert.True(t, SentinelPolyID.WithLayer(5).IsSentinel(), "WithLayer must leave the sentinel alone")
}
