package stl

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gopanels/pkg/geometry"
	"github.com/philipparndt/gopanels/pkg/panel"
)

const asciiSquare = `solid front
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 1 1 0
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 1 0
      vertex 0 1 0
    endloop
  endfacet
endsolid front
solid back piece
  facet normal 0 0 -1
    outer loop
      vertex 0 0 1
      vertex 1 x 1
      vertex 1 1 1
    endloop
  endfacet
  facet normal 0 0 -1
    outer loop
      vertex 0 0 1
      vertex 1 1 1
      vertex 0 1 1
    endloop
  endfacet
endsolid back piece
`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestParseASCII(t *testing.T) {
	result, err := Parse(writeFile(t, "square.stl", []byte(asciiSquare)))
	require.NoError(t, err)

	groups := result.Model.Groups
	require.Len(t, groups, 2)
	assert.Equal(t, "front", groups[0].Label)
	assert.Len(t, groups[0].Faces, 2)
	assert.Equal(t, 2, groups[0].Faces[0].Line)
	assert.Equal(t, geometry.NewVector3(1, 0, 0), groups[0].Faces[0].Vertices[1].Position)

	// the facet with a bad coordinate is dropped, the rest of the solid stays
	assert.Equal(t, "back piece", groups[1].Label)
	assert.Len(t, groups[1].Faces, 1)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 21, result.Errors[0].Line)
	assert.ErrorIs(t, result.Errors[1], ErrFacetVertices)

	panels := panel.FromModel(result.Model)
	assert.Len(t, panels[0].OuterEdges(), 4)
}

func binarySTL(t *testing.T, header string, triangles [][3][3]float32) []byte {
	t.Helper()
	var buf bytes.Buffer
	h := make([]byte, headerSize)
	copy(h, header)
	buf.Write(h)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(len(triangles))))
	for _, tri := range triangles {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, [3]float32{0, 0, 1}))
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, tri))
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(0)))
	}
	return buf.Bytes()
}

func TestParseBinary(t *testing.T) {
	// a header starting with "solid" must still be detected as binary
	data := binarySTL(t, "solid exported", [][3][3]float32{
		{{0, 0, 0}, {2, 0, 0}, {2, 2, 0}},
		{{0, 0, 0}, {2, 2, 0}, {0, 2, 0}},
	})
	result, err := Parse(writeFile(t, "square.stl", data))
	require.NoError(t, err)

	require.Len(t, result.Model.Groups, 1)
	group := result.Model.Groups[0]
	assert.Equal(t, "solid exported", group.Label)
	require.Len(t, group.Faces, 2)
	assert.Equal(t, 2, group.Faces[1].Line)
	assert.Equal(t, 6, result.Vertices)

	p := panel.FromModel(result.Model)[0]
	assert.InDelta(t, 8.0, p.Perimeter(), 1e-9)
}

func TestParseBinaryTruncated(t *testing.T) {
	data := binarySTL(t, "part", [][3][3]float32{{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}})
	_, err := Parse(writeFile(t, "broken.stl", data[:len(data)-10]))
	assert.ErrorIs(t, err, ErrBinarySize)
}

func TestParseBinaryCountExceedsData(t *testing.T) {
	tests := []struct {
		name  string
		count uint32
		extra int
	}{
		{"huge count", 0xFFFFFFFF, triangleSize},
		{"count one too many", 2, triangleSize},
		{"no triangle data", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]byte, headerSize+4+tt.extra)
			copy(data, "garbage")
			binary.LittleEndian.PutUint32(data[headerSize:], tt.count)

			_, err := Parse(writeFile(t, "garbage.stl", data))
			assert.ErrorIs(t, err, ErrBinarySize)
		})
	}
}

func TestParseBinaryShorterThanHeader(t *testing.T) {
	_, err := Parse(writeFile(t, "tiny.stl", []byte("not an stl")))
	assert.ErrorIs(t, err, ErrBinarySize)
}

func TestParseASCIILongLine(t *testing.T) {
	source := strings.Replace(asciiSquare, "endsolid front\n", "endsolid front\n"+strings.Repeat(" ", 1<<20)+"\n", 1)
	result, err := Parse(writeFile(t, "long.stl", []byte(source)))
	require.NoError(t, err)

	require.Len(t, result.Model.Groups, 2)
	assert.Equal(t, 22, result.Errors[0].Line)
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.stl"))
	assert.Error(t, err)
}
