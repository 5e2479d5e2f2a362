package obj

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gopanels/pkg/geometry"
	"github.com/philipparndt/gopanels/pkg/mesh"
)

func parseString(t *testing.T, source string) *Result {
	t.Helper()
	result, err := ParseReader(strings.NewReader(source))
	require.NoError(t, err)
	return result
}

func TestParseVertexRemapsAxes(t *testing.T) {
	result := parseString(t, "v 1.0 2.0 3.0\nv 4 5 6\nv 7 8 9\nf 1 2 3\n")

	require.Empty(t, result.Errors)
	require.Len(t, result.Model.Groups, 1)
	first := result.Model.Groups[0].Faces[0].Vertices[0]
	assert.Equal(t, geometry.NewVector3(3.0, -2.0, 1.0), first.Position)
	assert.Equal(t, 1, first.Line)
	assert.Equal(t, 3, result.Vertices)
}

func TestParseFaceIndices(t *testing.T) {
	source := "v 1 0 0\nv 2 0 0\nv 3 0 0\nf 1 2 3\nf -1 -2 -3\n"
	result := parseString(t, source)

	require.Empty(t, result.Errors)
	faces := result.Model.Groups[0].Faces
	require.Len(t, faces, 2)

	z := func(f mesh.Face) []float64 {
		out := make([]float64, len(f.Vertices))
		for i, v := range f.Vertices {
			out[i] = v.Position.Z
		}
		return out
	}
	assert.Equal(t, []float64{1, 2, 3}, z(faces[0]))
	assert.Equal(t, []float64{3, 2, 1}, z(faces[1]))
	assert.Equal(t, 4, faces[0].Line)
	assert.Equal(t, 5, faces[1].Line)
}

func TestParseRelativeIndexUsesVerticesSoFar(t *testing.T) {
	source := "v 1 0 0\nv 2 0 0\nv 3 0 0\nf -3 -2 -1\nv 4 0 0\nf -3 -2 -1\n"
	result := parseString(t, source)

	faces := result.Model.Groups[0].Faces
	require.Len(t, faces, 2)
	assert.Equal(t, 1.0, faces[0].Vertices[0].Position.Z)
	assert.Equal(t, 2.0, faces[1].Vertices[0].Position.Z)
}

func TestParseFaceIgnoresTextureAndNormalIndices(t *testing.T) {
	source := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvn 0 0 1\nf 1/1/1 2//1 3/1\n"
	result := parseString(t, source)

	require.Empty(t, result.Errors)
	face := result.Model.Groups[0].Faces[0]
	assert.Equal(t, 1, face.Vertices[0].Line)
	assert.Equal(t, 2, face.Vertices[1].Line)
	assert.Equal(t, 3, face.Vertices[2].Line)
}

func TestParseGroups(t *testing.T) {
	source := strings.Join([]string{
		"# a comment",
		"v 0 0 0",
		"v 1 0 0",
		"v 0 1 0",
		"f 1 2 3",
		"o Left Arm",
		"o Right Arm",
		"f 1 2 3",
		"g Tail",
		"f 3 2 1",
		"f 1 3 2",
	}, "\n")
	result := parseString(t, source)

	require.Empty(t, result.Errors)
	groups := result.Model.Groups
	require.Len(t, groups, 3)
	assert.Equal(t, "", groups[0].Label)
	assert.Len(t, groups[0].Faces, 1)
	assert.Equal(t, "Right Arm", groups[1].Label)
	assert.Len(t, groups[1].Faces, 1)
	assert.Equal(t, "Tail", groups[2].Label)
	assert.Len(t, groups[2].Faces, 2)
}

func TestParseNoFacesNoGroups(t *testing.T) {
	result := parseString(t, "o Empty\nv 1 2 3\n")
	assert.Empty(t, result.Model.Groups)
	assert.Equal(t, 1, result.Vertices)
}

func TestParseLineErrorsAreRecoverable(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		cause error
	}{
		{"vertex with two coordinates", "v 1 2", ErrVertexArity},
		{"vertex with four coordinates", "v 1 2 3 4", ErrVertexArity},
		{"face index past end", "f 1 2 9", ErrFaceIndex},
		{"face index zero", "f 0 1 2", ErrFaceIndex},
		{"face index before start", "f -9 1 2", ErrFaceIndex},
		{"face with two references", "f 1 2", ErrFaceArity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := "v 0 0 0\nv 1 0 0\nv 0 1 0\n" + tt.line + "\nv 0 0 1\nf 1 2 4\n"
			result := parseString(t, source)

			require.Len(t, result.Errors, 1)
			lineErr := result.Errors[0]
			assert.Equal(t, 4, lineErr.Line)
			assert.Equal(t, tt.line, lineErr.Text)
			assert.ErrorIs(t, lineErr, tt.cause)

			require.Len(t, result.Model.Groups, 1)
			faces := result.Model.Groups[0].Faces
			require.Len(t, faces, 1)
			assert.Equal(t, 6, faces[0].Line)
		})
	}
}

func TestParseNonNumeric(t *testing.T) {
	result := parseString(t, "v 1 two 3\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 x 3\nf 1 2 3\n")

	require.Len(t, result.Errors, 2)
	assert.Equal(t, 1, result.Errors[0].Line)
	assert.Equal(t, 5, result.Errors[1].Line)
	assert.Contains(t, result.Errors[0].Error(), "line 1")
	assert.Equal(t, 3, result.Vertices)
	assert.Len(t, result.Model.Groups[0].Faces, 1)
}

func TestParseUnknownKeywordsIgnored(t *testing.T) {
	result := parseString(t, "mtllib a.mtl\nusemtl skin\ns off\n\n   \nv 0 0 0\n")
	assert.Empty(t, result.Errors)
	assert.Equal(t, 1, result.Vertices)
}

func TestParseTabsAndPadding(t *testing.T) {
	result := parseString(t, "  v\t1\t2  3  \n")
	require.Empty(t, result.Errors)
	assert.Equal(t, 1, result.Vertices)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.obj")
	require.NoError(t, os.WriteFile(path, []byte("o A\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0o644))

	result, err := Parse(path)
	require.NoError(t, err)
	require.Len(t, result.Model.Groups, 1)
	assert.Equal(t, "A", result.Model.Groups[0].Label)

	_, err = Parse(filepath.Join(t.TempDir(), "missing.obj"))
	assert.Error(t, err)
}

func TestParseLongLines(t *testing.T) {
	long := strings.Repeat("x", 2<<20)
	source := "v 0 0 0\nv 1 0 0\n# " + long + "\nv 0 1 0\nv " + long + " 1\nf 1 2 3\n"

	result := parseString(t, source)

	require.Len(t, result.Model.Groups, 1)
	require.Len(t, result.Model.Groups[0].Faces, 1)
	assert.Equal(t, 6, result.Model.Groups[0].Faces[0].Line)
	assert.Equal(t, 3, result.Vertices)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, 5, result.Errors[0].Line)
	assert.ErrorIs(t, result.Errors[0], ErrVertexArity)
}

func TestParseCRLFAndMissingFinalNewline(t *testing.T) {
	result := parseString(t, "o A\r\nv 1 2 3\r\nv 4 5 6\r\nv 7 8 9\r\nf 1 2 3")

	require.Empty(t, result.Errors)
	require.Len(t, result.Model.Groups, 1)
	assert.Equal(t, "A", result.Model.Groups[0].Label)
	require.Len(t, result.Model.Groups[0].Faces, 1)
	assert.Equal(t, 5, result.Model.Groups[0].Faces[0].Line)
}
