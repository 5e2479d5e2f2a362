// Package stl reads STL files into a mesh.Model so their outlines can be
// measured like any other panel source.
//
// ASCII files may hold several solids; each becomes a group labeled with
// the solid name. A binary file becomes a single group labeled with its
// header text. STL coordinates are used as they are.
package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/gopanels/pkg/mesh"
	"github.com/philipparndt/gopanels/pkg/obj"
)

const (
	headerSize   = 80
	triangleSize = 50
)

var (
	// ErrFacetVertices is the cause for a facet that does not have 3 vertices.
	ErrFacetVertices = errors.New("facet needs exactly 3 vertices")
	// ErrBinarySize is returned when a binary file is shorter or longer than
	// its triangle count says.
	ErrBinarySize = errors.New("binary STL size does not match triangle count")
)

// Parse reads an STL file and returns its model.
// It automatically detects whether the file is ASCII or binary format.
func Parse(filename string) (*obj.Result, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	if isBinary(data) {
		return parseBinary(data)
	}
	return parseASCII(bytes.NewReader(data))
}

// isBinary trusts the triangle count when it matches the file size, since
// some exporters start binary headers with "solid" too.
func isBinary(data []byte) bool {
	if len(data) >= headerSize+4 {
		count := binary.LittleEndian.Uint32(data[headerSize:])
		if int64(headerSize+4)+int64(count)*triangleSize == int64(len(data)) {
			return true
		}
	}
	return !bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid"))
}

// parseASCII parses an ASCII STL file
func parseASCII(reader io.Reader) (*obj.Result, error) {
	buffered := bufio.NewReader(reader)

	var (
		groups     []mesh.Group
		faces      []mesh.Face
		vertices   []mesh.Vertex
		lineErrors []*obj.LineError
		name       string
		facetLine  int
		lineNumber int
		count      int
	)

	fail := func(text string, err error) {
		lineErr := &obj.LineError{Line: lineNumber, Text: text, Err: err}
		slog.Warn("failed to parse line", "line", lineNumber, "text", text, "error", err)
		lineErrors = append(lineErrors, lineErr)
	}

	flush := func() {
		if len(faces) > 0 {
			groups = append(groups, mesh.Group{Label: name, Faces: faces})
			faces = nil
		}
	}

	for {
		line, readErr := buffered.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("error reading ASCII STL: %w", readErr)
		}
		if line == "" && readErr != nil {
			break
		}
		lineNumber++
		line = strings.TrimRight(line, "\r\n")
		fields := strings.Fields(line)

		if len(fields) == 0 {
			if readErr != nil {
				break
			}
			continue
		}

		switch fields[0] {
		case "solid":
			flush()
			name = strings.Join(fields[1:], " ")

		case "endsolid":
			flush()

		case "facet":
			facetLine = lineNumber
			vertices = vertices[:0]

		case "vertex":
			vertex, err := parseVertex(fields[1:])
			if err != nil {
				fail(line, err)
				continue
			}
			vertex.Line = lineNumber
			vertices = append(vertices, vertex)
			count++

		case "endfacet":
			if len(vertices) != 3 {
				fail(line, fmt.Errorf("%w: got %d", ErrFacetVertices, len(vertices)))
				continue
			}
			face, err := mesh.NewFace(append([]mesh.Vertex(nil), vertices...), facetLine)
			if err != nil {
				fail(line, err)
				continue
			}
			faces = append(faces, face)
		}
		if readErr != nil {
			break
		}
	}

	flush()

	return &obj.Result{Model: mesh.NewModel(groups), Errors: lineErrors, Vertices: count}, nil
}

func parseVertex(args []string) (mesh.Vertex, error) {
	if len(args) != 3 {
		return mesh.Vertex{}, fmt.Errorf("%w: got %d", obj.ErrVertexArity, len(args))
	}
	var coords [3]float64
	for i, arg := range args {
		value, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return mesh.Vertex{}, fmt.Errorf("invalid coordinate %q: %w", arg, err)
		}
		coords[i] = value
	}
	return mesh.NewVertex(coords[0], coords[1], coords[2]), nil
}

// parseBinary parses a binary STL file. Faces carry their 1-based facet
// number in place of a source line.
func parseBinary(data []byte) (*obj.Result, error) {
	if len(data) < headerSize+4 {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrBinarySize, len(data))
	}
	name := strings.TrimSpace(string(bytes.TrimRight(data[:headerSize], "\x00")))

	triangleCount := binary.LittleEndian.Uint32(data[headerSize:])
	expected := int64(headerSize+4) + int64(triangleCount)*triangleSize
	if expected != int64(len(data)) {
		return nil, fmt.Errorf("%w: %d triangles need %d bytes, got %d", ErrBinarySize, triangleCount, expected, len(data))
	}

	reader := bytes.NewReader(data[headerSize+4:])
	faces := make([]mesh.Face, 0, triangleCount)
	for i := uint32(0); i < triangleCount; i++ {
		var record struct {
			Normal    [3]float32
			Vertices  [3][3]float32
			Attribute uint16
		}
		if err := binary.Read(reader, binary.LittleEndian, &record); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}

		vertices := make([]mesh.Vertex, 3)
		for j, v := range record.Vertices {
			vertices[j] = mesh.NewVertex(float64(v[0]), float64(v[1]), float64(v[2]))
		}
		if !finite(vertices) {
			slog.Warn("skipping triangle with invalid coordinates", "triangle", i)
			continue
		}
		face, err := mesh.NewFace(vertices, int(i)+1)
		if err != nil {
			return nil, err
		}
		faces = append(faces, face)
	}

	var groups []mesh.Group
	if len(faces) > 0 {
		groups = []mesh.Group{{Label: name, Faces: faces}}
	}
	return &obj.Result{Model: mesh.NewModel(groups), Vertices: 3 * len(faces)}, nil
}

func finite(vertices []mesh.Vertex) bool {
	for _, v := range vertices {
		p := v.Position
		for _, c := range []float64{p.X, p.Y, p.Z} {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return false
			}
		}
	}
	return true
}
