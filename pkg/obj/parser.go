// Package obj reads Wavefront style mesh files into a mesh.Model.
//
// Only the geometric subset is understood: comments (#), group starts
// (o, g), vertices (v) and faces (f). Other keywords are skipped. A
// malformed line never aborts the parse; it is logged, recorded in
// Result.Errors and parsing continues with the next line.
package obj

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/gopanels/pkg/mesh"
)

var (
	// ErrVertexArity is the cause for a v line without exactly 3 coordinates.
	ErrVertexArity = errors.New("vertex needs exactly 3 coordinates")
	// ErrFaceArity is the cause for an f line with fewer than 3 references.
	ErrFaceArity = errors.New("face needs at least 3 vertex references")
	// ErrFaceIndex is the cause for a face reference outside the vertex list.
	ErrFaceIndex = errors.New("face vertex index out of range")
)

// LineError describes a source line that could not be parsed
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("failed to parse line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Result is the outcome of a parse: the model built from every valid line
// plus the failures of every invalid one.
type Result struct {
	Model    *mesh.Model
	Errors   []*LineError
	Vertices int
}

// Parse reads a mesh file and returns its model
func Parse(filename string) (*Result, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// ParseReader parses mesh text from reader. The returned error is reserved
// for read failures; line level problems end up in Result.Errors.
func ParseReader(reader io.Reader) (*Result, error) {
	buffered := bufio.NewReader(reader)

	p := &parser{}
	for {
		line, err := buffered.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error reading mesh after line %d: %w", p.lineNumber, err)
		}
		if line == "" && err != nil {
			break
		}

		p.lineNumber++
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if lineErr := p.parseLine(line); lineErr != nil {
			failure := &LineError{Line: p.lineNumber, Text: line, Err: lineErr}
			slog.Warn("failed to parse line", "line", failure.Line, "text", failure.Text, "error", lineErr)
			p.errors = append(p.errors, failure)
		}
		if err != nil {
			break
		}
	}

	p.flushGroup()

	return &Result{
		Model:    mesh.NewModel(p.groups),
		Errors:   p.errors,
		Vertices: len(p.vertices),
	}, nil
}

// parser holds the state accumulated while reading one source
type parser struct {
	lineNumber int
	vertices   []mesh.Vertex
	faces      []mesh.Face
	groups     []mesh.Group
	label      string
	errors     []*LineError
}

func (p *parser) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	keyword, args := fields[0], fields[1:]
	if strings.HasPrefix(keyword, "#") {
		return nil
	}

	switch keyword {
	case "o", "g":
		p.flushGroup()
		p.label = strings.Join(args, " ")

	case "v":
		vertex, err := p.parseVertex(args)
		if err != nil {
			return err
		}
		p.vertices = append(p.vertices, vertex)

	case "f":
		face, err := p.parseFace(args)
		if err != nil {
			return err
		}
		p.faces = append(p.faces, face)
	}

	return nil
}

// flushGroup turns the pending faces into a group under the current label.
func (p *parser) flushGroup() {
	if len(p.faces) == 0 {
		return
	}
	p.groups = append(p.groups, mesh.Group{Label: p.label, Faces: p.faces})
	p.faces = nil
}

// parseVertex remaps the source axes (t0, t1, t2) to (t2, -t1, t0).
func (p *parser) parseVertex(args []string) (mesh.Vertex, error) {
	if len(args) != 3 {
		return mesh.Vertex{}, fmt.Errorf("%w: got %d", ErrVertexArity, len(args))
	}

	var coords [3]float64
	for i, arg := range args {
		value, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return mesh.Vertex{}, fmt.Errorf("invalid coordinate %q: %w", arg, err)
		}
		coords[i] = value
	}

	vertex := mesh.NewVertex(coords[2], -coords[1], coords[0])
	vertex.Line = p.lineNumber
	return vertex, nil
}

func (p *parser) parseFace(args []string) (mesh.Face, error) {
	if len(args) < 3 {
		return mesh.Face{}, fmt.Errorf("%w: got %d", ErrFaceArity, len(args))
	}

	vertices := make([]mesh.Vertex, 0, len(args))
	for _, arg := range args {
		vertex, err := p.resolve(arg)
		if err != nil {
			return mesh.Face{}, err
		}
		vertices = append(vertices, vertex)
	}

	return mesh.NewFace(vertices, p.lineNumber)
}

// resolve looks up a face reference such as "3", "-1" or "3/1/2". Only the
// first slash separated field is used. Positive indices are 1-based;
// non-positive ones count back from the end of the vertices read so far.
func (p *parser) resolve(ref string) (mesh.Vertex, error) {
	field, _, _ := strings.Cut(ref, "/")
	index, err := strconv.Atoi(field)
	if err != nil {
		return mesh.Vertex{}, fmt.Errorf("invalid vertex reference %q: %w", ref, err)
	}

	position := index - 1
	if index <= 0 {
		position = len(p.vertices) + index
	}
	if position < 0 || position >= len(p.vertices) {
		return mesh.Vertex{}, fmt.Errorf("%w: %d with %d vertices", ErrFaceIndex, index, len(p.vertices))
	}

	return p.vertices[position], nil
}
