package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/BlockOG/ray-tracing/pkg/core"
)

// PLYData contains the geometry loaded from a PLY file
type PLYData struct {
	Vertices []core.Vec3
	Normals  []core.Vec3 // Empty when the file has no nx/ny/nz properties
	Faces    []int       // Triangle indices, 3 per triangle
}

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version  string
	Elements []PLYElement
}

// PLYElement is one element declaration and its properties, in file order
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string // Scalar type, or the element type for lists
	IsList   bool
	ListType string // Type of the list count
}

// LoadPLY loads a PLY file from disk
func LoadPLY(filename string) (*PLYData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// ReadPLY parses PLY data from a reader. Faces with more than three
// vertices are fan-split into triangles.
func ReadPLY(r io.Reader) (*PLYData, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var values valueReader
	switch header.Format {
	case "ascii":
		values = newASCIIReader(reader)
	case "binary_little_endian":
		values = &binaryReader{r: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryReader{r: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %s", header.Format)
	}

	data := &PLYData{}
	for _, element := range header.Elements {
		switch element.Name {
		case "vertex":
			err = readVertices(values, element, data)
		case "face":
			err = readFaces(values, element, data)
		default:
			err = skipElement(values, element)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s data: %w", element.Name, err)
		}
	}

	for _, index := range data.Faces {
		if index < 0 || index >= len(data.Vertices) {
			return nil, fmt.Errorf("face index %d out of bounds for %d vertices", index, len(data.Vertices))
		}
	}
	return data, nil
}

// parsePLYHeader reads the header lines up to and including end_header
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}

	magic, err := readHeaderLine(reader)
	if err != nil {
		return nil, err
	}
	if magic != "ply" {
		return nil, fmt.Errorf("not a PLY file")
	}

	for {
		line, err := readHeaderLine(reader)
		if err != nil {
			return nil, err
		}
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		switch parts[0] {
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line: %s", line)
			}
			header.Format = parts[1]
			header.Version = parts[2]

		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %s", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid %s count: %s", parts[1], parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})

		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("property before any element: %s", line)
			}
			prop, err := parsePLYProperty(parts)
			if err != nil {
				return nil, err
			}
			current := &header.Elements[len(header.Elements)-1]
			current.Properties = append(current.Properties, prop)

		case "comment", "obj_info":

		case "end_header":
			if header.Format == "" {
				return nil, fmt.Errorf("missing format line")
			}
			return header, nil

		default:
			return nil, fmt.Errorf("unknown header keyword: %s", parts[0])
		}
	}
}

func readHeaderLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return "", fmt.Errorf("unexpected end of header")
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// parsePLYProperty parses a property definition line
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) >= 5 && parts[1] == "list" {
		if typeSize(parts[2]) == 0 || typeSize(parts[3]) == 0 {
			return PLYProperty{}, fmt.Errorf("unknown list types: %s %s", parts[2], parts[3])
		}
		return PLYProperty{Name: parts[4], Type: parts[3], IsList: true, ListType: parts[2]}, nil
	}
	if len(parts) < 3 {
		return PLYProperty{}, fmt.Errorf("invalid property line: %s", strings.Join(parts, " "))
	}
	if typeSize(parts[1]) == 0 {
		return PLYProperty{}, fmt.Errorf("unknown property type: %s", parts[1])
	}
	return PLYProperty{Name: parts[2], Type: parts[1]}, nil
}

// typeSize returns the binary size of a PLY scalar type, or 0 if unknown
func typeSize(t string) int {
	switch t {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	}
	return 0
}

func readVertices(values valueReader, element PLYElement, data *PLYData) error {
	position := [3]int{-1, -1, -1}
	normal := [3]int{-1, -1, -1}
	for i, prop := range element.Properties {
		switch prop.Name {
		case "x":
			position[0] = i
		case "y":
			position[1] = i
		case "z":
			position[2] = i
		case "nx":
			normal[0] = i
		case "ny":
			normal[1] = i
		case "nz":
			normal[2] = i
		}
	}
	if position[0] < 0 || position[1] < 0 || position[2] < 0 {
		return fmt.Errorf("vertex element missing x, y or z")
	}
	hasNormals := normal[0] >= 0 && normal[1] >= 0 && normal[2] >= 0

	data.Vertices = make([]core.Vec3, 0, element.Count)
	if hasNormals {
		data.Normals = make([]core.Vec3, 0, element.Count)
	}

	row := make([]float64, len(element.Properties))
	for v := 0; v < element.Count; v++ {
		for i, prop := range element.Properties {
			if prop.IsList {
				if err := skipList(values, prop); err != nil {
					return err
				}
				continue
			}
			value, err := values.read(prop.Type)
			if err != nil {
				return fmt.Errorf("vertex %d: %w", v, err)
			}
			row[i] = value
		}
		data.Vertices = append(data.Vertices, core.NewVec3(
			float32(row[position[0]]), float32(row[position[1]]), float32(row[position[2]])))
		if hasNormals {
			data.Normals = append(data.Normals, core.NewVec3(
				float32(row[normal[0]]), float32(row[normal[1]]), float32(row[normal[2]])))
		}
	}
	return nil
}

func readFaces(values valueReader, element PLYElement, data *PLYData) error {
	indexProp := -1
	for i, prop := range element.Properties {
		if prop.IsList && (prop.Name == "vertex_indices" || prop.Name == "vertex_index") {
			indexProp = i
			break
		}
	}
	if indexProp < 0 {
		return fmt.Errorf("face element missing vertex_indices list")
	}

	data.Faces = make([]int, 0, element.Count*3)
	var polygon []int
	for f := 0; f < element.Count; f++ {
		for i, prop := range element.Properties {
			if i != indexProp {
				if err := skipProperty(values, prop); err != nil {
					return err
				}
				continue
			}

			count, err := values.read(prop.ListType)
			if err != nil {
				return fmt.Errorf("face %d: %w", f, err)
			}
			if count < 3 {
				return fmt.Errorf("face %d has %d vertices", f, int(count))
			}
			polygon = polygon[:0]
			for k := 0; k < int(count); k++ {
				index, err := values.read(prop.Type)
				if err != nil {
					return fmt.Errorf("face %d: %w", f, err)
				}
				polygon = append(polygon, int(index))
			}

			// Fan triangulation around the first vertex
			for k := 1; k+1 < len(polygon); k++ {
				data.Faces = append(data.Faces, polygon[0], polygon[k], polygon[k+1])
			}
		}
	}
	return nil
}

func skipElement(values valueReader, element PLYElement) error {
	for n := 0; n < element.Count; n++ {
		for _, prop := range element.Properties {
			if err := skipProperty(values, prop); err != nil {
				return err
			}
		}
	}
	return nil
}

func skipProperty(values valueReader, prop PLYProperty) error {
	if prop.IsList {
		return skipList(values, prop)
	}
	_, err := values.read(prop.Type)
	return err
}

func skipList(values valueReader, prop PLYProperty) error {
	count, err := values.read(prop.ListType)
	if err != nil {
		return err
	}
	for k := 0; k < int(count); k++ {
		if _, err := values.read(prop.Type); err != nil {
			return err
		}
	}
	return nil
}

// valueReader reads successive scalar values of the body
type valueReader interface {
	read(plyType string) (float64, error)
}

type asciiReader struct {
	scanner *bufio.Scanner
}

func newASCIIReader(r io.Reader) *asciiReader {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	return &asciiReader{scanner: scanner}
}

func (a *asciiReader) read(plyType string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	value, err := strconv.ParseFloat(a.scanner.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", plyType, a.scanner.Text())
	}
	return value, nil
}

type binaryReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryReader) read(plyType string) (float64, error) {
	size := typeSize(plyType)
	if size == 0 {
		return 0, fmt.Errorf("unknown type: %s", plyType)
	}
	buf := b.buf[:size]
	if _, err := io.ReadFull(b.r, buf); err != nil {
		if err == io.EOF {
			return 0, io.ErrUnexpectedEOF
		}
		return 0, err
	}

	switch plyType {
	case "char", "int8":
		return float64(int8(buf[0])), nil
	case "uchar", "uint8":
		return float64(buf[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	default:
		return math.Float64frombits(b.order.Uint64(buf)), nil
	}
}
