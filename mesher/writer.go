package mesher

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Format is a mesh file format.
type Format string

// Supported output formats.
const (
	FormatOBJ = Format("obj")
	FormatPLY = Format("ply")
)

// Write writes the mesh in the given format.
func Write(out io.Writer, p *Prototype, format Format) error {
	switch format {
	case FormatOBJ:
		return WriteOBJ(out, p)
	case FormatPLY:
		return WritePLY(out, p)
	default:
		return errors.Errorf("unsupported mesh format %q", format)
	}
}

// WriteOBJ writes the mesh as a Wavefront OBJ file with positions, normals and texture coordinates.
func WriteOBJ(out io.Writer, p *Prototype) error {
	w := bufio.NewWriter(out)
	if _, err := fmt.Fprintf(w, "# octmesh\n# vertices %d\n# triangles %d\n", len(p.Vertices), p.TriangleCount()); err != nil {
		return err
	}
	for _, v := range p.Vertices {
		if _, err := fmt.Fprintf(w, "v %f %f %f\n", v.Position.X, v.Position.Y, v.Position.Z); err != nil {
			return err
		}
	}
	for _, v := range p.Vertices {
		if _, err := fmt.Fprintf(w, "vt %f %f\n", v.U, v.V); err != nil {
			return err
		}
	}
	for _, v := range p.Vertices {
		if _, err := fmt.Fprintf(w, "vn %f %f %f\n", v.Normal.X, v.Normal.Y, v.Normal.Z); err != nil {
			return err
		}
	}
	for i := 0; i+2 < len(p.Faces); i += 3 {
		// obj indices are 1 based
		a, b, c := p.Faces[i]+1, p.Faces[i+1]+1, p.Faces[i+2]+1
		if _, err := fmt.Fprintf(w, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c); err != nil {
			return err
		}
	}
	return errors.Wrap(w.Flush(), "writing obj")
}

// WritePLY writes the mesh as an ASCII PLY file.
func WritePLY(out io.Writer, p *Prototype) error {
	w := bufio.NewWriter(out)
	_, err := fmt.Fprintf(w, "ply\n"+
		"format ascii 1.0\n"+
		"comment octmesh\n"+
		"element vertex %d\n"+
		"property float x\n"+
		"property float y\n"+
		"property float z\n"+
		"property float nx\n"+
		"property float ny\n"+
		"property float nz\n"+
		"property float u\n"+
		"property float v\n"+
		"element face %d\n"+
		"property list uchar int vertex_indices\n"+
		"end_header\n",
		len(p.Vertices),
		p.TriangleCount())
	if err != nil {
		return err
	}
	for _, v := range p.Vertices {
		_, err = fmt.Fprintf(w, "%f %f %f %f %f %f %f %f\n",
			v.Position.X, v.Position.Y, v.Position.Z,
			v.Normal.X, v.Normal.Y, v.Normal.Z,
			v.U, v.V)
		if err != nil {
			return err
		}
	}
	for i := 0; i+2 < len(p.Faces); i += 3 {
		if _, err := fmt.Fprintf(w, "3 %d %d %d\n", p.Faces[i], p.Faces[i+1], p.Faces[i+2]); err != nil {
			return err
		}
	}
	return errors.Wrap(w.Flush(), "writing ply")
}
