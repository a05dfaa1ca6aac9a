package models

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/taigrr/scanraster/pkg/math3d"
)

// wavefrontIndices is the (v, vt, vn) key used to deduplicate vertices
// while assembling an indexed mesh from an OBJ's face list.
type wavefrontIndices struct {
	v, vt, vn int
}

// LoadOBJ parses the OBJ subset the pipeline's external mesh loader
// produces: "v x y z", "vt u v", "vn x y z", and triangle-only
// "f a/b/c d/e/f g/h/i" lines with 1-based indices. Vertices are
// deduplicated by their (v,vt,vn) triple. OBJ has no native per-vertex
// color, so every loaded vertex gets white (1,1,1).
func LoadOBJ(path string, shading Shading) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	var positions []math3d.Vec3
	var uvs []math3d.Vec2
	var normals []math3d.Vec3
	var faceIndices []wavefrontIndices

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				continue
			}
			x, _ := strconv.ParseFloat(fields[1], 64)
			y, _ := strconv.ParseFloat(fields[2], 64)
			z, _ := strconv.ParseFloat(fields[3], 64)
			positions = append(positions, math3d.V3(x, y, z))
		case "vt":
			if len(fields) < 3 {
				continue
			}
			u, _ := strconv.ParseFloat(fields[1], 64)
			v, _ := strconv.ParseFloat(fields[2], 64)
			uvs = append(uvs, math3d.V2(u, v))
		case "vn":
			if len(fields) < 4 {
				continue
			}
			x, _ := strconv.ParseFloat(fields[1], 64)
			y, _ := strconv.ParseFloat(fields[2], 64)
			z, _ := strconv.ParseFloat(fields[3], 64)
			normals = append(normals, math3d.V3(x, y, z))
		case "f":
			if len(fields) < 4 {
				continue
			}
			for _, tok := range fields[1:4] {
				wi, err := parseFaceVertex(tok)
				if err != nil {
					return nil, err
				}
				faceIndices = append(faceIndices, wi)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	indexMap := make(map[wavefrontIndices]int, len(faceIndices))
	var vertices []Vertex
	for _, wi := range faceIndices {
		if _, ok := indexMap[wi]; ok {
			continue
		}
		indexMap[wi] = len(vertices)
		vertices = append(vertices, Vertex{
			Position: positions[wi.v],
			RGB:      math3d.V3(1, 1, 1),
			UV:       uvs[wi.vt],
			Normal:   normals[wi.vn],
		})
	}

	triangles := make([]Triangle, 0, len(faceIndices)/3)
	for i := 0; i+2 < len(faceIndices); i += 3 {
		triangles = append(triangles, Triangle{
			V0: indexMap[faceIndices[i]],
			V1: indexMap[faceIndices[i+1]],
			V2: indexMap[faceIndices[i+2]],
		})
	}

	return NewMesh(vertices, triangles, shading), nil
}

// parseFaceVertex splits one "a/b/c" face-vertex token into its
// (position, uv, normal) indices, converting from the file's 1-based
// numbering to 0-based.
func parseFaceVertex(tok string) (wavefrontIndices, error) {
	parts := strings.Split(tok, "/")
	if len(parts) != 3 {
		return wavefrontIndices{}, fmt.Errorf("malformed face vertex %q: want a/b/c", tok)
	}
	v, err := strconv.Atoi(parts[0])
	if err != nil {
		return wavefrontIndices{}, fmt.Errorf("face vertex index %q: %w", tok, err)
	}
	vt, err := strconv.Atoi(parts[1])
	if err != nil {
		return wavefrontIndices{}, fmt.Errorf("face uv index %q: %w", tok, err)
	}
	vn, err := strconv.Atoi(parts[2])
	if err != nil {
		return wavefrontIndices{}, fmt.Errorf("face normal index %q: %w", tok, err)
	}
	return wavefrontIndices{v: v - 1, vt: vt - 1, vn: vn - 1}, nil
}
