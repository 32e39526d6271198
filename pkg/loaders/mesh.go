package loaders

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/dorahawk/voxelray/pkg/core"
	"github.com/dorahawk/voxelray/pkg/hittable"
	"github.com/dorahawk/voxelray/pkg/material"
)

// MeshData is the intermediate, material-free geometry a file loader
// produces: positions, optional per-vertex normals/UVs, and the triangle
// index list. LoadOBJ and LoadGLTF reject a mesh with fewer than 3 vertices
// as degenerate (spec.md §7: "mesh with < 3 vertices... skipped with a
// warning at load").
type MeshData struct {
	Positions []core.Vec3
	Normals   []core.Vec3 // may be empty; ToTriangles computes flat normals then
	UVs       []core.Vec2 // may be empty; ToTriangles defaults to (0,0)/(1,0)/(0,1)
	Indices   [][3]int
}

// ToTriangles builds explicit Triangle primitives from the loaded mesh
// data, all sharing mat.
func (d *MeshData) ToTriangles(mat material.Material) []*hittable.Triangle {
	triangles := make([]*hittable.Triangle, 0, len(d.Indices))
	for _, tri := range d.Indices {
		i0, i1, i2 := tri[0], tri[1], tri[2]
		if i0 >= len(d.Positions) || i1 >= len(d.Positions) || i2 >= len(d.Positions) {
			continue
		}
		t := hittable.NewTriangle(d.Positions[i0], d.Positions[i1], d.Positions[i2], mat)
		if i0 < len(d.Normals) && i1 < len(d.Normals) && i2 < len(d.Normals) {
			t.N0, t.N1, t.N2 = d.Normals[i0], d.Normals[i1], d.Normals[i2]
		}
		if i0 < len(d.UVs) && i1 < len(d.UVs) && i2 < len(d.UVs) {
			t.UV0, t.UV1, t.UV2 = d.UVs[i0], d.UVs[i1], d.UVs[i2]
		}
		triangles = append(triangles, t)
	}
	return triangles
}

// LoadOBJ parses a minimal Wavefront OBJ: "v x y z", "vn x y z",
// "vt u v" and triangulated "f" lines (vertex/texture/normal index
// triples, 1-based, negative indices unsupported).
func LoadOBJ(filename string) (*MeshData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open mesh file: %w", err)
	}
	defer file.Close()

	data := &MeshData{}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("parse vertex: %w", err)
			}
			data.Positions = append(data.Positions, v)
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("parse normal: %w", err)
			}
			data.Normals = append(data.Normals, n)
		case "vt":
			uv, err := parseVec2(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("parse texcoord: %w", err)
			}
			data.UVs = append(data.UVs, uv)
		case "f":
			idx, err := parseFaceIndices(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("parse face: %w", err)
			}
			for i := 1; i+1 < len(idx); i++ {
				data.Indices = append(data.Indices, [3]int{idx[0], idx[i], idx[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read mesh file: %w", err)
	}

	if len(data.Positions) < 3 {
		return nil, fmt.Errorf("degenerate mesh: %d vertices, need at least 3", len(data.Positions))
	}

	return data, nil
}

func parseVec3(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.NewVec3(x, y, z), nil
}

func parseVec2(fields []string) (core.Vec2, error) {
	if len(fields) < 2 {
		return core.Vec2{}, fmt.Errorf("expected 2 components, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return core.Vec2{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return core.Vec2{}, err
	}
	return core.NewVec2(x, y), nil
}

// parseFaceIndices parses "v", "v/vt" or "v/vt/vn" tokens, returning only
// the position index (0-based).
func parseFaceIndices(fields []string) ([]int, error) {
	indices := make([]int, len(fields))
	for i, f := range fields {
		parts := strings.Split(f, "/")
		v, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, err
		}
		indices[i] = v - 1
	}
	return indices, nil
}

// LoadGLTF loads every triangle-mode primitive of every mesh in a glTF/GLB
// document into one MeshData, reading POSITION/NORMAL/TEXCOORD_0 accessors
// and the triangle index buffer.
// External buffers (URI-referenced, not embedded) are not supported.
func LoadGLTF(filename string) (*MeshData, error) {
	doc, err := gltf.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	data := &MeshData{}

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}

			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := readVec3Accessor(doc, posIdx)
			if err != nil {
				return nil, fmt.Errorf("read positions: %w", err)
			}
			base := len(data.Positions)
			data.Positions = append(data.Positions, positions...)

			if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
				normals, err := readVec3Accessor(doc, normIdx)
				if err != nil {
					return nil, fmt.Errorf("read normals: %w", err)
				}
				data.Normals = append(data.Normals, normals...)
			}

			if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
				uvs, err := readVec2Accessor(doc, uvIdx)
				if err != nil {
					return nil, fmt.Errorf("read uvs: %w", err)
				}
				data.UVs = append(data.UVs, uvs...)
			}

			if prim.Indices != nil {
				idx, err := readIndexAccessor(doc, *prim.Indices)
				if err != nil {
					return nil, fmt.Errorf("read indices: %w", err)
				}
				for i := 0; i+2 < len(idx); i += 3 {
					data.Indices = append(data.Indices, [3]int{base + idx[i], base + idx[i+1], base + idx[i+2]})
				}
			} else {
				for i := 0; i+2 < len(positions); i += 3 {
					data.Indices = append(data.Indices, [3]int{base + i, base + i + 1, base + i + 2})
				}
			}
		}
	}

	if len(data.Positions) < 3 {
		return nil, fmt.Errorf("degenerate gltf mesh: %d vertices, need at least 3", len(data.Positions))
	}

	return data, nil
}

func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]core.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	raw, err := readAccessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}
	count := accessor.Count
	out := make([]core.Vec3, count)
	for i := 0; i < count; i++ {
		off := i * 12
		out[i] = core.NewVec3(
			float64(readFloat32(raw[off:])),
			float64(readFloat32(raw[off+4:])),
			float64(readFloat32(raw[off+8:])),
		)
	}
	return out, nil
}

func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]core.Vec2, error) {
	accessor := doc.Accessors[accessorIdx]
	raw, err := readAccessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}
	count := accessor.Count
	out := make([]core.Vec2, count)
	for i := 0; i < count; i++ {
		off := i * 8
		out[i] = core.NewVec2(
			float64(readFloat32(raw[off:])),
			float64(readFloat32(raw[off+4:])),
		)
	}
	return out, nil
}

func readIndexAccessor(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	raw, err := readAccessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}
	count := accessor.Count
	out := make([]int, count)
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		for i := 0; i < count; i++ {
			out[i] = int(raw[i])
		}
	case gltf.ComponentUshort:
		for i := 0; i < count; i++ {
			off := i * 2
			out[i] = int(raw[off]) | int(raw[off+1])<<8
		}
	case gltf.ComponentUint:
		for i := 0; i < count; i++ {
			off := i * 4
			out[i] = int(raw[off]) | int(raw[off+1])<<8 | int(raw[off+2])<<16 | int(raw[off+3])<<24
		}
	default:
		return nil, fmt.Errorf("unsupported index component type: %v", accessor.ComponentType)
	}
	return out, nil
}

// readAccessorBytes returns the tightly-packed byte slice for accessor,
// embedded-buffer only (external URI-referenced buffers are unsupported).
func readAccessorBytes(doc *gltf.Document, accessor *gltf.Accessor) ([]byte, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}
	bv := doc.BufferViews[*accessor.BufferView]
	buf := doc.Buffers[bv.Buffer]
	if buf.Data == nil {
		return nil, fmt.Errorf("external gltf buffers are not supported")
	}

	componentSize := componentByteSize(accessor)
	stride := bv.ByteStride
	if stride == 0 {
		stride = componentSize
	}

	start := bv.ByteOffset + accessor.ByteOffset
	out := make([]byte, accessor.Count*componentSize)
	for i := 0; i < accessor.Count; i++ {
		src := buf.Data[start+i*stride : start+i*stride+componentSize]
		copy(out[i*componentSize:], src)
	}
	return out, nil
}

func componentByteSize(accessor *gltf.Accessor) int {
	components := 1
	switch accessor.Type {
	case gltf.AccessorVec2:
		components = 2
	case gltf.AccessorVec3:
		components = 3
	case gltf.AccessorVec4:
		components = 4
	}
	elemSize := 4
	switch accessor.ComponentType {
	case gltf.ComponentUbyte, gltf.ComponentByte:
		elemSize = 1
	case gltf.ComponentUshort, gltf.ComponentShort:
		elemSize = 2
	}
	return components * elemSize
}

func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
