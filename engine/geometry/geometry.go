// Package geometry builds procedural meshes in the engine vertex format: boxes, UV spheres
// and grid line lists. Every builder returns a model.ImportedMesh that uses material 0.
package geometry

import (
	"math"

	"github.com/Carmen-Shannon/oxy-robot/engine/model"

	"github.com/go-gl/mathgl/mgl32"
)

// boxFaces lists each face by outward normal and tangent (+U direction).
// The bitangent is normal x tangent, so (tangent, bitangent, normal) winds counter-clockwise.
var boxFaces = [6]struct{ normal, tangent mgl32.Vec3 }{
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}},
}

// Box builds an axis-aligned box centered on the origin with per-face normals, tangents and
// 0..1 UVs on every face.
//
// Parameters:
//   - width: size along X
//   - height: size along Y
//   - depth: size along Z
//   - color: vertex color applied to every vertex
//
// Returns:
//   - model.ImportedMesh: 24 vertices and 36 triangle indices
func Box(width, height, depth float32, color [4]float32) model.ImportedMesh {
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	vertices := make([]model.GPUSkinnedVertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range boxFaces {
		bitangent := f.normal.Cross(f.tangent)
		base := uint32(len(vertices))
		for _, c := range corners {
			p := f.normal.Add(f.tangent.Mul(c[0])).Add(bitangent.Mul(c[1]))
			var v model.GPUSkinnedVertex
			v.Position = [3]float32{p[0] * half[0], p[1] * half[1], p[2] * half[2]}
			v.Normal = f.normal
			v.TexCoord = [2]float32{(c[0] + 1) / 2, (c[1] + 1) / 2}
			v.Color = color
			v.Tangent = [4]float32{f.tangent[0], f.tangent[1], f.tangent[2], 1}
			vertices = append(vertices, v)
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return model.ImportedMesh{
		Name:        "box",
		Vertices:    vertices,
		Indices:     indices,
		BoundingMin: [3]float32{-half[0], -half[1], -half[2]},
		BoundingMax: half,
	}
}

// Sphere builds a UV sphere centered on the origin.
//
// Parameters:
//   - radius: sphere radius
//   - widthSegments: segments around the equator (minimum 3)
//   - heightSegments: segments from pole to pole (minimum 2)
//   - color: vertex color applied to every vertex
//
// Returns:
//   - model.ImportedMesh: (widthSegments+1)*(heightSegments+1) vertices
func Sphere(radius float32, widthSegments, heightSegments int, color [4]float32) model.ImportedMesh {
	widthSegments = max(3, widthSegments)
	heightSegments = max(2, heightSegments)

	vertices := make([]model.GPUSkinnedVertex, 0, (widthSegments+1)*(heightSegments+1))
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		theta := v * math.Pi
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := u * 2 * math.Pi

			n := mgl32.Vec3{
				float32(-math.Cos(phi) * math.Sin(theta)),
				float32(math.Cos(theta)),
				float32(math.Sin(phi) * math.Sin(theta)),
			}
			var vert model.GPUSkinnedVertex
			vert.Position = n.Mul(radius)
			vert.Normal = n
			vert.TexCoord = [2]float32{float32(u), float32(v)}
			vert.Color = color
			vert.Tangent = [4]float32{float32(math.Sin(phi)), 0, float32(math.Cos(phi)), 1}
			vertices = append(vertices, vert)
		}
	}

	row := uint32(widthSegments + 1)
	indices := make([]uint32, 0, widthSegments*heightSegments*6)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(iy)*row + uint32(ix) + 1
			b := uint32(iy)*row + uint32(ix)
			c := uint32(iy+1)*row + uint32(ix)
			d := uint32(iy+1)*row + uint32(ix) + 1
			// Each pole row collapses to a point, so skip its degenerate triangle.
			if iy != 0 {
				indices = append(indices, a, b, d)
			}
			if iy != heightSegments-1 {
				indices = append(indices, b, c, d)
			}
		}
	}

	return model.ImportedMesh{
		Name:        "sphere",
		Vertices:    vertices,
		Indices:     indices,
		BoundingMin: [3]float32{-radius, -radius, -radius},
		BoundingMax: [3]float32{radius, radius, radius},
	}
}

// Grid builds a line list on the XZ plane made of divisions+1 lines along each axis.
// The two lines through the origin use centerColor; the rest use lineColor.
//
// Parameters:
//   - size: edge length of the square grid
//   - divisions: number of cells per side
//   - centerColor: color of the axis lines
//   - lineColor: color of every other line
//
// Returns:
//   - model.ImportedMesh: two vertices per line, indexed as a line list
func Grid(size float32, divisions int, centerColor, lineColor [4]float32) model.ImportedMesh {
	divisions = max(1, divisions)
	half := size / 2
	step := size / float32(divisions)
	center := divisions / 2

	vertices := make([]model.GPUSkinnedVertex, 0, (divisions+1)*4)
	line := func(a, b mgl32.Vec3, color [4]float32) {
		for _, p := range [2]mgl32.Vec3{a, b} {
			var v model.GPUSkinnedVertex
			v.Position = p
			v.Normal = [3]float32{0, 1, 0}
			v.Color = color
			v.Tangent = [4]float32{1, 0, 0, 1}
			vertices = append(vertices, v)
		}
	}
	for i := 0; i <= divisions; i++ {
		k := -half + float32(i)*step
		color := lineColor
		if i == center && divisions%2 == 0 {
			color = centerColor
		}
		line(mgl32.Vec3{-half, 0, k}, mgl32.Vec3{half, 0, k}, color)
		line(mgl32.Vec3{k, 0, -half}, mgl32.Vec3{k, 0, half}, color)
	}

	indices := make([]uint32, len(vertices))
	for i := range indices {
		indices[i] = uint32(i)
	}

	return model.ImportedMesh{
		Name:        "grid",
		Vertices:    vertices,
		Indices:     indices,
		BoundingMin: [3]float32{-half, 0, -half},
		BoundingMax: [3]float32{half, 0, half},
	}
}
