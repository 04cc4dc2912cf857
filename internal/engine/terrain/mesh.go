package terrain

// BuildMesh builds the lit triangle-strip mesh for g.
func BuildMesh(g *Grid, opts MeshOptions) (*Mesh, error) {
	strip, err := BuildStrip(g, opts.RowOrder)
	if err != nil {
		return nil, err
	}

	vertices, stats, err := ApplyNormals(strip, opts.Color, opts.LastTriangle)
	if err != nil {
		return nil, err
	}

	bounds := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	for i := range vertices {
		updateBounds(&bounds, vertices[i].Position)
	}

	return &Mesh{
		Vertices: vertices,
		Topology: TriangleStrip,
		Bounds:   bounds,
		Normals:  stats,
	}, nil
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
