package main

import (
	"context"
	"fmt"
	"io"

	"github.com/Carmen-Shannon/oxy-robot/engine/animation"
	"github.com/Carmen-Shannon/oxy-robot/engine/loader"
	"github.com/Carmen-Shannon/oxy-robot/engine/model"
	"github.com/Carmen-Shannon/oxy-robot/game"
)

func runInfo(ctx context.Context, w io.Writer, path string) error {
	res := loader.NewLoader(loader.BackendTypeGLTF, loader.WithWorkers(1)).LoadAsync(path).Wait(ctx)
	if res.Err != nil {
		return res.Err
	}
	printInfo(w, path, res.Model)
	return nil
}

func printInfo(w io.Writer, path string, m model.Model) {
	fmt.Fprintf(w, "File:    %s\n", path)
	fmt.Fprintf(w, "Name:    %s\n", m.Name())

	meshes := m.Meshes()
	var vertices, triangles int
	for _, mesh := range meshes {
		vertices += len(mesh.Vertices)
		triangles += len(mesh.Indices) / 3
	}
	fmt.Fprintf(w, "Meshes:  %d (%d vertices, %d triangles)\n", len(meshes), vertices, triangles)

	bones := 0
	if sk := m.Skeleton(); sk != nil {
		bones = len(sk.Bones)
	}
	fmt.Fprintf(w, "Bones:   %d\n", bones)

	clips := m.Animations()
	fmt.Fprintf(w, "Clips:   %d\n", len(clips))
	for _, clip := range clips {
		loop := animation.LoopRepeat
		if game.IsOneShot(clip.Name) {
			loop = animation.LoopOnce
		}
		fmt.Fprintf(w, "  %-12s %6.2fs  %s\n", clip.Name, clip.Duration, loop)
	}
}
