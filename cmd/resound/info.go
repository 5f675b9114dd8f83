package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/resound-dev/resound/internal/engine/mesh"
	"github.com/resound-dev/resound/pkg/formats"
)

var infoCmd = &cobra.Command{
	Use:   "info [model]",
	Short: "Print model statistics without opening a window",
	Long:  "Show triangle count, bounding box, surface area, volume, centroid, and the display scale the viewer would apply.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	model, err := formats.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}
	m, err := mesh.FromModel(model)
	if err != nil {
		return err
	}

	fmt.Println("Model Information")
	fmt.Println("=================")
	if m.Name != "" {
		fmt.Printf("Name: %s\n", m.Name)
	}
	fmt.Printf("File: %s\n\n", args[0])

	fmt.Printf("Triangles: %d\n", m.TriangleCount())
	fmt.Printf("Surface Area: %.6f square units\n\n", surfaceArea(m))

	b := m.Bounds()
	size := b.Max.Sub(b.Min)
	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: (%.6f, %.6f, %.6f)\n", b.Min.X, b.Min.Y, b.Min.Z)
	fmt.Printf("  Max: (%.6f, %.6f, %.6f)\n", b.Max.X, b.Max.Y, b.Max.Z)
	fmt.Printf("  Size: (%.6f, %.6f, %.6f)\n\n", size.X, size.Y, size.Z)

	props, err := mesh.Analyze(m)
	if err != nil {
		if !errors.Is(err, mesh.ErrDegenerateVolume) {
			return err
		}
		fmt.Fprintln(os.Stderr, "Model is not a closed volume; volume and centroid are unavailable.")
		return nil
	}

	fmt.Printf("Volume: %.6f cubic units\n", props.Volume)
	fmt.Printf("Centroid: (%.6f, %.6f, %.6f)\n", props.Centroid.X, props.Centroid.Y, props.Centroid.Z)
	fmt.Printf("Display Scale: %.6f\n", props.DisplayScale())
	return nil
}

func surfaceArea(m *mesh.Mesh) float64 {
	var area float64
	for i := 0; i < m.TriangleCount(); i++ {
		v0, v1, v2 := m.Triangle(i)
		area += float64(v1.Sub(v0).Cross(v2.Sub(v0)).Length()) / 2
	}
	return area
}
