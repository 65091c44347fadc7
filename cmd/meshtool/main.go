// meshtool is a CLI utility for inspecting meshes and running mesh pack jobs.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Faultbox/meshcut/internal/combiner"
	"github.com/Faultbox/meshcut/internal/config"
	"github.com/Faultbox/meshcut/internal/logger"
	"github.com/Faultbox/meshcut/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "count":
		cmdCount(args)
	case "pack":
		cmdPack(args)
	case "init":
		cmdInit(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - mesh combining, occlusion culling and area cutting

Usage:
  meshtool <command> [options]

Commands:
  info <mesh.stl|mesh.asset>         Show mesh information
  count [-config job.yaml]           Count vertices, triangles and materials of a job
  pack [-config job.yaml] [options]  Combine, cull and cut a job's scene
  init <job.yaml>                    Write a default job config

Pack options:
  -debug            Enable debug logging
  -out <dir>        Override output directory
  -format <fmt>     Override output format (asset, stl)

Examples:
  meshtool info generated/mesh/town/stone.asset
  meshtool init town.yaml
  meshtool pack -config town.yaml -format stl`)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool info <mesh.stl|mesh.asset>")
		os.Exit(1)
	}

	model, err := formats.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	m := model.Mesh

	var uv []string
	if len(m.UV1) > 0 {
		uv = append(uv, "uv1")
	}
	if m.HasUV2() {
		uv = append(uv, "uv2")
	}
	if len(uv) == 0 {
		uv = append(uv, "none")
	}

	fmt.Printf("Mesh:      %s\n", m.Name)
	if model.ID != "" {
		fmt.Printf("ID:        %s\n", model.ID)
	}
	fmt.Printf("Vertices:  %d\n", m.VertexCount())
	fmt.Printf("Triangles: %d\n", m.TriangleCount())
	center, size := m.Bounds.Center(), m.Bounds.Size()
	fmt.Printf("Bounds:    min (%.3f, %.3f, %.3f) max (%.3f, %.3f, %.3f)\n",
		m.Bounds.Min.X, m.Bounds.Min.Y, m.Bounds.Min.Z,
		m.Bounds.Max.X, m.Bounds.Max.Y, m.Bounds.Max.Z)
	fmt.Printf("Center:    (%.3f, %.3f, %.3f)\n", center.X, center.Y, center.Z)
	fmt.Printf("Size:      %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
	fmt.Printf("UV:        %s\n", strings.Join(uv, ", "))

	if len(model.Submeshes) > 0 {
		fmt.Println()
		fmt.Println("Submeshes:")
		for i, s := range model.Submeshes {
			material := s.Material
			if material == "" {
				material = "(none)"
			}
			fmt.Printf("  %2d  %-20s %d triangles\n", i, material, len(s.Triangles)/3)
		}
	}
}

func cmdCount(args []string) {
	fs := flag.NewFlagSet("count", flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	fs.Parse(args)

	cfg, err := config.Load("", flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tally, err := combiner.Count(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	fmt.Printf("Objects:   %d\n", tally.Objects)
	fmt.Printf("Vertices:  %d\n", tally.Vertices)
	fmt.Printf("Triangles: %d\n", tally.Triangles)
	fmt.Printf("Materials: %d\n", len(tally.Materials))
	for _, m := range tally.Materials {
		fmt.Printf("  %s\n", m)
	}
}

func cmdPack(args []string) {
	fs := flag.NewFlagSet("pack", flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	fs.Parse(args)

	cfg, err := config.Load("", flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	report, err := combiner.New(cfg, logger.Named("combiner")).Run()

	for _, o := range report.Outputs {
		fmt.Printf("  %-7s %-30s %8d tris  %s\n", o.Kind, o.Name, o.Triangles, o.Path)
	}
	fmt.Printf("\nWrote %d meshes from %d objects (%d skipped)\n",
		len(report.Outputs), report.Sources.Objects, len(report.Skipped))

	if err != nil {
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func cmdInit(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool init <job.yaml>")
		os.Exit(1)
	}

	path := args[0]
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(os.Stderr, "Error: %s already exists\n", path)
		os.Exit(1)
	}

	if err := config.Default().SaveTo(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}
