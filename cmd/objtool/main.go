// objtool is a CLI utility for inspecting OBJ meshes and viewer configs.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Faultbox/objscene/internal/config"
	"github.com/Faultbox/objscene/pkg/obj"
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
	case "check":
		cmdCheck(args)
	case "dump":
		cmdDump(args)
	case "scan", "ls":
		cmdScan(args)
	case "init-config":
		cmdInitConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objtool - OBJ mesh utility

Usage:
  objtool <command> [options]

Commands:
  info <file.obj>              Show pool sizes, vertex count and bounds
  check <file.obj>...          Parse and deindex, report the first error per file
  dump [-n N] <file.obj>       Print deindexed vertices (position, uv, normal)
  scan <dir>                   Check every .obj file under a directory
  init-config [-o path]        Write the default viewer config

Examples:
  objtool info models/island.obj
  objtool check models/*.obj
  objtool dump -n 6 models/tree.obj
  objtool init-config -o config.yaml`)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool info <file.obj>")
		os.Exit(1)
	}
	path := args[0]

	data, err := obj.ParseFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	positions, texCoords, normals := len(data.Positions), len(data.TexCoords), len(data.Normals)
	triangles := data.Triangles()

	mesh, err := obj.Deindex(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	lo, hi := mesh.Bounds()

	fmt.Printf("File:       %s\n", path)
	fmt.Printf("Positions:  %d\n", positions)
	fmt.Printf("TexCoords:  %d\n", texCoords)
	fmt.Printf("Normals:    %d\n", normals)
	fmt.Printf("Triangles:  %d\n", triangles)
	fmt.Printf("Vertices:   %d (%d floats, %.2f KB)\n",
		mesh.VertexCount, len(mesh.Vertices), float64(len(mesh.Vertices)*4)/1024)
	fmt.Printf("Bounds:     (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
		lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}

func cmdCheck(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool check <file.obj>...")
		os.Exit(1)
	}

	failed := 0
	for _, path := range args {
		if !checkFile(path) {
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "\n%d of %d files failed\n", failed, len(args))
		os.Exit(1)
	}
}

// checkFile prints one result line and reports success.
func checkFile(path string) bool {
	mesh, err := obj.Load(path)
	if err != nil {
		fmt.Printf("FAIL %s: %s\n", path, describe(err))
		return false
	}
	fmt.Printf("ok   %s (%d vertices)\n", path, mesh.VertexCount)
	return true
}

// describe renders load errors with their line or corner when available.
func describe(err error) string {
	var pe *obj.ParseError
	var ie *obj.IndexError
	switch {
	case errors.As(err, &pe):
		return fmt.Sprintf("line %d: %q: %v", pe.Line, pe.Text, pe.Err)
	case errors.As(err, &ie):
		return ie.Error()
	case errors.Is(err, obj.ErrFileNotFound):
		return "file not found"
	}
	return err.Error()
}

func cmdDump(args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	limit := fs.Int("n", 12, "Limit output to N vertices (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool dump [-n N] <file.obj>")
		os.Exit(1)
	}

	mesh, err := obj.Load(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", describe(err))
		os.Exit(1)
	}

	n := mesh.VertexCount
	if *limit > 0 && *limit < n {
		n = *limit
	}
	for i := 0; i < n; i++ {
		p, uv, nor := mesh.Position(i), mesh.TexCoord(i), mesh.Normal(i)
		fmt.Printf("%6d  p(%8.4f %8.4f %8.4f)  uv(%6.4f %6.4f)  n(%7.4f %7.4f %7.4f)\n",
			i, p[0], p[1], p[2], uv[0], uv[1], nor[0], nor[1], nor[2])
	}
	if n < mesh.VertexCount {
		fmt.Fprintf(os.Stderr, "\n(showing %d of %d vertices, use -n 0 for all)\n", n, mesh.VertexCount)
	}
}

func cmdScan(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool scan <dir>")
		os.Exit(1)
	}

	var paths []string
	err := filepath.WalkDir(args[0], func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".obj") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "No .obj files found")
		return
	}

	failed := 0
	for _, path := range paths {
		if !checkFile(path) {
			failed++
		}
	}
	fmt.Fprintf(os.Stderr, "\n(%d files, %d failed)\n", len(paths), failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func cmdInitConfig(args []string) {
	fs := flag.NewFlagSet("init-config", flag.ExitOnError)
	out := fs.String("o", "", "Output path (default: user config directory)")
	fs.Parse(args)

	cfg := config.Default()
	var err error
	path := *out
	if path == "" {
		path = filepath.Join(config.ConfigDir(), "config.yaml")
		err = cfg.Save()
	} else {
		err = cfg.SaveTo(path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote: %s\n", path)
}
