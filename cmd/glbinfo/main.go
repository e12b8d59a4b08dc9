// Package main is a small inspection tool that validates a GLB file's
// container structure and prints its header fields and JSON document.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/Twinklebear/webgpu-0-to-gltf/pkg/glb"
)

func main() {
	jsonOnly := flag.Bool("json", false, "Print only the JSON document")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <file.glb>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *jsonOnly); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(path string, jsonOnly bool) error {
	c, err := glb.ParseFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if !jsonOnly {
		fmt.Printf("file:        %s\n", path)
		fmt.Printf("version:     %d\n", c.Version)
		fmt.Printf("length:      %d bytes\n", c.Length)
		fmt.Printf("json chunk:  %d bytes\n", c.JSONLength)
		fmt.Printf("bin chunk:   %d bytes\n", c.BinaryLength)
		fmt.Printf("meshes:      %d\n", len(c.Document.Meshes))
		fmt.Printf("materials:   %d\n", len(c.Document.Materials))
		fmt.Printf("nodes:       %d\n", len(c.Document.Nodes))
		fmt.Printf("accessors:   %d\n", len(c.Document.Accessors))
		fmt.Printf("bufferViews: %d\n", len(c.Document.BufferViews))
		fmt.Printf("images:      %d\n", len(c.Document.Images))
		fmt.Println()
	}

	pretty, err := json.MarshalIndent(c.Document, "", "  ")
	if err != nil {
		return fmt.Errorf("formatting document: %w", err)
	}
	fmt.Println(string(pretty))
	return nil
}
