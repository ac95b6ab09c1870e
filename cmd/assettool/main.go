// assettool inspects the showroom's model and panorama assets.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Faultbox/showroom/internal/assets"
	"github.com/Faultbox/showroom/internal/logger"
	"github.com/Faultbox/showroom/internal/model"
	"github.com/Faultbox/showroom/internal/viewer"
	"github.com/Faultbox/showroom/pkg/formats"
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
	case "doors":
		cmdDoors(args)
	case "tree":
		cmdTree(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`assettool - showroom asset utility

Usage:
  assettool <command> <path|url>

Commands:
  info <asset>    Detect the asset type and print a summary
  doors <model>   Show which nodes bind to the four door slots
  tree <model>    Print the model's node hierarchy

Examples:
  assettool info src/3d/Omoda.glb
  assettool doors http://localhost:5173/src/3d/Omoda.glb
  assettool info src/hdri/2.hdr`)
}

// fetch reads a file path or URL through the same fetcher the viewer uses.
func fetch(loc string) []byte {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	data, err := assets.NewFetcher("", nil).Fetch(ctx, loc, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return data
}

func loadModel(args []string, usage string) *model.Node {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: assettool "+usage)
		os.Exit(1)
	}
	root, err := formats.ParseGLB(fetch(args[0]))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return root
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: assettool info <asset>")
		os.Exit(1)
	}

	data := fetch(args[0])
	kind := assets.Sniff(data)
	fmt.Printf("Asset: %s\n", args[0])
	fmt.Printf("Size:  %d bytes\n", len(data))
	fmt.Printf("Type:  %s\n", kindName(kind))

	switch kind {
	case assets.KindGLB:
		root, err := formats.ParseGLB(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		nodes, meshes, tris := root.Stats()
		b := root.Bounds()
		fmt.Printf("Nodes: %d\nMeshes: %d\nTriangles: %d\n", nodes, meshes, tris)
		fmt.Printf("Bounds: %v .. %v\n", b.Min, b.Max)
	case assets.KindRadiance:
		img, err := formats.ParseRadiance(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Resolution: %dx%d\n", img.Width, img.Height)
		fmt.Printf("Peak luminance: %.2f\n", img.MaxLuminance())
	}
}

func kindName(k assets.Kind) string {
	if k == assets.KindUnknown {
		return "unknown"
	}
	return string(k)
}

func cmdDoors(args []string) {
	root := loadModel(args, "doors <model>")
	doors := viewer.Classify(root, viewer.DefaultDoorTable(), logger.Named("doors"))

	fmt.Printf("%-12s %s\n", "SLOT", "NODE")
	for _, s := range viewer.Slots {
		name := "-"
		if n := doors.Get(s); n != nil {
			name = n.Name
		}
		fmt.Printf("%-12s %s\n", s, name)
	}
	fmt.Printf("\n%d of %d doors bound\n", doors.Bound(), len(viewer.Slots))
}

func cmdTree(args []string) {
	root := loadModel(args, "tree <model>")
	printNode(root, 0)
}

func printNode(n *model.Node, depth int) {
	fmt.Printf("%s%s", strings.Repeat("  ", depth), n.Name)
	if len(n.Meshes) > 0 {
		fmt.Printf(" (%d meshes)", len(n.Meshes))
	}
	fmt.Println()
	for _, c := range n.Children {
		printNode(c, depth+1)
	}
}
