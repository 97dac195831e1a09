package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"resume-enhancer/pkg/infrastructure"
)

// Dev tool: render a plain-text resume straight to PDF, bypassing the
// pipeline. Useful for iterating on templates/resume.html.
func main() {
	var (
		tplDir = flag.String("templates", "templates", "directory holding resume.html")
		outDir = flag.String("out", filepath.Join("resume-data", "generated"), "output directory")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <resume.txt>\n", os.Args[0])
		os.Exit(2)
	}

	text, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("reading %s: %v", flag.Arg(0), err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	r := infrastructure.NewChromedpRenderer(*tplDir, *outDir)
	path, err := r.RenderText(ctx, string(text))
	if err != nil {
		log.Fatalf("render failed: %v", err)
	}
	fmt.Println(path)
}
