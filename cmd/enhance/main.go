package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"resume-enhancer/internal/usecase"
	"resume-enhancer/pkg/ai"
	"resume-enhancer/pkg/ats"
	"resume-enhancer/pkg/infrastructure"
	"resume-enhancer/pkg/pdf"

	"github.com/joho/godotenv"
)

// CLI harness: run the enhancement pipeline against a local PDF without
// going through the HTTP server.
func main() {
	var (
		tplDir  = flag.String("templates", "templates", "directory holding resume.html")
		outDir  = flag.String("out", filepath.Join("resume-data", "generated"), "output directory for the rendered PDF")
		timeout = flag.Duration("timeout", 60*time.Second, "overall pipeline timeout")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <resume.pdf>\n", os.Args[0])
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("reading %s: %v", flag.Arg(0), err)
	}

	aiClient, err := ai.NewClient()
	if err != nil {
		log.Fatalf("failed to create LLM client: %v", err)
	}

	pipeline := usecase.NewPipeline(
		pdf.NewExtractor(),
		ats.NewScorer(),
		aiClient,
		infrastructure.NewChromedpRenderer(*tplDir, *outDir),
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	state, err := pipeline.Run(ctx, data, nil)
	if err != nil {
		log.Fatalf("pipeline failed: %v", err)
	}

	fmt.Printf("original ATS score: %d\n", state.OriginalScore)
	fmt.Printf("enhanced ATS score: %d\n", state.EnhancedScore)
	fmt.Printf("suggestions:\n%s\n\n", state.Suggestions)
	fmt.Printf("enhanced PDF: %s\n", state.RenderedPath)
}
