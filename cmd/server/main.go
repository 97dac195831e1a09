package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	httpadapter "resume-enhancer/internal/adapter/http"
	"resume-enhancer/internal/adapter/repository"
	"resume-enhancer/internal/usecase"
	"resume-enhancer/pkg/ai"
	"resume-enhancer/pkg/ats"
	"resume-enhancer/pkg/infrastructure"
	"resume-enhancer/pkg/pdf"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	// The LLM credential is the one hard startup requirement.
	if os.Getenv("GROQ_API_KEY") == "" {
		log.Fatal("GROQ_API_KEY must be set")
	}

	aiClient, err := ai.NewClient()
	if err != nil {
		log.Fatalf("failed to create LLM client: %v", err)
	}

	extractor := pdf.NewExtractor()
	scorer := ats.NewScorer()
	renderer := infrastructure.NewChromedpRenderer("templates", filepath.Join("resume-data", "generated"))

	tasks := repository.NewTasksRepo()
	pipeline := usecase.NewPipeline(extractor, scorer, aiClient, renderer)

	timeout := usecase.DefaultPipelineTimeout
	if v := os.Getenv("PIPELINE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("invalid PIPELINE_TIMEOUT %q: %v", v, err)
		}
		timeout = d
	}
	runner := usecase.NewRunner(tasks, pipeline, timeout)

	app := fiber.New(fiber.Config{BodyLimit: 10 << 20})
	app.Use(cors.New())

	h := httpadapter.NewHandler(tasks, runner, pipeline)
	app.Get("/", h.Index)
	app.Post("/upload/", h.Upload)
	app.Get("/status/:id", h.Status)
	app.Get("/download/:id", h.Download)
	app.Post("/enhance-resume/", h.EnhanceSync)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("server listening on :%s (pipeline timeout %s)", port, timeout)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
