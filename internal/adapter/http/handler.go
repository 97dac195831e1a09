package http

import (
	"io"
	"log"
	"strconv"

	"resume-enhancer/internal/adapter/repository"
	"resume-enhancer/internal/domain"
	"resume-enhancer/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handler struct {
	repo     *repository.TasksRepo
	runner   *usecase.Runner
	pipeline *usecase.Pipeline
}

func NewHandler(repo *repository.TasksRepo, runner *usecase.Runner, p *usecase.Pipeline) *Handler {
	return &Handler{repo: repo, runner: runner, pipeline: p}
}

// Index answers the liveness probe the original frontend expects.
func (h *Handler) Index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Intelligent Resume Enhancement System API is running."})
}

// Upload accepts a PDF resume and returns a task id immediately; the
// enhancement runs in the background and is observed via Status.
func (h *Handler) Upload(c *fiber.Ctx) error {
	data, err := readResume(c)
	if err != nil {
		return badRequest(c, err)
	}

	task := h.repo.Create()
	h.runner.Launch(task.ID, data)

	log.Printf("http: accepted upload, task %s", task.ID)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"task_id": task.ID.String()})
}

type statusResponse struct {
	TaskID string                    `json:"task_id"`
	Status domain.TaskStatus         `json:"status"`
	Result *domain.EnhancementResult `json:"result,omitempty"`
	Error  string                    `json:"error,omitempty"`
}

// Status reports the task's current state and, once terminal, its result
// or error message.
func (h *Handler) Status(c *fiber.Ctx) error {
	task, ok := h.lookup(c)
	if !ok {
		return notFound(c, "unknown task id")
	}

	resp := statusResponse{TaskID: task.ID.String(), Status: task.Status}
	if task.Status.Terminal() {
		resp.Result = task.Result
		resp.Error = task.Error
	}
	return c.JSON(resp)
}

// Download streams the rendered PDF of a completed task together with the
// before/after score headers.
func (h *Handler) Download(c *fiber.Ctx) error {
	task, ok := h.lookup(c)
	if !ok {
		return notFound(c, "unknown task id")
	}
	if task.Status != domain.StatusCompleted || task.Result == nil || task.Result.PDFPath == "" {
		return notFound(c, "no enhanced PDF available for this task")
	}

	setScoreHeaders(c, task.Result)
	return c.Download(task.Result.PDFPath, "enhanced_resume.pdf")
}

// EnhanceSync is the synchronous variant: it runs the whole pipeline inside
// the request and streams the enhanced PDF back.
func (h *Handler) EnhanceSync(c *fiber.Ctx) error {
	data, err := readResume(c)
	if err != nil {
		return badRequest(c, err)
	}

	state, err := h.pipeline.Run(c.Context(), data, nil)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	setScoreHeaders(c, state.Result())
	return c.Download(state.RenderedPath, "enhanced_resume.pdf")
}

func (h *Handler) lookup(c *fiber.Ctx) (domain.Task, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.Task{}, false
	}
	return h.repo.Get(id)
}

// readResume pulls the uploaded file out of the multipart form and rejects
// anything not declared as a PDF.
func readResume(c *fiber.Ctx) ([]byte, error) {
	fh, err := c.FormFile("resume")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "'resume' file not found in form data")
	}
	if ct := fh.Header.Get("Content-Type"); ct != "application/pdf" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid file type, only PDF is accepted")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "uploaded file is empty or invalid")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil || len(data) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "uploaded file is empty or invalid")
	}
	return data, nil
}

func badRequest(c *fiber.Ctx, err error) error {
	msg := err.Error()
	if fe, ok := err.(*fiber.Error); ok {
		msg = fe.Message
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msg})
}

func setScoreHeaders(c *fiber.Ctx, res *domain.EnhancementResult) {
	c.Set("X-Original-ATS-Score", strconv.Itoa(res.OriginalATSScore))
	c.Set("X-Enhanced-ATS-Score", strconv.Itoa(res.EnhancedATSScore))
	c.Set("Access-Control-Expose-Headers", "X-Original-ATS-Score, X-Enhanced-ATS-Score")
}
