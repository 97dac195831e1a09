package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"resume-enhancer/internal/adapter/repository"
	"resume-enhancer/internal/domain"
	"resume-enhancer/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = "Experience: 5 years. Education: BS CS. Skills: Python."

type fakeExtractor struct{ text string }

func (f *fakeExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	return f.text, nil
}

type fakeScorer struct {
	scores []int
	calls  int
}

func (f *fakeScorer) Score(ctx context.Context, text string) (int, error) {
	f.calls++
	return f.scores[(f.calls-1)%len(f.scores)], nil
}

type fakeEnhancer struct{ calls int }

func (f *fakeEnhancer) Suggest(ctx context.Context, text string) (string, error) {
	f.calls++
	return "- use action verbs", nil
}

func (f *fakeEnhancer) Rewrite(ctx context.Context, text, suggestions string) (string, error) {
	f.calls++
	return "ENHANCED RESUME TEXT", nil
}

type fakeRenderer struct{ path string }

func (f *fakeRenderer) RenderText(ctx context.Context, text string) (string, error) {
	return f.path, nil
}

type testEnv struct {
	app      *fiber.App
	repo     *repository.TasksRepo
	enhancer *fakeEnhancer
	pdfPath  string
}

func newTestEnv(t *testing.T, extracted string) *testEnv {
	t.Helper()

	pdfPath := filepath.Join(t.TempDir(), "enhanced_resume.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.4 fake"), 0o644))

	repo := repository.NewTasksRepo()
	enhancer := &fakeEnhancer{}
	pipeline := usecase.NewPipeline(
		&fakeExtractor{text: extracted},
		&fakeScorer{scores: []int{40, 85}},
		enhancer,
		&fakeRenderer{path: pdfPath},
	)
	runner := usecase.NewRunner(repo, pipeline, 2*time.Second)

	app := fiber.New()
	h := NewHandler(repo, runner, pipeline)
	app.Get("/", h.Index)
	app.Post("/upload/", h.Upload)
	app.Get("/status/:id", h.Status)
	app.Get("/download/:id", h.Download)
	app.Post("/enhance-resume/", h.EnhanceSync)

	return &testEnv{app: app, repo: repo, enhancer: enhancer, pdfPath: pdfPath}
}

func uploadRequest(t *testing.T, path, contentType string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="resume"; filename="resume.pdf"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 fake resume bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

func TestIndex(t *testing.T) {
	env := newTestEnv(t, sampleResume)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	m := decodeJSON(t, resp)
	assert.Contains(t, m["message"], "running")
}

func TestUploadRejectsNonPDF(t *testing.T) {
	env := newTestEnv(t, sampleResume)

	resp, err := env.app.Test(uploadRequest(t, "/upload/", "text/plain"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	m := decodeJSON(t, resp)
	assert.Contains(t, m["error"], "PDF")
	assert.Zero(t, env.repo.Count())
}

func TestUploadRejectsMissingFile(t *testing.T) {
	env := newTestEnv(t, sampleResume)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("unrelated", "x"))
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, "/upload/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, env.repo.Count())
}

func TestUploadAndPollToCompletion(t *testing.T) {
	env := newTestEnv(t, sampleResume)

	resp, err := env.app.Test(uploadRequest(t, "/upload/", "application/pdf"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	m := decodeJSON(t, resp)
	id, ok := m["task_id"].(string)
	require.True(t, ok)
	require.NotEmpty(t, id)

	body := pollUntilTerminal(t, env, id)
	var status map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, string(domain.StatusCompleted), status["status"])

	result, ok := status["result"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 40, result["original_ats_score"])
	assert.EqualValues(t, 85, result["enhanced_ats_score"])
	assert.Equal(t, "ENHANCED RESUME TEXT", result["enhanced_resume"])
}

func TestShortResumeFailsWithoutLLM(t *testing.T) {
	env := newTestEnv(t, "too short")

	resp, err := env.app.Test(uploadRequest(t, "/upload/", "application/pdf"))
	require.NoError(t, err)
	m := decodeJSON(t, resp)
	id := m["task_id"].(string)

	body := pollUntilTerminal(t, env, id)
	var status map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, string(domain.StatusError), status["status"])
	assert.Contains(t, status["error"], "EXTRACTION_FAILED")
	assert.Zero(t, env.enhancer.calls)
}

func TestPollIdempotentAfterTerminal(t *testing.T) {
	env := newTestEnv(t, sampleResume)

	resp, err := env.app.Test(uploadRequest(t, "/upload/", "application/pdf"))
	require.NoError(t, err)
	id := decodeJSON(t, resp)["task_id"].(string)

	first := pollUntilTerminal(t, env, id)

	second := statusBody(t, env, id)
	third := statusBody(t, env, id)
	assert.Equal(t, first, second)
	assert.Equal(t, second, third)
}

func TestStatusUnknownID(t *testing.T) {
	env := newTestEnv(t, sampleResume)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/status/8c2e9a4e-8e4c-4d0b-9b5e-6a8a1f2a3b4c", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = env.app.Test(httptest.NewRequest(http.MethodGet, "/status/not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDownloadCompletedTask(t *testing.T) {
	env := newTestEnv(t, sampleResume)

	resp, err := env.app.Test(uploadRequest(t, "/upload/", "application/pdf"))
	require.NoError(t, err)
	id := decodeJSON(t, resp)["task_id"].(string)
	pollUntilTerminal(t, env, id)

	resp, err = env.app.Test(httptest.NewRequest(http.MethodGet, "/download/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "40", resp.Header.Get("X-Original-ATS-Score"))
	assert.Equal(t, "85", resp.Header.Get("X-Enhanced-ATS-Score"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "enhanced_resume.pdf")

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestDownloadPendingTaskIsNotFound(t *testing.T) {
	env := newTestEnv(t, sampleResume)
	task := env.repo.Create()

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/download/"+task.ID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEnhanceSync(t *testing.T) {
	env := newTestEnv(t, sampleResume)

	resp, err := env.app.Test(uploadRequest(t, "/enhance-resume/", "application/pdf"), 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "40", resp.Header.Get("X-Original-ATS-Score"))
	assert.Equal(t, "85", resp.Header.Get("X-Enhanced-ATS-Score"))
}

func TestEnhanceSyncShortResume(t *testing.T) {
	env := newTestEnv(t, "x")

	resp, err := env.app.Test(uploadRequest(t, "/enhance-resume/", "application/pdf"), 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	m := decodeJSON(t, resp)
	assert.Contains(t, m["error"], "EXTRACTION_FAILED")
}

func pollUntilTerminal(t *testing.T, env *testEnv, id string) []byte {
	t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		body := statusBody(t, env, id)
		var status map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &status))
		s := domain.TaskStatus(status["status"].(string))
		if s.Terminal() {
			return body
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("task %s never reached a terminal status", id)
	return nil
}

func statusBody(t *testing.T, env *testEnv, id string) []byte {
	t.Helper()

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/status/"+id, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return b
}
