package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
)

// ChromedpRenderer turns enhanced resume text into a PDF via headless
// Chrome. The text is laid out with templates/resume.html and printed to
// A4 with PrintToPDF.
type ChromedpRenderer struct {
	tplDir string
	outDir string
}

func NewChromedpRenderer(tplDir, outDir string) *ChromedpRenderer {
	return &ChromedpRenderer{tplDir: tplDir, outDir: outDir}
}

type renderData struct {
	Lines []renderLine
}

type renderLine struct {
	Text    string
	Heading bool
}

// RenderText renders the text to a PDF file and returns its path.
func (r *ChromedpRenderer) RenderText(ctx context.Context, text string) (string, error) {
	html, err := r.buildHTML(text)
	if err != nil {
		return "", err
	}

	pdfBytes, err := r.printToPDF(ctx, html)
	if err != nil {
		return "", err
	}
	if len(pdfBytes) == 0 || !strings.HasPrefix(string(pdfBytes), "%PDF") {
		return "", fmt.Errorf("invalid PDF output (len=%d)", len(pdfBytes))
	}

	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return "", err
	}
	outPath := filepath.Join(r.outDir, fmt.Sprintf("enhanced_resume_%s.pdf", uuid.New().String()))
	if err := os.WriteFile(outPath, pdfBytes, 0o644); err != nil {
		return "", err
	}
	return outPath, nil
}

// buildHTML splits the text into lines and marks short all-caps or
// colon-terminated lines as section headings for the template.
func (r *ChromedpRenderer) buildHTML(text string) (string, error) {
	tplPath := filepath.Join(r.tplDir, "resume.html")
	tpl, err := template.ParseFiles(tplPath)
	if err != nil {
		return "", err
	}

	data := renderData{}
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		heading := len(line) < 40 &&
			(strings.HasSuffix(line, ":") || line == strings.ToUpper(line))
		data.Lines = append(data.Lines, renderLine{Text: line, Heading: heading})
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *ChromedpRenderer) printToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p := os.Getenv("CHROME_PATH"); p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	ctx2, cancel2 := context.WithTimeout(cctx, 60*time.Second)
	defer cancel2()

	tmpDir, err := os.MkdirTemp("", "resume-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, err
	}

	var pdfBuf []byte
	err = chromedp.Run(ctx2,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm -> inches: 8.27 x 11.69
			pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}
