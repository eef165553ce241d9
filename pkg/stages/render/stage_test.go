package render

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/user/deckshow/pkg/adapters/logger"
	"github.com/user/deckshow/pkg/deck"
	"github.com/user/deckshow/pkg/export"
	"github.com/user/deckshow/pkg/mocks"
	"github.com/user/deckshow/pkg/pipeline"
	"github.com/user/deckshow/pkg/ports"
)

func renderOptions(format export.Format, slides []deck.Slide) export.Options {
	pages := make([]int, 0, len(slides))
	for _, s := range slides {
		pages = append(pages, s.Index)
	}
	return export.Options{
		Format:     format,
		BaseURL:    "http://localhost:3030",
		Slides:     slides,
		Pages:      pages,
		Output:     "out." + string(format),
		Width:      1920,
		Height:     1080,
		Scale:      2,
		RouterMode: export.RouterHistory,
		TimeoutMs:  2000,
		WaitUntil:  ports.WaitUntilNetworkIdle,
	}
}

// quietPage returns a page whose stabilization scripts all succeed.
func quietPage() *mocks.Page {
	return &mocks.Page{
		EvaluateFunc: func(expression string) (any, error) {
			if strings.Contains(expression, "data-waitfor") {
				return []any{}, nil
			}
			return nil, nil
		},
	}
}

type testDeps struct {
	fs         *mocks.FileSystem
	pdfTool    *mocks.PDFTool
	deckWriter *mocks.DeckWriter
	progress   *mocks.Progress
}

func newTestStage() (*Stage, *testDeps) {
	deps := &testDeps{
		fs:         mocks.NewFileSystem(),
		pdfTool:    mocks.NewPDFTool(),
		deckWriter: mocks.NewDeckWriter(),
		progress:   &mocks.Progress{},
	}
	stage := New(deps.fs, deps.pdfTool, deps.deckWriter, deps.progress, logger.NewNoop())
	return stage, deps
}

func metaSlides() []deck.Slide {
	return []deck.Slide{
		{Index: 1, Title: "A", TitleLevel: 1, Frontmatter: map[string]any{
			deck.KeyAuthor: "X", deck.KeyInfo: "About", deck.KeyKeywords: "go,slides",
		}},
		{Index: 2, Title: "B", TitleLevel: 2},
		{Index: 3, Title: "C", TitleLevel: 1},
	}
}

func TestRenderPDF_OnePiece(t *testing.T) {
	stage, deps := newTestStage()
	page := quietPage()
	page.PDFFunc = func(opts ports.PDFOptions) ([]byte, error) {
		if opts.Width != 1920 || opts.Height != 1080 {
			t.Errorf("PDF size = %dx%d", opts.Width, opts.Height)
		}
		return []byte("%PDF-doc"), nil
	}
	page.QuerySelectorAllFunc = func(selector string) ([]ports.Element, error) {
		els := make([]ports.Element, 0, 3)
		for i := 1; i <= 3; i++ {
			id := fmt.Sprintf("%d-0", i)
			els = append(els, &mocks.Element{
				AttributeFunc: func(name string) (string, error) { return id, nil },
			})
		}
		return els, nil
	}

	opts := renderOptions(export.FormatPDF, metaSlides())
	opts.WithTOC = true

	result, err := stage.Execute(context.Background(), pipeline.RenderInput{Page: page, Opts: opts})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Pages != 3 {
		t.Errorf("Pages = %d, want 3", result.Pages)
	}
	if data, ok := deps.fs.GetFile("out.pdf"); !ok || string(data) != "%PDF-doc" {
		t.Error("pdf not written")
	}

	meta, ok := deps.pdfTool.Metadata["out.pdf"]
	if !ok {
		t.Fatal("metadata not applied")
	}
	if meta.Title != "A" || meta.Author != "X" || meta.Subject != "About" {
		t.Errorf("meta = %+v", meta)
	}
	if len(meta.Keywords) != 2 {
		t.Errorf("keywords = %v", meta.Keywords)
	}

	outline, ok := deps.pdfTool.Outlines["out.pdf"]
	if !ok {
		t.Fatal("outline not applied")
	}
	// A(p1) nests B(p2); C(p3) is a sibling of A.
	if len(outline) != 2 {
		t.Fatalf("outline roots = %d, want 2", len(outline))
	}
	if outline[0].Title != "A" || outline[0].Page != 1 {
		t.Errorf("outline[0] = %+v", outline[0])
	}
	if len(outline[0].Children) != 1 || outline[0].Children[0].Title != "B" {
		t.Errorf("outline[0].Children = %+v", outline[0].Children)
	}
	if outline[1].Title != "C" || outline[1].Page != 3 {
		t.Errorf("outline[1] = %+v", outline[1])
	}
}

func TestRenderPDF_PerSlideMerges(t *testing.T) {
	stage, deps := newTestStage()
	page := quietPage()

	opts := renderOptions(export.FormatPDF, metaSlides())
	opts.PerSlide = true

	result, err := stage.Execute(context.Background(), pipeline.RenderInput{Page: page, Opts: opts})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Pages != 3 {
		t.Errorf("Pages = %d, want 3", result.Pages)
	}
	if len(deps.pdfTool.Merged) != 1 {
		t.Fatalf("expected one merge, got %d", len(deps.pdfTool.Merged))
	}
	merge := deps.pdfTool.Merged[0]
	if merge[0] != "out.pdf" || len(merge) != 4 {
		t.Errorf("merge = %v", merge)
	}
}

func TestRenderPNG_PerSlide(t *testing.T) {
	stage, deps := newTestStage()
	page := quietPage()

	opts := renderOptions(export.FormatPNG, metaSlides()[:2])
	opts.Output = "shots"
	opts.PerSlide = true

	result, err := stage.Execute(context.Background(), pipeline.RenderInput{Page: page, Opts: opts})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Pages != 2 {
		t.Errorf("Pages = %d, want 2", result.Pages)
	}
	for _, name := range []string{"shots/01.png", "shots/02.png"} {
		if _, ok := deps.fs.GetFile(name); !ok {
			t.Errorf("missing %s; files: %v", name, fileNames(deps.fs))
		}
	}
}

func TestRenderPNG_OnePiece(t *testing.T) {
	stage, deps := newTestStage()
	page := quietPage()
	page.QuerySelectorAllFunc = func(selector string) ([]ports.Element, error) {
		var els []ports.Element
		for _, id := range []string{"1-0", "2-0"} {
			id := id
			els = append(els, &mocks.Element{
				AttributeFunc: func(name string) (string, error) { return id, nil },
			})
		}
		return els, nil
	}

	opts := renderOptions(export.FormatPNG, metaSlides()[:2])
	opts.Output = "shots"

	result, err := stage.Execute(context.Background(), pipeline.RenderInput{Page: page, Opts: opts})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Pages != 2 {
		t.Errorf("Pages = %d, want 2", result.Pages)
	}
	// Without clicks the container id reduces to the slide number.
	for _, name := range []string{"shots/1.png", "shots/2.png"} {
		if _, ok := deps.fs.GetFile(name); !ok {
			t.Errorf("missing %s; files: %v", name, fileNames(deps.fs))
		}
	}
}

func TestRenderPNG_PerSlideWithClicks(t *testing.T) {
	stage, deps := newTestStage()
	page := quietPage()
	page.EvaluateFunc = func(expression string) (any, error) {
		switch {
		case strings.Contains(expression, "getStepInfo"):
			return map[string]any{
				"no": float64(1), "clicks": float64(0),
				"clicksTotal": float64(1), "hasNext": true,
			}, nil
		case strings.Contains(expression, "data-waitfor"):
			return []any{}, nil
		default:
			return nil, nil
		}
	}

	opts := renderOptions(export.FormatPNG, metaSlides()[:1])
	opts.Output = "shots"
	opts.PerSlide = true
	opts.WithClicks = true

	result, err := stage.Execute(context.Background(), pipeline.RenderInput{Page: page, Opts: opts})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Pages != 2 {
		t.Errorf("Pages = %d, want 2 click states", result.Pages)
	}
	for _, name := range []string{"shots/01-0.png", "shots/01-1.png"} {
		if _, ok := deps.fs.GetFile(name); !ok {
			t.Errorf("missing %s; files: %v", name, fileNames(deps.fs))
		}
	}
}

func TestRenderPPTX(t *testing.T) {
	stage, deps := newTestStage()
	page := quietPage()

	slides := metaSlides()[:2]
	slides[1].Note = "hi"
	opts := renderOptions(export.FormatPPTX, slides)

	result, err := stage.Execute(context.Background(), pipeline.RenderInput{Page: page, Opts: opts})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Pages != 2 {
		t.Errorf("Pages = %d, want 2", result.Pages)
	}

	spec, ok := deps.deckWriter.Written["out.pptx"]
	if !ok {
		t.Fatal("pptx not written")
	}
	if spec.Meta.Title != "A" || spec.Meta.Author != "X" {
		t.Errorf("meta = %+v", spec.Meta)
	}
	if spec.LayoutWidth != 1920 || spec.LayoutHeight != 1080 {
		t.Errorf("layout = %dx%d", spec.LayoutWidth, spec.LayoutHeight)
	}
	if len(spec.Slides) != 2 {
		t.Fatalf("slides = %d", len(spec.Slides))
	}
	if spec.Slides[1].Notes != "hi" {
		t.Errorf("notes = %q, want hi", spec.Slides[1].Notes)
	}
}

func TestRenderMarkdown(t *testing.T) {
	stage, deps := newTestStage()
	page := quietPage()

	slides := metaSlides()[:2]
	slides[1].Note = "remember this"
	opts := renderOptions(export.FormatMarkdown, slides)
	opts.Output = "bundle/deck.md"

	result, err := stage.Execute(context.Background(), pipeline.RenderInput{Page: page, Opts: opts})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Pages != 2 {
		t.Errorf("Pages = %d, want 2", result.Pages)
	}

	data, ok := deps.fs.GetFile("bundle/deck.md")
	if !ok {
		t.Fatalf("markdown not written; files: %v", fileNames(deps.fs))
	}
	content := string(data)
	if !strings.Contains(content, "![A](./01.png)") {
		t.Errorf("missing first image line in %q", content)
	}
	if !strings.Contains(content, "\n---\n\n") {
		t.Error("sections should be separated by a rule")
	}
	if !strings.Contains(content, "remember this") {
		t.Error("note should follow its slide's images")
	}
	if _, ok := deps.fs.GetFile("bundle/01.png"); !ok {
		t.Error("images should land next to the markdown file")
	}
}

func fileNames(fs *mocks.FileSystem) []string {
	var names []string
	for name := range fs.GetAllFiles() {
		names = append(names, name)
	}
	return names
}
