// Package pdftool post-processes browser-rendered PDFs using pdfcpu:
// document metadata, per-slide merge, and outline bookmarks.
package pdftool

import (
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"

	"github.com/user/deckshow/pkg/ports"
)

// Tool implements ports.PDFTool.
type Tool struct{}

// New creates a new Tool.
func New() *Tool {
	return &Tool{}
}

// SetMetadata rewrites path with meta applied to the document info.
func (t *Tool) SetMetadata(path string, meta ports.PDFMeta) error {
	properties := map[string]string{}
	if meta.Title != "" {
		properties["Title"] = meta.Title
	}
	if meta.Subject != "" {
		properties["Subject"] = meta.Subject
	}
	if meta.Author != "" {
		properties["Author"] = meta.Author
	}
	if len(meta.Keywords) > 0 {
		properties["Keywords"] = strings.Join(meta.Keywords, ", ")
	}
	if len(properties) == 0 {
		return nil
	}
	if err := api.AddPropertiesFile(path, "", properties, nil); err != nil {
		return fmt.Errorf("set pdf metadata: %w", err)
	}
	return nil
}

// Merge concatenates the input files' pages in order into output.
func (t *Tool) Merge(inputs []string, output string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("merge: no input files")
	}
	if err := api.MergeCreateFile(inputs, output, false, nil); err != nil {
		return fmt.Errorf("merge pdfs: %w", err)
	}
	return nil
}

// AddOutline attaches a table-of-contents outline to path.
func (t *Tool) AddOutline(path string, outline []ports.OutlineEntry) error {
	if len(outline) == 0 {
		return nil
	}
	bookmarks := toBookmarks(outline)
	if err := api.AddBookmarksFile(path, "", bookmarks, true, nil); err != nil {
		return fmt.Errorf("add pdf outline: %w", err)
	}
	return nil
}

func toBookmarks(entries []ports.OutlineEntry) []pdfcpu.Bookmark {
	bookmarks := make([]pdfcpu.Bookmark, 0, len(entries))
	for _, entry := range entries {
		bookmarks = append(bookmarks, pdfcpu.Bookmark{
			Title:    entry.Title,
			PageFrom: entry.Page,
			Kids:     toBookmarks(entry.Children),
		})
	}
	return bookmarks
}

// Ensure Tool implements ports.PDFTool
var _ ports.PDFTool = (*Tool)(nil)
