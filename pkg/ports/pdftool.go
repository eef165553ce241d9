package ports

// PDFMeta is document metadata injected into a finished PDF.
type PDFMeta struct {
	Title    string
	Subject  string
	Author   string
	Keywords []string
}

// OutlineEntry is one node of a PDF outline tree.
type OutlineEntry struct {
	Title    string
	Page     int // 1-based target page
	Children []OutlineEntry
}

// PDFTool abstracts post-processing of browser-rendered PDF files.
type PDFTool interface {
	// SetMetadata rewrites path with meta applied.
	SetMetadata(path string, meta PDFMeta) error

	// Merge concatenates the input files' pages in order into output.
	Merge(inputs []string, output string) error

	// AddOutline attaches a table-of-contents outline to path.
	AddOutline(path string, outline []OutlineEntry) error
}
