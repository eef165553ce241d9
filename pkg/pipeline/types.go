package pipeline

import (
	"github.com/user/deckshow/pkg/export"
	"github.com/user/deckshow/pkg/ports"
)

// RenderInput is the input of the vector/raster render stage (pdf, png,
// pptx, md).
type RenderInput struct {
	// Page is an open page sized for the export.
	Page ports.Page
	// Opts is the resolved export request.
	Opts export.Options
}

// RenderResult is the output of a render stage.
type RenderResult struct {
	// OutputPath is the produced artifact (file or directory).
	OutputPath string
	// Pages is the number of pages or images produced.
	Pages int
	// Warnings collects non-fatal stabilization failures.
	Warnings []string
}

// RecordInput is the input of the MP4 recording stage.
type RecordInput struct {
	Page ports.Page
	Opts export.Options
}

// RecordResult is the output of the MP4 recording stage.
type RecordResult struct {
	// OutputPath is the produced MP4 file.
	OutputPath string
	// Frames is the count of frames written to the encoder.
	Frames int
	// Steps is the ordered list of step keys observed during recording.
	Steps []string
	// WallClockMs is the capture loop's elapsed wall-clock time.
	WallClockMs int
	// Warnings collects non-fatal stabilization failures.
	Warnings []string
}
