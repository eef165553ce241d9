package ports

import (
	"context"
)

// FrameEncoderOptions configures a video encoding session.
type FrameEncoderOptions struct {
	FPS        int     // Input and output frame rate
	Speedup    float64 // >1 compresses the encoded timeline by setpts=PTS/speedup
	OutputPath string  // Destination MP4 file
}

// FrameEncoder abstracts an external process that stitches a PNG frame
// stream into an MP4 file.
type FrameEncoder interface {
	// Probe verifies the encoder binary is invocable.
	Probe() error

	// Start spawns the encoder process for one session.
	Start(ctx context.Context, opts FrameEncoderOptions) error

	// WriteFrame sends one PNG frame to the encoder. The call blocks while
	// the encoder's input pipe is full, which is the backpressure signal.
	WriteFrame(png []byte) error

	// Close ends the frame stream and waits for the encoder to exit.
	// A non-zero exit surfaces as an error carrying the collected stderr.
	Close() error

	// Abort ends the stream and discards the encoder's exit status. Used
	// when the capture loop fails and the original error must win.
	Abort()
}

// VideoProber reads metadata from an encoded video file.
type VideoProber interface {
	// DurationMs returns the presentation duration of the file in milliseconds.
	DurationMs(path string) (int, error)
}
