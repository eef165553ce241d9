// Package ffmpegenc streams PNG frames to an external ffmpeg process that
// stitches them into an H.264 MP4.
package ffmpegenc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/user/deckshow/pkg/ports"
)

// ErrFFmpegNotFound is returned when no ffmpeg binary is invocable.
var ErrFFmpegNotFound = errors.New("mp4 export requires ffmpeg: install it and make sure it is on PATH")

// ErrNotStarted is returned when frames are written outside a session.
var ErrNotStarted = errors.New("encoder not started")

// Encoder implements ports.FrameEncoder over an ffmpeg child process.
type Encoder struct {
	mu         sync.Mutex
	ffmpegPath string
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stderr     bytes.Buffer
	closed     bool
}

// New creates a new Encoder.
func New() *Encoder {
	return &Encoder{}
}

// findFFmpeg searches for ffmpeg in PATH and common install locations.
func findFFmpeg() (string, error) {
	execName := "ffmpeg"
	if runtime.GOOS == "windows" {
		execName = "ffmpeg.exe"
	}

	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	var commonPaths []string
	if runtime.GOOS == "windows" {
		commonPaths = []string{
			`C:\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
		}
	} else {
		commonPaths = []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/opt/homebrew/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}
	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrFFmpegNotFound
}

// Probe verifies the ffmpeg binary responds to --version with exit code 0.
func (e *Encoder) Probe() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	path, err := findFFmpeg()
	if err != nil {
		return err
	}
	cmd := exec.Command(path, "--version")
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		return ErrFFmpegNotFound
	}
	e.ffmpegPath = path
	return nil
}

// Args builds the ffmpeg invocation for one session. Exposed for testing.
func Args(opts ports.FrameEncoderOptions) []string {
	args := []string{
		"-y",
		"-f", "image2pipe",
		"-framerate", strconv.Itoa(opts.FPS),
		"-vcodec", "png",
		"-i", "-",
		"-an",
		"-c:v", "libx264",
		"-preset", "veryfast",
	}
	if opts.Speedup > 1 {
		// Compress the presentation timeline to undo capture-side motion
		// dilation, then re-assert the output rate.
		args = append(args,
			"-vf", fmt.Sprintf("setpts=PTS/%g", opts.Speedup),
			"-r", strconv.Itoa(opts.FPS),
		)
	}
	args = append(args,
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		opts.OutputPath,
	)
	return args
}

// Start spawns the encoder process for one session.
func (e *Encoder) Start(ctx context.Context, opts ports.FrameEncoderOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd != nil {
		return fmt.Errorf("encoder session already active")
	}
	if e.ffmpegPath == "" {
		path, err := findFFmpeg()
		if err != nil {
			return err
		}
		e.ffmpegPath = path
	}

	e.stderr.Reset()
	e.closed = false

	cmd := exec.CommandContext(ctx, e.ffmpegPath, Args(opts)...)
	cmd.Stdout = io.Discard
	cmd.Stderr = &e.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	e.cmd = cmd
	e.stdin = stdin
	return nil
}

// WriteFrame sends one PNG frame to ffmpeg's stdin. The write blocks while
// the pipe is full, which paces the capture loop against the encoder.
func (e *Encoder) WriteFrame(png []byte) error {
	e.mu.Lock()
	stdin := e.stdin
	e.mu.Unlock()

	if stdin == nil {
		return ErrNotStarted
	}
	if _, err := stdin.Write(png); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Close ends the frame stream and waits for ffmpeg to exit. Non-zero exit
// surfaces the collected stderr, or a generic exit message when stderr is
// empty.
func (e *Encoder) Close() error {
	cmd, err := e.shutdown()
	if err != nil || cmd == nil {
		return err
	}

	if err := cmd.Wait(); err != nil {
		detail := lastStderrLines(e.stderr.String(), 20)
		if detail != "" {
			return fmt.Errorf("ffmpeg: %s", detail)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("ffmpeg exited with code %d", exitErr.ExitCode())
		}
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return nil
}

// Abort ends the stream and discards ffmpeg's exit status so the original
// capture error wins.
func (e *Encoder) Abort() {
	cmd, err := e.shutdown()
	if err != nil || cmd == nil {
		return
	}
	_ = cmd.Wait()
}

// shutdown closes stdin exactly once and hands the command to the caller for
// waiting. A second call returns nil.
func (e *Encoder) shutdown() (*exec.Cmd, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.cmd == nil {
		return nil, nil
	}
	e.closed = true

	cmd := e.cmd
	e.cmd = nil
	if e.stdin != nil {
		if err := e.stdin.Close(); err != nil {
			e.stdin = nil
			_ = cmd.Wait()
			return nil, fmt.Errorf("close ffmpeg stdin: %w", err)
		}
		e.stdin = nil
	}
	return cmd, nil
}

// lastStderrLines trims stderr to its informative tail.
func lastStderrLines(s string, max int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > max {
		lines = lines[len(lines)-max:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Ensure Encoder implements ports.FrameEncoder
var _ ports.FrameEncoder = (*Encoder)(nil)
