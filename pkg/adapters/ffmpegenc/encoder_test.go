package ffmpegenc

import (
	"reflect"
	"testing"

	"github.com/user/deckshow/pkg/ports"
)

func TestArgs(t *testing.T) {
	got := Args(ports.FrameEncoderOptions{FPS: 30, Speedup: 1, OutputPath: "out.mp4"})
	want := []string{
		"-y",
		"-f", "image2pipe",
		"-framerate", "30",
		"-vcodec", "png",
		"-i", "-",
		"-an",
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		"out.mp4",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Args = %v, want %v", got, want)
	}
}

func TestArgs_Speedup(t *testing.T) {
	got := Args(ports.FrameEncoderOptions{FPS: 24, Speedup: 2, OutputPath: "out.mp4"})
	want := []string{
		"-y",
		"-f", "image2pipe",
		"-framerate", "24",
		"-vcodec", "png",
		"-i", "-",
		"-an",
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-vf", "setpts=PTS/2",
		"-r", "24",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		"out.mp4",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Args = %v, want %v", got, want)
	}
}

func TestWriteFrame_NotStarted(t *testing.T) {
	e := New()
	if err := e.WriteFrame([]byte("png")); err == nil {
		t.Error("expected error before Start")
	}
}
