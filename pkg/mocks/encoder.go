package mocks

import (
	"context"

	"github.com/user/deckshow/pkg/ports"
)

// FrameEncoder is a mock implementation of ports.FrameEncoder.
type FrameEncoder struct {
	ProbeFunc      func() error
	StartFunc      func(ctx context.Context, opts ports.FrameEncoderOptions) error
	WriteFrameFunc func(png []byte) error
	CloseFunc      func() error
	AbortFunc      func()
}

func (m *FrameEncoder) Probe() error {
	if m.ProbeFunc != nil {
		return m.ProbeFunc()
	}
	return nil
}

func (m *FrameEncoder) Start(ctx context.Context, opts ports.FrameEncoderOptions) error {
	if m.StartFunc != nil {
		return m.StartFunc(ctx, opts)
	}
	return nil
}

func (m *FrameEncoder) WriteFrame(png []byte) error {
	if m.WriteFrameFunc != nil {
		return m.WriteFrameFunc(png)
	}
	return nil
}

func (m *FrameEncoder) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

func (m *FrameEncoder) Abort() {
	if m.AbortFunc != nil {
		m.AbortFunc()
	}
}

// Ensure FrameEncoder implements ports.FrameEncoder
var _ ports.FrameEncoder = (*FrameEncoder)(nil)

// VideoProber is a mock implementation of ports.VideoProber.
type VideoProber struct {
	DurationMsFunc func(path string) (int, error)
}

func (m *VideoProber) DurationMs(path string) (int, error) {
	if m.DurationMsFunc != nil {
		return m.DurationMsFunc(path)
	}
	return 0, nil
}

// Ensure VideoProber implements ports.VideoProber
var _ ports.VideoProber = (*VideoProber)(nil)
