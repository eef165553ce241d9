package ports

// DebugSink saves intermediate capture results for diagnosing exports.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveFrame saves a raw captured PNG frame.
	SaveFrame(index int, png []byte) error

	// SaveStepTrace saves the recorder's step trace as JSON.
	SaveStepTrace(data []byte) error
}
