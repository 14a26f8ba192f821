package wavfile

import (
	"fmt"
	"io/fs"
)

// Handler streams a loaded wave file against elapsed time and keeps the
// RMS of the most recently consumed sample.
type Handler struct {
	fsys fs.FS

	stream  *Stream
	cursor  uint32
	elapsed float64
	rms     float32
}

func NewHandler(fsys fs.FS) *Handler {
	return &Handler{fsys: fsys}
}

// Start loads the wave file at path. On failure the previously loaded
// stream stays in place.
func (h *Handler) Start(path string) error {
	data, err := fs.ReadFile(h.fsys, path)
	if err != nil {
		return fmt.Errorf("read wave %q: %w", path, err)
	}

	stream, err := Decode(data)
	if err != nil {
		return fmt.Errorf("decode wave %q: %w", path, err)
	}

	h.Load(stream)
	return nil
}

// Load replaces the current stream and rewinds to its beginning.
func (h *Handler) Load(stream *Stream) {
	h.stream = stream
	h.cursor = 0
	h.elapsed = 0
	h.rms = 0
}

// Update advances playback by deltaSeconds. It reports whether at least
// one sample was consumed.
func (h *Handler) Update(deltaSeconds float32) bool {
	if h.stream == nil || h.cursor >= h.stream.SamplesPerChannel {
		return false
	}

	if deltaSeconds > 0 {
		h.elapsed += float64(deltaSeconds)
	}

	// the goal is derived from the total elapsed time, so splitting a
	// delta across several calls ends up at the same sample
	goal := uint64(h.elapsed * float64(h.stream.SampleRate))
	if goal > uint64(h.stream.SamplesPerChannel) {
		goal = uint64(h.stream.SamplesPerChannel)
	}
	if goal <= uint64(h.cursor) {
		return false
	}

	h.rms = h.stream.rmsAt(uint32(goal - 1))
	h.cursor = uint32(goal)
	return true
}

func (h *Handler) Rms() float32 {
	return h.rms
}

func (h *Handler) Loaded() bool {
	return h.stream != nil
}

// Finished is true once every sample of the stream was consumed.
func (h *Handler) Finished() bool {
	return h.stream != nil && h.cursor >= h.stream.SamplesPerChannel
}

func (h *Handler) Cursor() uint32 {
	return h.cursor
}

func (h *Handler) Info() (Info, bool) {
	if h.stream == nil {
		return Info{}, false
	}
	return h.stream.Info, true
}

// Release drops the loaded samples. The last RMS is kept.
func (h *Handler) Release() {
	h.stream = nil
	h.cursor = 0
	h.elapsed = 0
}
