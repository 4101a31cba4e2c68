/*
   Copyright Mycophonic.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package hypha

import (
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mycophonic/hypha/internal/riff"
)

// Handle is the single mutable state object the library hands out: current
// chunk, current list, the level stack beneath it, and the byte source it
// borrows. A Handle is single-owner and single-threaded; it must be used by
// one logical caller at a time.
type Handle struct {
	src      riff.Source
	ownedFile *os.File
	fileSize int64
	pos      int64

	cl    riff.Frame // current list frame, held "hot" outside the stack
	stack *riff.Stack
	c     chunkState

	bw64     bool
	maxDepth int

	logger    *charmlog.Logger
	diagID    uuid.UUID
	hasDiagID bool

	opened      bool
	lastWarning Code
}

// Option configures a Handle at construction time.
type Option func(*Handle)

// WithBW64 enables or disables acceptance of the BW64 64-bit-size form at
// Open time. Enabled by default. When disabled, Open accepts only the
// classic "RIFF" outer id.
func WithBW64(enabled bool) Option {
	return func(h *Handle) { h.bw64 = enabled }
}

// WithLogger installs the diagnostic sink invoked for critical errors and for
// CodeEXDAT. Pass nil to silence diagnostics entirely.
func WithLogger(l *charmlog.Logger) Option {
	return func(h *Handle) { h.logger = l }
}

// WithMaxDepth bounds how deep SeekLevelSub may nest before it reports
// CodeICSIZE instead of descending further. n <= 0 means unbounded (the
// default). This is a defensive cap absent from the wire format itself; see
// DESIGN.md for the rationale.
func WithMaxDepth(n int) Option {
	return func(h *Handle) {
		if n > 0 {
			h.maxDepth = n
		}
	}
}

// WithDiagnosticID stamps a random correlation id onto the Handle so that log
// lines from multiple Handles sharing one Logger can be told apart.
func WithDiagnosticID() Option {
	return func(h *Handle) {
		h.diagID = uuid.New()
		h.hasDiagID = true
	}
}

// New allocates a Handle. It must be opened via OpenFile, OpenFileHandle,
// OpenMem, or OpenSource before any navigation method is called.
func New(opts ...Option) *Handle {
	h := &Handle{
		bw64:   true,
		stack:  riff.NewStack(),
		logger: defaultLogger(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

func defaultLogger() *charmlog.Logger {
	return charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Prefix: "hypha",
	})
}

// Close releases any resource the Handle opened for itself (OpenFile's own
// *os.File). It never closes a Source the caller supplied directly via
// OpenFileHandle, OpenMem, or OpenSource — those remain borrowed, not owned.
func (h *Handle) Close() {
	if h.ownedFile != nil {
		_ = h.ownedFile.Close()
		h.ownedFile = nil
	}

	h.opened = false
}

// Level returns the current nesting depth; 0 means the current list frame is
// the file's outer RIFF/BW64 chunk.
func (h *Handle) Level() int {
	return h.stack.Depth()
}

// Chunk returns a read-only snapshot of the current chunk.
func (h *Handle) Chunk() ChunkInfo {
	return ChunkInfo{
		ID:       h.c.id,
		Size:     h.c.size,
		PosStart: h.c.posStart,
		Pos:      h.c.pos,
		Pad:      h.c.pad,
	}
}

// List returns a read-only snapshot of the current list.
func (h *Handle) List() ListInfo {
	return ListInfo{
		ID:       h.cl.ID,
		Size:     h.cl.Size,
		Type:     h.cl.Type,
		PosStart: h.cl.PosStart,
	}
}

// LastWarning returns CodeEXDAT if any operation (Open, SeekNextChunk, or a
// CountChunksInLevel/CountChunksInLevelWithID walk) has reported it since the
// handle was opened or since the last count call began, and CodeNone
// otherwise. See spec Open Question on EXDAT visibility.
func (h *Handle) LastWarning() Code {
	return h.lastWarning
}

// seekAbs repositions the byte source and mirrors its reported position into
// h.pos; Source.Seek never fails, it only affects the next Read.
func (h *Handle) seekAbs(abs int64) {
	h.pos = h.src.Seek(abs)
}

// requireOpen is the pre-condition check every navigator entry point makes
// first (spec §7 policy: "every core entry point first checks handle
// validity").
func (h *Handle) requireOpen(op string) error {
	if h == nil || !h.opened {
		pos := int64(0)
		if h != nil {
			pos = h.pos
		}

		return newError(op, pos, CodeInvalidHandle)
	}

	return nil
}

// fail builds an *Error for code at the handle's current position, records
// the last EXDAT warning if applicable, and emits a diagnostic for critical
// errors and EXDAT (spec §7: "invoked for critical errors and for EXDAT").
func (h *Handle) fail(op string, code Code) error {
	err := newError(op, h.pos, code)

	if code == CodeEXDAT {
		h.lastWarning = code
	}

	if h.logger == nil || (!code.Critical() && code != CodeEXDAT) {
		return err
	}

	fields := []any{"op", op, "pos", h.pos, "code", code.String()}
	if h.hasDiagID {
		fields = append(fields, "handle", h.diagID.String())
	}

	if code.Critical() {
		h.logger.Error("riff navigation error", fields...)
	} else {
		h.logger.Warn("riff navigation warning", fields...)
	}

	return err
}
