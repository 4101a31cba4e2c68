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

	"github.com/mycophonic/hypha/internal/riff"
)

const opOpen = "Open"

// OpenFile opens path and parses the outer RIFF/BW64 header from its start.
// The underlying *os.File is owned by the Handle and closed by Close.
func (h *Handle) OpenFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return h.fail(opOpen, CodeAccess)
	}

	size := int64(0)
	if info, statErr := f.Stat(); statErr == nil {
		size = info.Size()
	}

	openErr := h.OpenFileHandle(f, size)

	if e, ok := asError(openErr); ok && e.Code.Critical() {
		_ = f.Close()

		return openErr
	}

	h.ownedFile = f

	return openErr
}

// OpenFileHandle opens a Handle against an already-open *os.File. The file's
// current seek position becomes the stream's logical zero, so RIFF data may
// be embedded inside a larger file. The caller retains ownership of f.
func (h *Handle) OpenFileHandle(f *os.File, size int64) error {
	src, err := riff.NewFileSource(f)
	if err != nil {
		return h.fail(opOpen, CodeAccess)
	}

	return h.OpenSource(src, size)
}

// OpenMem opens a Handle against an in-memory buffer. The caller retains
// ownership of data; it is never copied or mutated.
func (h *Handle) OpenMem(data []byte) error {
	return h.OpenSource(riff.NewMemSource(data), int64(len(data)))
}

// OpenSource opens a Handle against a caller-supplied Source. size is the
// total byte length of the source, or 0 if unknown; a non-zero size enables
// the stricter end-of-file cross-checks described in spec §4.D. The core
// never closes src.
func (h *Handle) OpenSource(src riff.Source, size int64) error {
	h.src = src
	h.fileSize = size
	h.pos = 0
	h.stack.Reset()
	h.lastWarning = CodeNone
	h.opened = false

	var hdr [riff.HeaderSize]byte

	n := h.src.Read(hdr[:])
	h.pos += int64(n)

	if n < riff.HeaderSize {
		return h.fail(opOpen, CodeEOF)
	}

	outerID := riff.FourCC{hdr[0], hdr[1], hdr[2], hdr[3]}
	outerSize := riff.LE32(hdr[4:8])

	if !outerID.Printable() {
		return h.fail(opOpen, CodeILLID)
	}

	isBW64 := outerID == fourCCBW64
	if outerID != fourCCRIFF && !(isBW64 && h.bw64) {
		return h.fail(opOpen, CodeILLID)
	}

	var typ [riff.ListTypeSize]byte

	tn := h.src.Read(typ[:])
	h.pos += int64(tn)

	if tn < riff.ListTypeSize {
		return h.fail(opOpen, CodeEOF)
	}

	if !riff.FourCC(typ).Printable() {
		return h.fail(opOpen, CodeILLID)
	}

	h.cl = riff.Frame{ID: outerID, Size: uint64(outerSize), Type: riff.FourCC(typ), PosStart: 0}

	if err := h.readChunkHeader(opOpen); err != nil {
		return err
	}

	if isBW64 && outerSize == 0xFFFFFFFF && h.c.id == fourCCDS64 {
		if err := h.applyDS64Override(); err != nil {
			return err
		}
	}

	h.opened = true

	if h.fileSize > 0 {
		want := int64(h.cl.Size) + riff.HeaderSize //nolint:gosec // bounded by container invariants
		switch {
		case h.fileSize < want:
			h.opened = false

			return h.fail(opOpen, CodeEOF)
		case h.fileSize > want:
			return h.fail(opOpen, CodeEXDAT)
		}
	}

	return nil
}

// applyDS64Override reads the 64-bit true size from the ds64 chunk's first 8
// bytes and replaces the outer list frame's declared size with it, per
// spec §4.D / §6 BW64.
func (h *Handle) applyDS64Override() error {
	var lo, hi [4]byte

	n1 := h.src.Read(lo[:])
	h.pos += int64(n1)

	n2 := h.src.Read(hi[:])
	h.pos += int64(n2)

	if n1 < 4 || n2 < 4 {
		return h.fail(opOpen, CodeEOF)
	}

	low := riff.LE32(lo[:])
	high := riff.LE32(hi[:])
	h.cl.Size = uint64(low) | uint64(high)<<32
	h.c.pos = 8 //nolint:mnd // two 32-bit words consumed from ds64's own payload

	return nil
}

func asError(err error) (*Error, bool) {
	e, ok := err.(*Error) //nolint:errorlint // Error is always returned directly by this package, never wrapped further
	return e, ok
}
