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

import "github.com/mycophonic/hypha/internal/riff"

// readChunkHeader reads an 8-byte chunk header at the current position,
// validates it against the current list's bounds and, if known, the file
// size, and installs it as the current chunk (component B, invoked by every
// operation that lands on a new chunk header).
func (h *Handle) readChunkHeader(op string) error {
	posStart := h.pos

	var buf [riff.HeaderSize]byte

	n := h.src.Read(buf[:])
	h.pos += int64(n)

	if n < riff.HeaderSize {
		return h.fail(op, CodeEOF)
	}

	id := riff.FourCC{buf[0], buf[1], buf[2], buf[3]}
	if !id.Printable() {
		return h.fail(op, CodeILLID)
	}

	size := riff.LE32(buf[4:8])
	pad := uint8(size & 1)            //nolint:mnd // parity bit
	end := posStart + riff.HeaderSize + int64(size) + int64(pad) //nolint:gosec

	if end > h.cl.End() {
		return h.fail(op, CodeICSIZE)
	}

	if h.fileSize > 0 && end > h.fileSize {
		return h.fail(op, CodeEOF)
	}

	h.c = chunkState{id: id, size: uint64(size), posStart: posStart, pos: 0, pad: pad}

	return nil
}

// ReadInChunk reads up to len(dst) bytes from the current chunk's data,
// clamped to what remains (c_size - c_pos), and advances pos/c_pos by the
// amount actually read. It never surfaces the chunk's pad byte.
func (h *Handle) ReadInChunk(dst []byte) (int, error) {
	if err := h.requireOpen("ReadInChunk"); err != nil {
		return 0, err
	}

	remain := h.c.size - h.c.pos
	if remain == 0 || len(dst) == 0 {
		return 0, nil
	}

	want := uint64(len(dst))
	if want > remain {
		want = remain
	}

	n := h.src.Read(dst[:want])
	h.pos += int64(n)
	h.c.pos += uint64(n)

	return n, nil
}

// SeekInChunk moves to offset within the current chunk's data. offset ==
// c_size is legal (the next read returns 0).
func (h *Handle) SeekInChunk(offset uint32) error {
	if err := h.requireOpen("SeekInChunk"); err != nil {
		return err
	}

	if uint64(offset) > h.c.size {
		return h.fail("SeekInChunk", CodeEOC)
	}

	h.seekAbs(h.c.posStart + riff.HeaderSize + int64(offset))
	h.c.pos = uint64(offset)

	return nil
}

// SeekChunkStart positions at the current chunk's data offset 0.
func (h *Handle) SeekChunkStart() error {
	if err := h.requireOpen("SeekChunkStart"); err != nil {
		return err
	}

	return h.SeekInChunk(0)
}

// SeekNextChunk advances to the sibling chunk following the current one,
// skipping exactly one pad byte if the current chunk's size is odd.
func (h *Handle) SeekNextChunk() error {
	if err := h.requireOpen("SeekNextChunk"); err != nil {
		return err
	}

	next := h.c.posStart + riff.HeaderSize + int64(h.c.size) + int64(h.c.pad) //nolint:gosec
	remaining := h.cl.End() - next

	switch {
	case remaining >= riff.HeaderSize:
		h.seekAbs(next)

		return h.readChunkHeader("SeekNextChunk")
	case remaining > 0:
		return h.fail("SeekNextChunk", CodeEXDAT)
	default:
		return h.fail("SeekNextChunk", CodeEOCL)
	}
}

// SeekLevelStart positions at the first chunk of the current level (after
// its 4-byte list type) and reads its header.
func (h *Handle) SeekLevelStart() error {
	if err := h.requireOpen("SeekLevelStart"); err != nil {
		return err
	}

	h.seekAbs(h.cl.PosStart + riff.HeaderSize + riff.ListTypeSize)

	return h.readChunkHeader("SeekLevelStart")
}

// Rewind pops the level stack down to depth 0, then repositions at that
// level's first chunk.
func (h *Handle) Rewind() error {
	if err := h.requireOpen("Rewind"); err != nil {
		return err
	}

	for {
		f, ok := h.stack.Pop()
		if !ok {
			break
		}

		h.cl = f
	}

	return h.SeekLevelStart()
}

// SeekLevelSub descends into the current chunk as a sub-list: the current
// chunk's id must be RIFF, LIST, or BW64 and its size must be at least 4 (the
// sub-type field). It pushes the current list frame, promotes the chunk
// being entered to the current list frame, and reads the first contained
// chunk's header.
func (h *Handle) SeekLevelSub() error {
	if err := h.requireOpen("SeekLevelSub"); err != nil {
		return err
	}

	if !isListID(h.c.id) {
		return h.fail("SeekLevelSub", CodeILLID)
	}

	if h.c.size < riff.ListTypeSize {
		return h.fail("SeekLevelSub", CodeICSIZE)
	}

	if h.maxDepth > 0 && h.stack.Depth()+1 > h.maxDepth {
		return h.fail("SeekLevelSub", CodeICSIZE)
	}

	if h.c.pos != 0 {
		if err := h.SeekChunkStart(); err != nil {
			return err
		}
	}

	var typ [riff.ListTypeSize]byte

	n := h.src.Read(typ[:])
	h.pos += int64(n)
	h.c.pos += uint64(n)

	if n < riff.ListTypeSize {
		return h.fail("SeekLevelSub", CodeEOF)
	}

	sub := riff.FourCC(typ)
	if !sub.Printable() {
		return h.fail("SeekLevelSub", CodeILLID)
	}

	entered := riff.Frame{ID: h.c.id, Size: h.c.size, Type: sub, PosStart: h.c.posStart}
	h.stack.Push(h.cl)
	h.cl = entered

	return h.readChunkHeader("SeekLevelSub")
}

// LevelParent steps out of the current level back into its parent. Position
// is left unchanged; the current chunk view is recomputed to be the list
// chunk the caller just exited, with c_pos derived from pos. At depth 0 it
// reports CodeEOCL ("already at top"), a non-critical indicator.
func (h *Handle) LevelParent() error {
	if err := h.requireOpen("LevelParent"); err != nil {
		return err
	}

	if h.stack.Depth() == 0 {
		return h.fail("LevelParent", CodeEOCL)
	}

	child := h.cl

	parent, _ := h.stack.Pop()
	h.cl = parent

	h.c = chunkState{
		id:       child.ID,
		size:     child.Size,
		posStart: child.PosStart,
		pos:      uint64(h.pos - (child.PosStart + riff.HeaderSize)), //nolint:gosec
		pad:      uint8(child.Size & 1),                              //nolint:mnd
	}

	return nil
}

// SeekLevelParentStart is LevelParent followed by SeekChunkStart.
func (h *Handle) SeekLevelParentStart() error {
	if err := h.LevelParent(); err != nil {
		return err
	}

	return h.SeekChunkStart()
}

// SeekLevelParentNext is LevelParent followed by SeekNextChunk.
func (h *Handle) SeekLevelParentNext() error {
	if err := h.LevelParent(); err != nil {
		return err
	}

	return h.SeekNextChunk()
}
