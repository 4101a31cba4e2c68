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

// Package hypha implements a pull-style, navigable reader for RIFF and BW64
// container trees. It maintains a current chunk and a stack of enclosing
// list chunks, enforces containment invariants, and translates every
// navigation call into bounded reads and seeks against a pluggable byte
// source. It has no opinion about what any chunk's payload means.
package hypha

import "github.com/mycophonic/hypha/internal/riff"

// FourCC is a 4-byte printable-ASCII chunk or list-type identifier.
type FourCC = riff.FourCC

// Well-known FourCCs referenced by the navigator itself.
var (
	fourCCRIFF = FourCC{'R', 'I', 'F', 'F'}
	fourCCBW64 = FourCC{'B', 'W', '6', '4'}
	fourCCLIST = FourCC{'L', 'I', 'S', 'T'}
	fourCCDS64 = FourCC{'d', 's', '6', '4'}
)

func isListID(id FourCC) bool {
	return id == fourCCRIFF || id == fourCCLIST || id == fourCCBW64
}

// ChunkInfo is a read-only snapshot of the current chunk.
type ChunkInfo struct {
	ID       FourCC
	Size     uint64
	PosStart int64
	Pos      uint64
	Pad      uint8
}

// ListInfo is a read-only snapshot of the current list (the top of the level
// stack, held "hot" outside it).
type ListInfo struct {
	ID       FourCC
	Size     uint64
	Type     FourCC
	PosStart int64
}

// chunkState is the navigator's live view of "current chunk" (component D).
type chunkState struct {
	id       FourCC
	size     uint64
	posStart int64
	pos      uint64
	pad      uint8
}
