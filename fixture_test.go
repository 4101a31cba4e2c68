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

package hypha_test

import "encoding/binary"

// chunk builds a single wire-format chunk: id + little-endian size + data,
// padded with one zero byte if data has odd length.
func chunk(id string, data []byte) []byte {
	if len(id) != 4 {
		panic("chunk: id must be 4 bytes")
	}

	b := make([]byte, 0, 8+len(data)+1)
	b = append(b, id...)

	var sz [4]byte

	binary.LittleEndian.PutUint32(sz[:], uint32(len(data))) //nolint:gosec

	b = append(b, sz[:]...)
	b = append(b, data...)

	if len(data)%2 == 1 {
		b = append(b, 0)
	}

	return b
}

// listChunk builds a list chunk (RIFF/LIST/BW64): id + size + sub-type,
// followed by the concatenated bytes of children.
func listChunk(id, subType string, children ...[]byte) []byte {
	body := []byte(subType)
	for _, c := range children {
		body = append(body, c...)
	}

	return chunk(id, body)
}

// riffFile builds a complete minimal RIFF file.
func riffFile(formType string, children ...[]byte) []byte {
	return listChunk("RIFF", formType, children...)
}
