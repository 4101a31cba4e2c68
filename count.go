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

// CountChunksInLevel counts every chunk in the current level, from its
// start to end-of-level. It returns -1 on any critical error; a non-critical
// CodeEXDAT still yields the count, with LastWarning reporting CodeEXDAT
// afterward (spec's second Open Question: both are available).
func (h *Handle) CountChunksInLevel() (int, error) {
	return h.countChunksInLevel(nil)
}

// CountChunksInLevelWithID is CountChunksInLevel restricted to chunks whose
// id equals id.
func (h *Handle) CountChunksInLevelWithID(id FourCC) (int, error) {
	return h.countChunksInLevel(&id)
}

func (h *Handle) countChunksInLevel(id *FourCC) (int, error) {
	if err := h.requireOpen("CountChunksInLevel"); err != nil {
		return -1, err
	}

	h.lastWarning = CodeNone

	if err := h.SeekLevelStart(); err != nil {
		if isNonCritical(err) {
			return 0, nil
		}

		return -1, err
	}

	count := 0
	if id == nil || h.c.id == *id {
		count++
	}

	for {
		err := h.SeekNextChunk()
		if err == nil {
			if id == nil || h.c.id == *id {
				count++
			}

			continue
		}

		code, ok := CodeOf(err)
		if !ok {
			return -1, err
		}

		if code.Critical() {
			return -1, err
		}

		// CodeEOCL and CodeEXDAT both end the walk cleanly; EXDAT is also
		// recorded so the caller can still observe it via LastWarning.
		return count, nil
	}
}
