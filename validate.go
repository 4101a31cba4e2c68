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

// LevelValidate walks the current level from its start to CodeEOCL,
// returning the first critical error encountered, or nil on a clean
// end-of-level (including the non-critical CodeEXDAT case, which is not an
// error for validation purposes).
func (h *Handle) LevelValidate() error {
	if err := h.requireOpen("LevelValidate"); err != nil {
		return err
	}

	if err := h.SeekLevelStart(); err != nil {
		if isNonCritical(err) {
			return nil
		}

		return err
	}

	for {
		err := h.SeekNextChunk()
		if err == nil {
			continue
		}

		if isNonCritical(err) {
			return nil
		}

		return err
	}
}

// FileValidate rewinds to the top of the file and recursively descends every
// list chunk, returning the first critical error encountered anywhere in the
// tree, or nil if the whole file walks cleanly.
func (h *Handle) FileValidate() error {
	if err := h.requireOpen("FileValidate"); err != nil {
		return err
	}

	if err := h.Rewind(); err != nil && !isNonCritical(err) {
		return err
	}

	return h.validateLevel()
}

// validateLevel walks the current level, descending into and recursively
// validating every list chunk it encounters.
func (h *Handle) validateLevel() error {
	for {
		if isListID(h.c.id) {
			if err := h.SeekLevelSub(); err != nil {
				if !isNonCritical(err) {
					return err
				}
			} else {
				if err := h.validateLevel(); err != nil {
					return err
				}

				if err := h.LevelParent(); err != nil && !isNonCritical(err) {
					return err
				}
			}
		}

		err := h.SeekNextChunk()
		if err == nil {
			continue
		}

		if isNonCritical(err) {
			return nil
		}

		return err
	}
}

func isNonCritical(err error) bool {
	code, ok := CodeOf(err)

	return ok && !code.Critical()
}
