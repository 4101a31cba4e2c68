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

package riff_test

import (
	"testing"

	"github.com/mycophonic/hypha/internal/riff"
)

func TestFourCCPrintable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		id   riff.FourCC
		want bool
	}{
		{"RIFF", riff.FourCC{'R', 'I', 'F', 'F'}, true},
		{"data", riff.FourCC{'d', 'a', 't', 'a'}, true},
		{"space padded", riff.FourCC{'f', 'm', 't', ' '}, true},
		{"low control byte", riff.FourCC{0x00, 'm', 't', ' '}, false},
		{"del byte", riff.FourCC{0x7F, 'm', 't', ' '}, false},
		{"high byte", riff.FourCC{0xFF, 'm', 't', ' '}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.id.Printable(); got != tt.want {
				t.Fatalf("Printable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFourCCString(t *testing.T) {
	t.Parallel()

	id := riff.FourCC{'W', 'A', 'V', 'E'}
	if got := id.String(); got != "WAVE" {
		t.Fatalf("String() = %q, want %q", got, "WAVE")
	}
}

func TestLE32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		b    []byte
		want uint32
	}{
		{"zero", []byte{0, 0, 0, 0}, 0},
		{"one", []byte{1, 0, 0, 0}, 1},
		{"max", []byte{0xFF, 0xFF, 0xFF, 0xFF}, 0xFFFFFFFF},
		{"mixed", []byte{0x78, 0x56, 0x34, 0x12}, 0x12345678},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := riff.LE32(tt.b); got != tt.want {
				t.Fatalf("LE32(%v) = %d, want %d", tt.b, got, tt.want)
			}
		})
	}
}

func TestFrameEnd(t *testing.T) {
	t.Parallel()

	f := riff.Frame{PosStart: 12, Size: 100}
	if got, want := f.End(), int64(12+riff.HeaderSize+100); got != want {
		t.Fatalf("End() = %d, want %d", got, want)
	}
}
