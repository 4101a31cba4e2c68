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

func TestStackPushPopRoundTrip(t *testing.T) {
	t.Parallel()

	s := riff.NewStack()

	if s.Depth() != 0 {
		t.Fatalf("Depth() = %d, want 0", s.Depth())
	}

	a := riff.Frame{ID: riff.FourCC{'R', 'I', 'F', 'F'}, Size: 100, PosStart: 0}
	b := riff.Frame{ID: riff.FourCC{'L', 'I', 'S', 'T'}, Size: 40, PosStart: 12}

	s.Push(a)
	s.Push(b)

	if s.Depth() != 2 {
		t.Fatalf("Depth() after two pushes = %d, want 2", s.Depth())
	}

	got, ok := s.Pop()
	if !ok || got != b {
		t.Fatalf("Pop() = %+v, %v, want %+v, true", got, ok, b)
	}

	got, ok = s.Pop()
	if !ok || got != a {
		t.Fatalf("Pop() = %+v, %v, want %+v, true", got, ok, a)
	}

	if _, ok := s.Pop(); ok {
		t.Fatal("Pop() on empty stack returned ok=true")
	}
}

func TestStackGrowsByDoublingAndNeverShrinks(t *testing.T) {
	t.Parallel()

	s := riff.NewStack()

	for range 100 {
		s.Push(riff.Frame{})
	}

	if s.Depth() != 100 {
		t.Fatalf("Depth() = %d, want 100", s.Depth())
	}

	for range 90 {
		if _, ok := s.Pop(); !ok {
			t.Fatal("unexpected empty stack while draining")
		}
	}

	if s.Depth() != 10 {
		t.Fatalf("Depth() after draining = %d, want 10", s.Depth())
	}

	// Pushing again must not need to regrow past what was already reached;
	// the backing allocation is never released by Pop.
	for range 50 {
		s.Push(riff.Frame{})
	}

	if s.Depth() != 60 {
		t.Fatalf("Depth() = %d, want 60", s.Depth())
	}
}

func TestStackReset(t *testing.T) {
	t.Parallel()

	s := riff.NewStack()
	s.Push(riff.Frame{})
	s.Push(riff.Frame{})
	s.Reset()

	if s.Depth() != 0 {
		t.Fatalf("Depth() after Reset() = %d, want 0", s.Depth())
	}
}
