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
	"errors"
	"fmt"
)

// Code is the navigator's enumerated error taxonomy (component G). The zero
// value, CodeNone, is success.
type Code int

// The error taxonomy, in the order spec'd: non-critical control-flow codes
// first, then the critical codes that leave a handle's state undefined.
const (
	CodeNone Code = iota
	CodeEOC
	CodeEOCL
	CodeEXDAT
	CodeILLID
	CodeICSIZE
	CodeEOF
	CodeAccess
	CodeInvalidHandle
)

// Critical reports whether c leaves the handle's state undefined. A critical
// error must be treated by the caller as "discard or reopen"; a non-critical
// error is ordinary control flow.
func (c Code) Critical() bool {
	switch c {
	case CodeILLID, CodeICSIZE, CodeEOF, CodeAccess, CodeInvalidHandle:
		return true
	case CodeNone, CodeEOC, CodeEOCL, CodeEXDAT:
		return false
	default:
		return false
	}
}

// String renders c for diagnostics and error messages.
func (c Code) String() string {
	switch c {
	case CodeNone:
		return "none"
	case CodeEOC:
		return "end of chunk"
	case CodeEOCL:
		return "end of chunk list"
	case CodeEXDAT:
		return "excess or missing trailing data"
	case CodeILLID:
		return "illegal chunk id"
	case CodeICSIZE:
		return "inconsistent chunk size"
	case CodeEOF:
		return "unexpected end of source"
	case CodeAccess:
		return "byte source access failure"
	case CodeInvalidHandle:
		return "handle is nil or unopened"
	default:
		return fmt.Sprintf("unknown error code %d", int(c))
	}
}

// Sentinel errors, one per non-success Code, so callers can match with
// errors.Is without depending on *Error's fields.
var (
	ErrEndOfChunk       = errors.New("hypha: end of chunk")
	ErrEndOfChunkList   = errors.New("hypha: end of chunk list")
	ErrExcessData       = errors.New("hypha: excess or missing trailing data")
	ErrIllegalID        = errors.New("hypha: illegal chunk id")
	ErrInconsistentSize = errors.New("hypha: inconsistent chunk size")
	ErrUnexpectedEOF    = errors.New("hypha: unexpected end of source")
	ErrSourceAccess     = errors.New("hypha: byte source access failure")
	ErrInvalidHandle    = errors.New("hypha: handle is nil or unopened")
)

//nolint:gochecknoglobals
var sentinelByCode = map[Code]error{
	CodeEOC:           ErrEndOfChunk,
	CodeEOCL:          ErrEndOfChunkList,
	CodeEXDAT:         ErrExcessData,
	CodeILLID:         ErrIllegalID,
	CodeICSIZE:        ErrInconsistentSize,
	CodeEOF:           ErrUnexpectedEOF,
	CodeAccess:        ErrSourceAccess,
	CodeInvalidHandle: ErrInvalidHandle,
}

// Error reports a navigator operation failure: the operation name, the
// absolute byte position it occurred at, and the taxonomy Code.
type Error struct {
	Op   string
	Pos  int64
	Code Code
}

func newError(op string, pos int64, code Code) *Error {
	return &Error{Op: op, Pos: pos, Code: code}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("hypha: %s at %d: %s", e.Op, e.Pos, e.Code)
}

// Unwrap returns the sentinel error for e.Code, enabling errors.Is(err,
// hypha.ErrEndOfChunkList) and similar against a returned *Error.
func (e *Error) Unwrap() error {
	return sentinelByCode[e.Code]
}

// CodeOf extracts the Code carried by err, if any. ok is false if err does
// not wrap an *Error.
func CodeOf(err error) (code Code, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}

	return CodeNone, false
}
