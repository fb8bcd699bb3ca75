package classfile

import (
	"errors"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/swenson/guicelint/trace"
)

// ErrTruncated is returned whenever a read would run past the end of the
// buffer. It is returned as is, without the file/line context that
// decodeError adds.
var ErrTruncated = errors.New("truncated class file")

// ErrBadMagic is returned when the class file does not begin with CAFEBABE.
var ErrBadMagic = errors.New("bad magic number")

// ErrUnexpectedTag is returned for an unrecognized constant-pool tag or
// annotation element-value tag.
var ErrUnexpectedTag = errors.New("unexpected tag")

// ErrBadAlignment is returned when tableswitch/lookupswitch padding bytes
// are not zero.
var ErrBadAlignment = errors.New("bad switch alignment")

// decodeError wraps msg with the caller's file and line, logs it, and
// returns it as an error, annotating every parse failure with where the
// call to it occurred.
func decodeError(base error, msg string) error {
	errMsg := "Class Format Error: " + msg
	pc, _, _, ok := runtime.Caller(1)
	if ok {
		fn := runtime.FuncForPC(pc)
		fileName, fileLine := fn.FileLine(pc)
		errMsg = errMsg + "\n  detected by file: " + filepath.Base(fileName) +
			", line: " + strconv.Itoa(fileLine)
	}
	trace.Error(errMsg)
	return errors.Join(base, errors.New(errMsg))
}
