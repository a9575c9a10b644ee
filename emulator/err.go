package emulator

import (
	"github.com/ezrec/copperlist/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a copper runtime error.
type ErrRuntime struct {
	Pc     uint16
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
