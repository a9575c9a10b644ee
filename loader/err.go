package loader

import (
	"errors"

	"github.com/ezrec/copperlist/translate"
)

var f = translate.From

var (
	ErrVerify = errors.New(f("verify mismatch"))
)

// ErrLoad records the step of a failed load.
type ErrLoad struct {
	Step  Step
	Index int // Word index, for STEP_CHECK, STEP_WRITE and STEP_VERIFY.
	Err   error
}

func (err *ErrLoad) Error() string {
	switch err.Step {
	case STEP_CHECK, STEP_WRITE, STEP_VERIFY:
		return f("%v word %d: %v", err.Step, err.Index, err.Err)
	default:
		return f("%v: %v", err.Step, err.Err)
	}
}

func (err *ErrLoad) Unwrap() error {
	return err.Err
}

// ErrMismatch is a word that did not read back as written.
type ErrMismatch struct {
	Expected uint16
	Actual   uint16
}

func (err ErrMismatch) Error() string {
	return f("expected 0x%04x, read 0x%04x", err.Expected, err.Actual)
}

func (err ErrMismatch) Unwrap() error {
	return ErrVerify
}
