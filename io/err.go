package io

import (
	"errors"

	"github.com/ezrec/copperlist/translate"
)

var f = translate.From

var (
	// Bus errors
	ErrRegisterInvalid  = errors.New(f("register invalid"))
	ErrRegisterReadOnly = errors.New(f("register read only"))
)

// ErrAccess records the register of a failed bus access.
type ErrAccess struct {
	Write bool
	Reg   uint16
	Err   error
}

func (err *ErrAccess) Error() string {
	op := "read"
	if err.Write {
		op = "write"
	}
	return f("%v 0x%04x %v", op, err.Reg, err.Err)
}

func (err *ErrAccess) Unwrap() error {
	return err.Err
}
