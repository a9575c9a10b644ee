package io

import (
	"fmt"
	"log"
)

// Access is a single recorded bus access.
type Access struct {
	Write bool
	Reg   uint8
	Value uint16
	Err   error // Set if the access failed.
}

func (ac Access) String() (text string) {
	if ac.Write {
		text = fmt.Sprintf("SetW(%d, 0x%04x)", ac.Reg, ac.Value)
	} else {
		text = fmt.Sprintf("GetW(%d) = 0x%04x", ac.Reg, ac.Value)
	}
	if ac.Err != nil {
		text += ": " + ac.Err.Error()
	}
	return
}

// Trace is a Bus that records every access to the Bus it wraps, failed
// accesses included.
type Trace struct {
	Bus      Bus      // Traced bus.
	Verbose  bool     // If set, logs every access.
	Accesses []Access // Accesses, in bus order.
}

var _ Bus = (*Trace)(nil)

func (tr *Trace) record(ac Access) {
	if tr.Verbose {
		log.Printf("bus: %v", ac)
	}
	tr.Accesses = append(tr.Accesses, ac)
}

// SetW writes a main register of the traced bus.
func (tr *Trace) SetW(reg uint8, value uint16) (err error) {
	err = tr.Bus.SetW(reg, value)
	tr.record(Access{Write: true, Reg: reg, Value: value, Err: err})
	return
}

// GetW reads a main register of the traced bus.
func (tr *Trace) GetW(reg uint8) (value uint16, err error) {
	value, err = tr.Bus.GetW(reg)
	tr.record(Access{Reg: reg, Value: value, Err: err})
	return
}

// Reset forgets the recorded accesses.
func (tr *Trace) Reset() {
	tr.Accesses = tr.Accesses[:0]
}
