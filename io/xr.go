package io

import (
	"iter"
)

// XRegSetW writes an XR register through the address and data registers.
func XRegSetW(bus Bus, xreg uint16, value uint16) (err error) {
	err = bus.SetW(XM_XR_ADDR, xreg)
	if err != nil {
		return
	}

	err = bus.SetW(XM_XR_DATA, value)
	return
}

// XRegGetW reads an XR register through the address and data registers.
func XRegGetW(bus Bus, xreg uint16) (value uint16, err error) {
	err = bus.SetW(XM_XR_ADDR, xreg)
	if err != nil {
		return
	}

	value, err = bus.GetW(XM_XR_DATA)
	return
}

// XRegStream writes consecutive XR registers starting at xreg, relying on
// the data register auto-increment.
func XRegStream(bus Bus, xreg uint16, values []uint16) (err error) {
	err = bus.SetW(XM_XR_ADDR, xreg)
	if err != nil {
		return
	}

	for _, value := range values {
		err = bus.SetW(XM_XR_DATA, value)
		if err != nil {
			return
		}
	}

	return
}

// XRegRange returns an iterator that reads count consecutive XR registers
// starting at xreg. Iteration stops at the first error, which is stored in
// err.
func XRegRange(bus Bus, xreg uint16, count int, err *error) iter.Seq2[uint16, uint16] {
	return func(yield func(xreg uint16, value uint16) bool) {
		for n := range count {
			addr := xreg + uint16(n)
			value, _err := XRegGetW(bus, addr)
			if _err != nil {
				if err != nil {
					*err = _err
				}
				return
			}
			if !yield(addr, value) {
				return
			}
		}
	}
}
