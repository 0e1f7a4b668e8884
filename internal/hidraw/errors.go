package hidraw

import "fmt"

// InitError indicates the hidapi backend could not be initialized.
type InitError struct {
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initializing hidapi: %v", e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// DeviceNotFoundError is returned when no attached HID device matches the
// requested descriptor. It carries the exact filter values used so callers
// can report them.
type DeviceNotFoundError struct {
	Descriptor Descriptor
}

func (e *DeviceNotFoundError) Error() string {
	d := e.Descriptor
	return fmt.Sprintf("no HID device found with VID: 0x%04X, PID: 0x%04X, usage page: 0x%04X, usage: 0x%04X",
		d.VendorID, d.ProductID, d.UsagePage, d.Usage)
}

// DeviceOpenError is returned when devices matched the descriptor but none
// of them could be opened, typically due to missing permissions.
type DeviceOpenError struct {
	Matched int
	Err     error
}

func (e *DeviceOpenError) Error() string {
	return fmt.Sprintf("matched %d device(s) but could not open any: %v", e.Matched, e.Err)
}

func (e *DeviceOpenError) Unwrap() error { return e.Err }

// InvalidHexError is returned by ParseUint16 for malformed 0x-prefixed input.
type InvalidHexError struct {
	Value string
	Err   error
}

func (e *InvalidHexError) Error() string {
	return fmt.Sprintf("invalid hex value %q: %v", e.Value, e.Err)
}

func (e *InvalidHexError) Unwrap() error { return e.Err }

// InvalidDecimalError is returned by ParseUint16 for malformed decimal input.
type InvalidDecimalError struct {
	Value string
	Err   error
}

func (e *InvalidDecimalError) Error() string {
	return fmt.Sprintf("invalid decimal value %q: %v", e.Value, e.Err)
}

func (e *InvalidDecimalError) Unwrap() error { return e.Err }

// SendReportError is the aggregate result when every matched device failed
// to take the report batch.
type SendReportError struct {
	Failed int
}

func (e *SendReportError) Error() string {
	return fmt.Sprintf("sending reports failed on all %d device(s)", e.Failed)
}

// PartialSendError is the aggregate result when some, but not all, matched
// devices took the report batch.
type PartialSendError struct {
	Succeeded int
	Failed    int
}

func (e *PartialSendError) Error() string {
	return fmt.Sprintf("sending reports succeeded on %d device(s) but failed on %d", e.Succeeded, e.Failed)
}
