// Package hidraw talks to the raw HID endpoint QMK firmware exposes on its
// keyboards. It matches attached devices against a vendor/product/usage
// descriptor, frames byte payloads into fixed-size output reports and fans
// a payload out across every matched device.
package hidraw

import (
	"fmt"
	"io"

	hid "github.com/sstallion/go-hid"
)

// Descriptor identifies a class of target devices. It is not unique to one
// physical unit; several attached keyboards may match the same descriptor.
type Descriptor struct {
	VendorID  uint16
	ProductID uint16
	UsagePage uint16
	Usage     uint16
}

// DefaultDescriptor matches the raw HID interface QMK firmware advertises
// out of the box.
var DefaultDescriptor = Descriptor{
	VendorID:  0xFEED,
	ProductID: 0x0000,
	UsagePage: 0xFF60,
	Usage:     0x61,
}

func (d Descriptor) String() string {
	return fmt.Sprintf("VID: 0x%04X, PID: 0x%04X, usage page: 0x%04X, usage: 0x%04X",
		d.VendorID, d.ProductID, d.UsagePage, d.Usage)
}

// Matches reports whether the enumerated device info equals the descriptor
// on all four filter fields.
func (d Descriptor) Matches(info *hid.DeviceInfo) bool {
	return info.VendorID == d.VendorID &&
		info.ProductID == d.ProductID &&
		info.UsagePage == d.UsagePage &&
		info.Usage == d.Usage
}

// Device is an opened raw HID handle. *hid.Device implements it.
type Device interface {
	ReportDevice
	Close() error
}

// enumerate and openPath wrap the hidapi backend; tests replace them.
var (
	enumerate = func(fn func(info *hid.DeviceInfo) error) error {
		return hid.Enumerate(hid.VendorIDAny, hid.ProductIDAny, fn)
	}
	openPath = func(path string) (Device, error) {
		return hid.OpenPath(path)
	}
)

// OpenAll enumerates the host's HID devices and opens every one matching the
// descriptor, in enumeration order. Devices that match but fail to open are
// dropped from the result. It returns DeviceNotFoundError when nothing
// matches and DeviceOpenError when matches exist but none could be opened.
// The caller owns the returned handles and must close them.
func OpenAll(desc Descriptor) ([]Device, error) {
	var paths []string
	err := enumerate(func(info *hid.DeviceInfo) error {
		if desc.Matches(info) {
			paths = append(paths, info.Path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("enumerating HID devices: %w", err)
	}
	if len(paths) == 0 {
		return nil, &DeviceNotFoundError{Descriptor: desc}
	}

	var (
		opened  []Device
		lastErr error
	)
	for _, p := range paths {
		dev, err := openPath(p)
		if err != nil {
			lastErr = err
			continue
		}
		opened = append(opened, dev)
	}
	if len(opened) == 0 {
		return nil, &DeviceOpenError{Matched: len(paths), Err: lastErr}
	}
	return opened, nil
}

// ListDevices writes a description of every HID device visible to the host,
// with best-effort manufacturer and product strings from enumeration.
func ListDevices(w io.Writer) error {
	if err := hid.Init(); err != nil {
		return &InitError{Err: err}
	}
	defer hid.Exit()

	fmt.Fprintln(w, "Available HID devices:")
	return hid.Enumerate(hid.VendorIDAny, hid.ProductIDAny, func(info *hid.DeviceInfo) error {
		fmt.Fprintf(w, "VID: 0x%04X, PID: 0x%04X, Usage Page: 0x%04X, Usage: 0x%04X, Path: %s\n",
			info.VendorID, info.ProductID, info.UsagePage, info.Usage, info.Path)
		if info.MfrStr != "" {
			fmt.Fprintf(w, "  Manufacturer: %s\n", info.MfrStr)
		}
		if info.ProductStr != "" {
			fmt.Fprintf(w, "  Product: %s\n", info.ProductStr)
		}
		fmt.Fprintln(w)
		return nil
	})
}
