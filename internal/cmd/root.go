// Package cmd defines the qmk-notifier command line in kong command structs.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/qmk-notifier/qmk-notifier-go/internal/config"
	"github.com/qmk-notifier/qmk-notifier-go/internal/hidraw"
)

// etx is the End-of-Text byte appended to every message so the firmware can
// detect the end of a multi-report payload.
const etx = 0x03

// LogConfig groups the ambient logging flags.
type LogConfig struct {
	Level string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"QMK_NOTIFIER_LOG_LEVEL"`
	File  string `help:"Write logs to this file instead of the console" env:"QMK_NOTIFIER_LOG_FILE"`
}

// CLI is the root command structure parsed by kong.
type CLI struct {
	Send   Send          `cmd:"" default:"withargs" help:"Send a message to the keyboard's raw HID endpoint"`
	Config ConfigCommand `cmd:"" help:"Manage configuration files"`

	ConfigPath string    `name:"config" help:"Path to a configuration file" placeholder:"PATH" env:"QMK_NOTIFIER_CONFIG"`
	Log        LogConfig `embed:"" prefix:"log."`
}

// MissingParameterError is the usage error for an invocation that neither
// provides a message nor asks for the device list.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return "missing required parameter: " + e.Name
}

// Send delivers a message to every matching keyboard, or lists HID devices
// when --list is given.
type Send struct {
	// Message is a pointer so an explicitly empty message can be told apart
	// from a missing one: "" sends the bare ETX handshake frame, which
	// clears the current notification on the keyboard.
	Message *string `arg:"" optional:"" help:"Message to send to the keyboard"`

	VendorID  string `short:"i" placeholder:"VID" help:"USB vendor ID (decimal or 0xHEX) [default: 0xFEED]"`
	ProductID string `short:"p" placeholder:"PID" help:"USB product ID (decimal or 0xHEX) [default: 0x0000]"`
	UsagePage string `short:"u" placeholder:"PAGE" help:"HID usage page (decimal or 0xHEX) [default: 0xFF60]"`
	Usage     string `short:"a" placeholder:"USAGE" help:"HID usage (decimal or 0xHEX) [default: 0x61]"`
	Verbose   bool   `short:"v" help:"Enable verbose output"`
	List      bool   `short:"l" help:"List all HID devices"`
}

// Run is called by kong when the send command is executed.
func (s *Send) Run(logger *slog.Logger, cfg *config.File) error {
	desc, err := s.resolve(cfg)
	if err != nil {
		return err
	}

	if s.List {
		return hidraw.ListDevices(os.Stdout)
	}
	payload, err := s.payload()
	if err != nil {
		return err
	}

	logger.Debug("using device filter",
		"vendorId", hex16(desc.VendorID), "productId", hex16(desc.ProductID),
		"usagePage", hex16(desc.UsagePage), "usage", hex16(desc.Usage))

	logger.Debug("message length including terminator", "bytes", len(payload))

	return hidraw.Send(desc, payload, logger)
}

// resolve merges the descriptor sources: CLI flag > config file > default.
func (s *Send) resolve(cfg *config.File) (hidraw.Descriptor, error) {
	desc := hidraw.DefaultDescriptor
	if cfg != nil {
		desc = cfg.Descriptor()
	}

	for _, f := range []struct {
		value string
		dst   *uint16
	}{
		{s.VendorID, &desc.VendorID},
		{s.ProductID, &desc.ProductID},
		{s.UsagePage, &desc.UsagePage},
		{s.Usage, &desc.Usage},
	} {
		if f.value == "" {
			continue
		}
		v, err := hidraw.ParseUint16(f.value)
		if err != nil {
			return desc, err
		}
		*f.dst = v
	}
	return desc, nil
}

// payload returns the report payload for the given message, or a usage
// error when no message was supplied at all.
func (s *Send) payload() ([]byte, error) {
	if s.Message == nil {
		return nil, &MissingParameterError{Name: "message or --list flag"}
	}
	return messagePayload(*s.Message), nil
}

// messagePayload returns the UTF-8 message bytes with the ETX terminator
// appended.
func messagePayload(msg string) []byte {
	return append([]byte(msg), etx)
}

func hex16(v uint16) string {
	return fmt.Sprintf("0x%04X", v)
}
