package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qmk-notifier/qmk-notifier-go/internal/config"
	"github.com/qmk-notifier/qmk-notifier-go/internal/hidraw"
)

func uint16p(v uint16) *uint16 { return &v }

func TestResolvePrecedence(t *testing.T) {
	tests := []struct {
		name    string
		send    Send
		cfg     *config.File
		want    hidraw.Descriptor
		wantErr bool
	}{
		{
			name: "built-in defaults",
			send: Send{},
			cfg:  &config.File{},
			want: hidraw.DefaultDescriptor,
		},
		{
			name: "nil config falls back to defaults",
			send: Send{},
			want: hidraw.DefaultDescriptor,
		},
		{
			name: "config file overrides defaults",
			send: Send{},
			cfg:  &config.File{VendorID: uint16p(0x1234), Usage: uint16p(0x62)},
			want: hidraw.Descriptor{VendorID: 0x1234, ProductID: 0x0000, UsagePage: 0xFF60, Usage: 0x62},
		},
		{
			name: "flags override config file",
			send: Send{VendorID: "0xBEEF", UsagePage: "65280"},
			cfg:  &config.File{VendorID: uint16p(0x1234), UsagePage: uint16p(0x0001)},
			want: hidraw.Descriptor{VendorID: 0xBEEF, ProductID: 0x0000, UsagePage: 0xFF00, Usage: 0x61},
		},
		{
			name: "decimal flags",
			send: Send{ProductID: "4660"},
			cfg:  &config.File{},
			want: hidraw.Descriptor{VendorID: 0xFEED, ProductID: 0x1234, UsagePage: 0xFF60, Usage: 0x61},
		},
		{
			name:    "malformed flag value",
			send:    Send{VendorID: "0xZZZZ"},
			cfg:     &config.File{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.send.resolve(tt.cfg)
			if tt.wantErr {
				var hexErr *hidraw.InvalidHexError
				require.Error(t, err)
				assert.True(t, errors.As(err, &hexErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMessagePayload(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    []byte
	}{
		{name: "short message", message: "hi", want: []byte{0x68, 0x69, 0x03}},
		{name: "ping", message: "ping", want: []byte{0x70, 0x69, 0x6E, 0x67, 0x03}},
		{name: "empty message", message: "", want: []byte{0x03}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, messagePayload(tt.message))
		})
	}
}

func stringp(s string) *string { return &s }

func TestSendPayload(t *testing.T) {
	tests := []struct {
		name        string
		message     *string
		want        []byte
		wantMissing bool
	}{
		{name: "message present", message: stringp("ping"), want: []byte{0x70, 0x69, 0x6E, 0x67, 0x03}},
		{
			// An explicitly empty message still sends the bare ETX frame,
			// clearing the notification on the keyboard.
			name:    "empty message sends terminator only",
			message: stringp(""),
			want:    []byte{0x03},
		},
		{name: "absent message is a usage error", message: nil, wantMissing: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Send{Message: tt.message}
			got, err := s.payload()
			if tt.wantMissing {
				var missing *MissingParameterError
				require.Error(t, err)
				assert.True(t, errors.As(err, &missing))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMissingParameterError(t *testing.T) {
	err := &MissingParameterError{Name: "message or --list flag"}
	assert.Equal(t, "missing required parameter: message or --list flag", err.Error())
}
