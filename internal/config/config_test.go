package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qmk-notifier/qmk-notifier-go/internal/config"
	"github.com/qmk-notifier/qmk-notifier-go/internal/hidraw"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		data    string
		want    hidraw.Descriptor
		verbose bool
		wantErr bool
	}{
		{
			name: "toml with hex literals",
			path: "config.toml",
			data: "vendor_id = 0x1234\nusage_page = 0xFF60\nverbose = true\n",
			want: hidraw.Descriptor{VendorID: 0x1234, ProductID: 0x0000, UsagePage: 0xFF60, Usage: 0x61},

			verbose: true,
		},
		{
			name: "toml with decimal values",
			path: "config.toml",
			data: "vendor_id = 65261\nproduct_id = 1\n",
			want: hidraw.Descriptor{VendorID: 0xFEED, ProductID: 0x0001, UsagePage: 0xFF60, Usage: 0x61},
		},
		{
			name: "empty file keeps defaults",
			path: "config.toml",
			data: "",
			want: hidraw.DefaultDescriptor,
		},
		{
			name: "yaml",
			path: "config.yaml",
			data: "vendor_id: 0x1234\nusage: 97\n",
			want: hidraw.Descriptor{VendorID: 0x1234, ProductID: 0x0000, UsagePage: 0xFF60, Usage: 0x61},
		},
		{
			name: "json",
			path: "config.json",
			data: `{"product_id": 4660, "verbose": true}`,
			want: hidraw.Descriptor{VendorID: 0xFEED, ProductID: 0x1234, UsagePage: 0xFF60, Usage: 0x61},

			verbose: true,
		},
		{
			name:    "malformed toml",
			path:    "config.toml",
			data:    "vendor_id = = nope",
			wantErr: true,
		},
		{
			name:    "malformed json",
			path:    "config.json",
			data:    "{",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := config.Parse(tt.path, []byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Descriptor())
			assert.Equal(t, tt.verbose, f.Verbose)
		})
	}
}

func TestLoadExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("vendor_id = 0xBEEF\n"), 0o644))

	f := config.Load(path)
	require.NotNil(t, f.VendorID)
	assert.Equal(t, uint16(0xBEEF), *f.VendorID)
}

func TestLoadBrokenFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0o644))

	f := config.Load(path)
	assert.Equal(t, hidraw.DefaultDescriptor, f.Descriptor())
	assert.False(t, f.Verbose)
}

func TestTemplateMatchesDefaults(t *testing.T) {
	tpl := config.Template()
	assert.Equal(t, int64(0xFEED), tpl["vendor_id"])
	assert.Equal(t, int64(0x0000), tpl["product_id"])
	assert.Equal(t, int64(0xFF60), tpl["usage_page"])
	assert.Equal(t, int64(0x61), tpl["usage"])
	assert.Equal(t, false, tpl["verbose"])
}
