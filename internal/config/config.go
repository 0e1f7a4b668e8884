// Package config loads the optional qmk-notifier configuration file. The
// file supplies device filter values and the verbose flag; command-line
// flags always take priority over it. Load never fails hard: a missing or
// broken file degrades to built-in defaults with a warning on stderr.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/qmk-notifier/qmk-notifier-go/internal/configpaths"
	"github.com/qmk-notifier/qmk-notifier-go/internal/hidraw"
)

// File mirrors the configuration file keys. ID fields are pointers so an
// absent key can be told apart from an explicit zero (PID 0x0000 is a valid
// filter value).
type File struct {
	VendorID  *uint16 `toml:"vendor_id" yaml:"vendor_id" json:"vendor_id"`
	ProductID *uint16 `toml:"product_id" yaml:"product_id" json:"product_id"`
	UsagePage *uint16 `toml:"usage_page" yaml:"usage_page" json:"usage_page"`
	Usage     *uint16 `toml:"usage" yaml:"usage" json:"usage"`
	Verbose   bool    `toml:"verbose" yaml:"verbose" json:"verbose"`
}

// Descriptor merges the file's values over the built-in default descriptor.
func (f *File) Descriptor() hidraw.Descriptor {
	desc := hidraw.DefaultDescriptor
	if f.VendorID != nil {
		desc.VendorID = *f.VendorID
	}
	if f.ProductID != nil {
		desc.ProductID = *f.ProductID
	}
	if f.UsagePage != nil {
		desc.UsagePage = *f.UsagePage
	}
	if f.Usage != nil {
		desc.Usage = *f.Usage
	}
	return desc
}

// Load reads the configuration file at userPath, or the first existing
// candidate path when userPath is empty. Read and parse failures produce a
// warning on stderr and fall back to an empty File.
func Load(userPath string) *File {
	path := userPath
	if path == "" {
		path = configpaths.FirstExisting()
	}
	if path == "" {
		return &File{}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		warnf("cannot read config file %s: %v", path, err)
		return &File{}
	}
	f, err := Parse(path, data)
	if err != nil {
		warnf("cannot parse config file %s: %v (using defaults)", path, err)
		return &File{}
	}
	return f
}

// Parse decodes configuration data, choosing the codec by file extension.
// Files without a recognized extension are treated as TOML.
func Parse(path string, data []byte) (*File, error) {
	var f File
	var err error
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	case ".json":
		err = json.Unmarshal(data, &f)
	default:
		err = toml.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Template returns the configuration keys with their built-in defaults, fit
// for marshalling into an example config file in any supported format.
func Template() map[string]any {
	d := hidraw.DefaultDescriptor
	return map[string]any{
		"vendor_id":  int64(d.VendorID),
		"product_id": int64(d.ProductID),
		"usage_page": int64(d.UsagePage),
		"usage":      int64(d.Usage),
		"verbose":    false,
	}
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "qmk-notifier: warning: %s\n", fmt.Sprintf(format, args...))
}
