// Package icons adapts go-devicons to the tree formatter's icon provider.
package icons

import (
	"os"
	"time"

	devicons "github.com/epilande/go-devicons"
)

type iconFileInfo struct {
	name  string
	isDir bool
}

func (i iconFileInfo) Name() string { return i.name }

func (i iconFileInfo) Size() int64 { return 0 }

func (i iconFileInfo) Mode() os.FileMode {
	if i.isDir {
		return os.ModeDir | 0o755
	}
	return 0
}

func (i iconFileInfo) ModTime() time.Time { return time.Time{} }

func (i iconFileInfo) IsDir() bool { return i.isDir }

func (i iconFileInfo) Sys() any { return nil }

// Provider resolves Nerd Font glyphs by file name.
type Provider struct{}

// NewProvider returns a devicons-backed provider.
func NewProvider() *Provider {
	return &Provider{}
}

// IconFor returns the glyph for a name, or the empty string when none
// resolves. Resolution never errors; absence of an icon is not a failure.
func (p *Provider) IconFor(name string, isDir bool) string {
	if name == "" {
		return ""
	}
	style := devicons.IconForInfo(iconFileInfo{name: name, isDir: isDir})
	return style.Icon
}
