//go:build darwin

package darwin

import (
	"github.com/mj1618/sysprefs-cli/internal/platform"
	"github.com/mj1618/sysprefs-cli/internal/scripting"
)

func init() {
	platform.NewProviderFunc = func(opts platform.Options) (*platform.Provider, error) {
		return &platform.Provider{
			Runner:        scripting.NewOsascript(opts.Osascript, opts.Timeout),
			Screenshotter: NewScreenshotter(""),
		}, nil
	}
}
