package platform

import (
	"fmt"
	"runtime"
	"time"

	"github.com/mj1618/sysprefs-cli/internal/scripting"
)

const (
	BackendOsascript = "osascript"
	BackendSimulator = "simulator"
)

// Options selects the scripting backend.
type Options struct {
	Backend   string
	Osascript string        // osascript binary path
	Timeout   time.Duration // per-script limit for the osascript backend
	Fixture   string        // YAML state for the simulator ("" = built-in state)
}

// Provider bundles the backends a command needs.
type Provider struct {
	Runner        scripting.Runner
	Screenshotter Screenshotter
	// Simulator is set when Runner is the in-process simulator.
	Simulator *scripting.Simulator
}

// ErrUnsupported is returned when the osascript backend is requested off macOS.
var ErrUnsupported = fmt.Errorf("the osascript backend is not supported on %s/%s; supported: darwin/amd64, darwin/arm64 (use --backend simulator elsewhere)", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/darwin/init.go for the macOS registration.
var NewProviderFunc func(opts Options) (*Provider, error)

// NewProvider returns a Provider for the requested backend.
func NewProvider(opts Options) (*Provider, error) {
	switch opts.Backend {
	case BackendSimulator:
		return newSimulatorProvider(opts)
	case "", BackendOsascript:
		if NewProviderFunc == nil {
			return nil, ErrUnsupported
		}
		return NewProviderFunc(opts)
	default:
		return nil, fmt.Errorf("unknown backend: %q (expected osascript or simulator)", opts.Backend)
	}
}

func newSimulatorProvider(opts Options) (*Provider, error) {
	st := scripting.DefaultState()
	if opts.Fixture != "" {
		var err error
		if st, err = scripting.LoadFixture(opts.Fixture); err != nil {
			return nil, err
		}
	}
	sim := scripting.NewSimulator(st)
	return &Provider{
		Runner:        sim,
		Screenshotter: PlaceholderScreenshotter{},
		Simulator:     sim,
	}, nil
}
