// Package capture renders exactly one fixture in a browser page and
// writes its canonical screenshot artifact.
package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vizsnap/internal/fixture"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// ArtifactName is the canonical file name written inside each fixture's
// output subfolder. At most one artifact exists per fixture at any time;
// a new capture unconditionally replaces the prior one.
const ArtifactName = "initial_state.png"

// ErrFixtureNotFound is returned when the capture target does not exist
// on disk. The check runs before any browser resource is acquired and
// before the output folder is created.
var ErrFixtureNotFound = errors.New("target fixture not found")

// Config holds capture session settings.
type Config struct {
	FixturesDir string
	OutputRoot  string
	Headless    bool

	ViewportWidth  int
	ViewportHeight int

	// DefaultTimeout bounds page operations that have no dedicated ceiling.
	DefaultTimeout time.Duration
	// NavigationTimeout bounds navigation up to DOMContentLoaded.
	NavigationTimeout time.Duration
	// ScreenshotTimeout bounds the capture itself. Shorter than the
	// navigation ceiling since rendering is local.
	ScreenshotTimeout time.Duration
	// SettleDelay is a fixed wait after DOMContentLoaded so the fixture's
	// synchronous setup script can finish mutating the DOM. Fixtures
	// expose no readiness signal, so this stays a heuristic.
	SettleDelay time.Duration

	Logger *zap.Logger
}

func (c *Config) defaults() {
	if c.ViewportWidth <= 0 {
		c.ViewportWidth = 1920
	}
	if c.ViewportHeight <= 0 {
		c.ViewportHeight = 1080
	}
	if c.DefaultTimeout <= 0 {
		c.DefaultTimeout = 10 * time.Second
	}
	if c.NavigationTimeout <= 0 {
		c.NavigationTimeout = 15 * time.Second
	}
	if c.ScreenshotTimeout <= 0 {
		c.ScreenshotTimeout = 8 * time.Second
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = time.Second
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
}

// Report describes a completed capture.
type Report struct {
	RunID        string
	Fixture      string
	Address      string
	ArtifactPath string
	ArtifactSize int64
	Elapsed      time.Duration
}

// Session produces one artifact for one capture target per invocation.
// State is transient: the browser, launcher, and page are torn down at
// the end of Run regardless of outcome.
type Session struct {
	cfg      Config
	resolver *fixture.Resolver
}

// NewSession creates a capture session. Zero config fields get defaults.
func NewSession(cfg Config) *Session {
	cfg.defaults()
	return &Session{cfg: cfg, resolver: fixture.NewResolver(cfg.FixturesDir)}
}

// ArtifactPath returns the deterministic artifact location for a fixture:
// <output-root>/<name minus extension>/initial_state.png.
func (s *Session) ArtifactPath(target string) string {
	base := strings.TrimSuffix(target, fixture.Ext)
	return filepath.Join(s.cfg.OutputRoot, base, ArtifactName)
}

// Run validates the target, renders it, and writes the artifact. Any
// failure after validation propagates so the supervising process sees a
// non-zero exit; there is no retry and no partial-success state.
func (s *Session) Run(ctx context.Context, runID, target string) (*Report, error) {
	log := s.cfg.Logger
	start := time.Now()

	// Validation always completes before any browser resource is acquired.
	if !s.resolver.Exists(target) {
		return nil, fmt.Errorf("%w: %s (looked in %s)", ErrFixtureNotFound, target, s.cfg.FixturesDir)
	}

	artifact := s.ArtifactPath(target)
	if err := os.MkdirAll(filepath.Dir(artifact), 0o755); err != nil {
		return nil, fmt.Errorf("create output folder: %w", err)
	}

	address := s.resolver.Address(target)
	log.Info("capturing fixture",
		zap.String("run_id", runID),
		zap.String("fixture", target),
		zap.String("address", address))

	page, cleanup, err := s.openPage(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if err := s.navigate(ctx, page, address); err != nil {
		return nil, err
	}

	// Heuristic settle wait, not an event-driven one.
	select {
	case <-time.After(s.cfg.SettleDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	size, err := s.screenshot(ctx, page, artifact)
	if err != nil {
		return nil, err
	}

	log.Info("artifact written",
		zap.String("run_id", runID),
		zap.String("path", artifact),
		zap.Int64("bytes", size))

	return &Report{
		RunID:        runID,
		Fixture:      target,
		Address:      address,
		ArtifactPath: artifact,
		ArtifactSize: size,
		Elapsed:      time.Since(start),
	}, nil
}

// openPage launches Chrome, connects, and opens the single page for this
// invocation. The returned cleanup tears down page, browser, and launcher.
func (s *Session) openPage(ctx context.Context) (*rod.Page, func(), error) {
	l := launcher.New().Headless(s.cfg.Headless)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, nil, fmt.Errorf("connect to chrome: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		_ = browser.Close()
		l.Cleanup()
		return nil, nil, fmt.Errorf("open page: %w", err)
	}

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             s.cfg.ViewportWidth,
		Height:            s.cfg.ViewportHeight,
		DeviceScaleFactor: 1.0,
		Mobile:            false,
	}).Call(page.Timeout(s.cfg.DefaultTimeout)); err != nil {
		s.cfg.Logger.Warn("failed to set viewport", zap.Error(err))
	}

	cleanup := func() {
		_ = page.Close()
		_ = browser.Close()
		l.Cleanup()
	}
	return page, cleanup, nil
}

// navigate drives the page to address and waits only for DOMContentLoaded.
// Fixtures are self-contained, so subresource/network settle is not a
// meaningful readiness point for them.
func (s *Session) navigate(ctx context.Context, page *rod.Page, address string) error {
	navCtx, cancel := context.WithTimeout(ctx, s.cfg.NavigationTimeout)
	defer cancel()

	p := page.Context(navCtx)
	wait := p.WaitEvent(&proto.PageDomContentEventFired{})
	if err := p.Navigate(address); err != nil {
		return fmt.Errorf("navigate %s: %w", address, err)
	}
	wait()
	if err := navCtx.Err(); err != nil {
		return fmt.Errorf("navigation to %s did not reach DOMContentLoaded within %s: %w",
			address, s.cfg.NavigationTimeout, err)
	}
	return nil
}

// screenshot captures a full-page PNG under its own ceiling and writes it
// to path, replacing any prior artifact.
func (s *Session) screenshot(ctx context.Context, page *rod.Page, path string) (int64, error) {
	shotCtx, cancel := context.WithTimeout(ctx, s.cfg.ScreenshotTimeout)
	defer cancel()

	data, err := page.Context(shotCtx).Screenshot(true, nil)
	if err != nil {
		return 0, fmt.Errorf("screenshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("write artifact: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat artifact: %w", err)
	}
	return info.Size(), nil
}
