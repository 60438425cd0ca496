// Package rod implements sitecrawl.Session and sitecrawl.Authenticator with
// a Chrome browser driven by github.com/go-rod/rod.
package rod

import (
	"fmt"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// browser owns a launched Chrome process and the connection to it.
type browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	closed   atomic.Bool
}

// launchBrowser starts a new browser instance with stability flags.
func launchBrowser(headless bool) (*browser, error) {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(headless)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		lnchr.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &browser{browser: b, launcher: lnchr}, nil
}

// Close shuts down the browser and kills the launched process.
// Close is safe to call multiple times.
func (b *browser) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}

	err := b.browser.Close()
	b.launcher.Kill()
	return err
}
