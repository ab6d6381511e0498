package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of pages before browser recycling.
const DefaultMaxPages = 75

// BrowserManager owns the headless Chrome process behind a Fetcher and
// restarts it every maxPages rendered pages. Chrome's memory baseline
// creeps up over long scrapes even when every page is closed.
//
// Images are disabled at launch: only the DOM is needed to read JSON-LD.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    int64
	maxPages int64
	recycles int
	closed   bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets the number of pages rendered before the browser is
// restarted. Values below 1 disable recycling.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// NewBrowserManager launches a headless browser. Close must be called when
// the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(bm)
	}

	browser, lnchr, err := launch()
	if err != nil {
		return nil, err
	}
	bm.browser, bm.launcher = browser, lnchr
	return bm, nil
}

// Browser returns the browser to open the next page in, restarting it
// first when the page budget is spent. It returns nil after Close.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	if bm.maxPages > 0 && bm.pages >= bm.maxPages {
		bm.recycle()
	}
	return bm.browser
}

// PageDone counts a page against the recycling budget. Failed renders
// count too; they hold renderer memory all the same.
func (bm *BrowserManager) PageDone() {
	bm.mu.Lock()
	bm.pages++
	bm.mu.Unlock()
}

// Recycles reports how many times the browser has been restarted.
func (bm *BrowserManager) Recycles() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.recycles
}

// Close shuts the browser down. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true
	return shutdown(bm.browser, bm.launcher)
}

// recycle swaps in a fresh browser. A failed launch keeps the old one and
// retries on the next call. Must be called with mu held.
func (bm *BrowserManager) recycle() {
	browser, lnchr, err := launch()
	if err != nil {
		return
	}
	_ = shutdown(bm.browser, bm.launcher)
	bm.browser, bm.launcher = browser, lnchr
	bm.pages = 0
	bm.recycles++
}

// LauncherPID returns the process ID of the browser launcher.
// It exists so tests can verify the process is cleaned up.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil || bm.closed {
		return 0
	}
	return bm.launcher.PID()
}

func launch() (*rod.Browser, *launcher.Launcher, error) {
	lnchr := launcher.New().
		Set("blink-settings", "imagesEnabled=false").
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return browser, lnchr, nil
}

func shutdown(browser *rod.Browser, lnchr *launcher.Launcher) error {
	var err error
	if browser != nil {
		err = browser.Close()
	}
	if lnchr != nil {
		lnchr.Kill()
	}
	return err
}
