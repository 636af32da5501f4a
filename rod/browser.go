package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/dockharden"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultRecycleAfter is the number of pages a browser serves before it is
// replaced. Chrome's memory baseline keeps growing across page loads even
// when every page is closed.
const DefaultRecycleAfter = 75

// instance is one launched browser process.
type instance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	served   int64
	active   int
	retired  bool
	closed   bool
}

func (in *instance) close() error {
	if in.closed {
		return nil
	}
	in.closed = true

	var err error
	if in.browser != nil {
		err = in.browser.Close()
	}
	if in.launcher != nil {
		in.launcher.Kill()
	}
	return err
}

// launchInstance starts a headless browser with stability flags.
func launchInstance() (*instance, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &instance{browser: browser, launcher: l}, nil
}

// pool leases browser instances to concurrent page loads. Once the current
// instance has served recycleAfter pages it is retired: new leases go to a
// fresh instance and the retired one is closed when its last page is
// released, so documentation loads running in parallel never lose their
// browser mid-navigation.
type pool struct {
	mu           sync.Mutex
	current      *instance
	recycleAfter int64
	closed       bool

	launch func() (*instance, error)
}

func newPool(recycleAfter int64, launch func() (*instance, error)) (*pool, error) {
	in, err := launch()
	if err != nil {
		return nil, err
	}
	return &pool{current: in, recycleAfter: recycleAfter, launch: launch}, nil
}

// acquire leases a browser. The returned release func must be called once
// the page opened on it is closed.
func (p *pool) acquire() (*rod.Browser, func(), error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, nil, dockharden.Errorf(dockharden.EINVALID, "browser is closed")
	}

	if p.recycleAfter > 0 && p.current.served >= p.recycleAfter {
		// A failed launch keeps the old browser in service.
		if next, err := p.launch(); err == nil {
			p.retire(p.current)
			p.current = next
		}
	}

	in := p.current
	in.served++
	in.active++

	var once sync.Once
	return in.browser, func() { once.Do(func() { p.release(in) }) }, nil
}

func (p *pool) release(in *instance) {
	p.mu.Lock()
	defer p.mu.Unlock()

	in.active--
	if in.retired && in.active == 0 {
		_ = in.close()
	}
}

// retire must be called with mu held.
func (p *pool) retire(in *instance) {
	in.retired = true
	if in.active == 0 {
		_ = in.close()
	}
}

// close shuts down the current browser, interrupting any page still loading.
func (p *pool) close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.current.retired = true
	return p.current.close()
}

// pid returns the process ID of the current browser launcher, or 0.
func (p *pool) pid() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil || p.current.launcher == nil || p.current.closed {
		return 0
	}
	return p.current.launcher.PID()
}
