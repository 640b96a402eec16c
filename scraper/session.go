// backend/scraper/session.go
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/browser"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"

	"github.com/flexwatch/flexwatch/backend/config"
	"github.com/flexwatch/flexwatch/backend/models"
)

// ErrPortalInteraction marks an unexpected failure at some step of the
// portal automation. It is never fatal to the overall pipeline; the
// affected station degrades to an empty result.
var ErrPortalInteraction = errors.New("portal interaction failed")

// ErrNoDataOrTimeout marks a result table that never rendered and no
// explicit no-results marker either. The station may simply have zero
// active notices; callers treat this as an empty batch with a warning.
var ErrNoDataOrTimeout = errors.New("no data or table render timeout")

// SessionState tracks a fetch session through its fixed progression.
type SessionState int

const (
	StateIdle SessionState = iota
	StateNavigated
	StateQueried
	StateTableReady
	StateDownloaded
	StateParsed
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateNavigated:
		return "Navigated"
	case StateQueried:
		return "Queried"
	case StateTableReady:
		return "TableReady"
	case StateDownloaded:
		return "Downloaded"
	case StateParsed:
		return "Parsed"
	case StateClosed:
		return "Closed"
	}
	return "Unknown"
}

// Session drives one disposable headless browser against the NOTAM
// search portal. Every fetch uses a fresh browser process and a fresh
// scratch download directory; Close releases both on every exit path.
type Session struct {
	portal    config.PortalConfig
	selectors config.PortalSelectorsConfig

	ctx         context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc

	state       SessionState
	downloadDir string
	downloaded  chan string
}

// NewSession launches the browser and wires download capture. The
// caller must Close the session, normally via defer, regardless of how
// the fetch ends.
func NewSession(parent context.Context, portal config.PortalConfig, selectors config.PortalSelectorsConfig) (*Session, error) {
	downloadDir, err := os.MkdirTemp("", "notam-export-*")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create download directory: %v", ErrPortalInteraction, err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(portal.UserAgent),
		chromedp.WindowSize(1920, 1080),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx)

	s := &Session{
		portal:      portal,
		selectors:   selectors,
		ctx:         ctx,
		cancelCtx:   cancelCtx,
		cancelAlloc: cancelAlloc,
		state:       StateIdle,
		downloadDir: downloadDir,
		downloaded:  make(chan string, 1),
	}

	chromedp.ListenTarget(ctx, func(ev interface{}) {
		if e, ok := ev.(*browser.EventDownloadProgress); ok && e.State == browser.DownloadProgressStateCompleted {
			select {
			case s.downloaded <- e.GUID:
			default:
			}
		}
	})

	err = chromedp.Run(ctx, browser.
		SetDownloadBehavior(browser.SetDownloadBehaviorBehaviorAllowAndName).
		WithDownloadPath(downloadDir).
		WithEventsEnabled(true))
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("%w: failed to launch browser: %v", ErrPortalInteraction, err)
	}
	return s, nil
}

// Close tears down the browser process and the scratch directory. Safe
// to call more than once.
func (s *Session) Close() {
	if s.state == StateClosed {
		return
	}
	s.state = StateClosed
	s.cancelCtx()
	s.cancelAlloc()
	if s.downloadDir != "" {
		os.RemoveAll(s.downloadDir)
	}
}

// Fetch runs the full portal flow for the given stations and returns
// the path of the captured export file. The caller owns parsing; the
// file lives in the session's scratch directory and disappears on
// Close.
func (s *Session) Fetch(stations []models.StationCode) (string, error) {
	if err := s.navigate(); err != nil {
		return "", err
	}
	if err := s.submitQuery(stations); err != nil {
		return "", err
	}
	if err := s.awaitTable(); err != nil {
		return "", err
	}
	if err := s.sortByLocation(); err != nil {
		return "", err
	}
	return s.downloadExport()
}

func (s *Session) navigate() error {
	log.Printf("Scraper: navigating to %s", s.portal.URL)
	if err := chromedp.Run(s.ctx, chromedp.Navigate(s.portal.URL)); err != nil {
		return fmt.Errorf("%w: failed to open portal page: %v", ErrPortalInteraction, err)
	}
	s.state = StateNavigated
	s.dismissDisclaimer()
	return nil
}

// dismissDisclaimer clicks through the portal's recurring disclaimer
// interstitial. The interstitial can reappear after any navigation, so
// this is re-run after every navigation-sensitive action, bounded by
// the configured retry count. A disclaimer that never shows up is the
// normal case and not an error.
func (s *Session) dismissDisclaimer() {
	buttonXPath := fmt.Sprintf(`//button[contains(., %q)]`, s.selectors.DisclaimerText)
	for attempt := 0; attempt < s.portal.DisclaimerRetries; attempt++ {
		clickCtx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
		err := chromedp.Run(clickCtx,
			chromedp.Click(buttonXPath, chromedp.BySearch),
			chromedp.Sleep(2*time.Second),
		)
		cancel()
		if err != nil {
			return
		}
		log.Printf("Scraper: dismissed disclaimer interstitial (attempt %d)", attempt+1)
	}
}

func (s *Session) submitQuery(stations []models.StationCode) error {
	codes := make([]string, 0, len(stations))
	for _, st := range stations {
		codes = append(codes, st.String())
	}
	query := strings.Join(codes, ", ")

	inputSel := fmt.Sprintf("input[name=%q]", s.selectors.SearchInputName)
	log.Printf("Scraper: submitting query for %s", query)

	waitCtx, cancel := context.WithTimeout(s.ctx, 12*time.Second)
	err := chromedp.Run(waitCtx, chromedp.WaitVisible(inputSel, chromedp.ByQuery))
	cancel()
	if err != nil {
		// The disclaimer may be covering the form; clear it and retry.
		s.dismissDisclaimer()
		waitCtx, cancel = context.WithTimeout(s.ctx, 8*time.Second)
		err = chromedp.Run(waitCtx, chromedp.WaitVisible(inputSel, chromedp.ByQuery))
		cancel()
		if err != nil {
			return fmt.Errorf("%w: search input never appeared: %v", ErrPortalInteraction, err)
		}
	}

	err = chromedp.Run(s.ctx,
		chromedp.SetValue(inputSel, query, chromedp.ByQuery),
		chromedp.SendKeys(inputSel, kb.Enter, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("%w: failed to submit search query: %v", ErrPortalInteraction, err)
	}
	s.state = StateQueried
	s.dismissDisclaimer()
	return nil
}

// awaitTable polls until the result table has rendered with at least
// one data row, bounded by the configured total wait. On timeout it
// probes for the portal's explicit no-results marker to distinguish
// "zero active notices" from a page that failed to render.
func (s *Session) awaitTable() error {
	predicate := fmt.Sprintf(
		"document.querySelectorAll(%q).length > 0 && document.querySelectorAll(%q)[0].rows.length > 1",
		s.selectors.ResultTableClass, s.selectors.ResultTableClass)

	var rendered bool
	err := chromedp.Run(s.ctx,
		chromedp.Poll(predicate, &rendered, chromedp.WithPollingTimeout(s.portal.TableWait)))
	if err != nil {
		if s.hasNoResultsMarker() {
			return ErrNoDataOrTimeout
		}
		return fmt.Errorf("%w: result table never rendered within %s: %v",
			ErrPortalInteraction, s.portal.TableWait, err)
	}
	s.state = StateTableReady
	return nil
}

func (s *Session) hasNoResultsMarker() bool {
	probe := fmt.Sprintf("document.body.innerText.includes(%q)", s.selectors.NoResultsMarker)
	var found bool
	probeCtx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
	defer cancel()
	if err := chromedp.Run(probeCtx, chromedp.Evaluate(probe, &found)); err != nil {
		return false
	}
	return found
}

// sortByLocation clicks the location column header so multi-station
// results export in a deterministic order.
func (s *Session) sortByLocation() error {
	headerXPath := fmt.Sprintf(`//th[contains(., %q)]`, s.selectors.LocationHeader)
	err := chromedp.Run(s.ctx,
		chromedp.Click(headerXPath, chromedp.BySearch),
		chromedp.Sleep(1*time.Second),
	)
	if err != nil {
		return fmt.Errorf("%w: failed to sort results by location: %v", ErrPortalInteraction, err)
	}
	return nil
}

func (s *Session) downloadExport() (string, error) {
	log.Printf("Scraper: triggering export download")
	if err := chromedp.Run(s.ctx, chromedp.Click(s.selectors.ExportIconClass, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("%w: failed to click export control: %v", ErrPortalInteraction, err)
	}

	select {
	case guid := <-s.downloaded:
		s.state = StateDownloaded
		path := filepath.Join(s.downloadDir, guid)
		log.Printf("Scraper: export captured at %s", path)
		return path, nil
	case <-time.After(s.portal.DownloadWait):
		return "", fmt.Errorf("%w: export download did not complete within %s",
			ErrPortalInteraction, s.portal.DownloadWait)
	case <-s.ctx.Done():
		return "", fmt.Errorf("%w: browser session ended during download: %v",
			ErrPortalInteraction, s.ctx.Err())
	}
}

// markParsed records the terminal successful state; parsing itself
// happens outside the session.
func (s *Session) markParsed() {
	s.state = StateParsed
}
