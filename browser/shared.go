// Package browser drives a headless Chromium to render cut sheets to images.
package browser

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Session is a launched browser with one open page.
type Session struct {
	Launcher *launcher.Launcher
	Browser  *rod.Browser
	Page     *rod.Page
}

// NewSession launches a headless browser and opens a blank page.
func NewSession(ctx context.Context) (*Session, error) {
	l := launcher.New().Context(ctx).Headless(true)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("error launching browser: %v", err)
	}

	browser := rod.New().Context(ctx).ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("error connecting to browser: %v", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		browser.Close()
		l.Cleanup()
		return nil, fmt.Errorf("failed to create page: %v", err)
	}

	return &Session{
		Launcher: l,
		Browser:  browser,
		Page:     page.Timeout(30 * time.Second),
	}, nil
}

func (s *Session) Close() {
	if s.Page != nil {
		s.Page.Close()
	}
	if s.Browser != nil {
		s.Browser.Close()
	}
	if s.Launcher != nil {
		s.Launcher.Cleanup()
	}
}

// NavigateAndWait navigates to a URL and waits for it to load
func (s *Session) NavigateAndWait(target string) error {
	if err := s.Page.Navigate(target); err != nil {
		return fmt.Errorf("error navigating to %s: %v", target, err)
	}
	if err := s.Page.WaitLoad(); err != nil {
		return fmt.Errorf("error waiting for page load: %v", err)
	}
	return nil
}

// Snapshot renders a local HTML file and writes a full-page PNG.
func Snapshot(ctx context.Context, htmlPath, pngPath string) error {
	target, err := FileURL(htmlPath)
	if err != nil {
		return err
	}

	s, err := NewSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1280,
		Height:            800,
		DeviceScaleFactor: 1,
	}); err != nil {
		return fmt.Errorf("error setting viewport: %v", err)
	}
	if err := s.NavigateAndWait(target); err != nil {
		return err
	}

	png, err := s.Page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return fmt.Errorf("error capturing screenshot: %v", err)
	}
	if err := os.WriteFile(pngPath, png, 0644); err != nil {
		return fmt.Errorf("error writing screenshot: %v", err)
	}
	return nil
}

// FileURL turns a local path into an absolute file:// URL.
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("cannot open %s: %v", path, err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}
