// Package desktop hosts the web UI in a native window. The Wails host is
// only compiled with the 'desktop' build tag; other builds run headless.
package desktop
