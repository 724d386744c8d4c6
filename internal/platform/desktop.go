package platform

import (
	"slices"
	"strings"

	"github.com/hyperscape/shell/internal/deeplink"
)

// Desktop is the link source of the desktop family. Windows and Linux hand
// the activation URL to the process as a command-line argument, both on a
// cold launch and when a second instance forwards its arguments. macOS
// delivers it as an open-URL event.
type Desktop struct {
	stream
	args    []string
	schemes []string
}

// NewDesktop creates a desktop source. args are the process arguments
// without the program name; only those using one of schemes count as
// launch URLs.
func NewDesktop(args []string, schemes []string) *Desktop {
	return &Desktop{
		args:    slices.Clone(args),
		schemes: slices.Clone(schemes),
	}
}

// Capabilities implements deeplink.Source.
func (d *Desktop) Capabilities() deeplink.Capabilities {
	return deeplink.DesktopCapabilities()
}

// Subscribe implements deeplink.Source.
func (d *Desktop) Subscribe(o deeplink.Observer) error {
	return d.subscribe(o)
}

// LaunchURLs implements deeplink.Source.
func (d *Desktop) LaunchURLs() ([]string, error) {
	return FilterURLs(d.args, d.schemes), nil
}

// Deliver reports URLs the OS delivered while running.
func (d *Desktop) Deliver(urls []string) {
	d.deliver(urls)
}

// DeliverArgs reports the arguments a second instance was started with.
// Arguments that are not deep links are ignored.
func (d *Desktop) DeliverArgs(args []string) {
	d.deliver(FilterURLs(args, d.schemes))
}

// Buffered reports how many batches wait for a subscriber.
func (d *Desktop) Buffered() int {
	return d.buffered()
}

// MatchScheme reports whether raw starts with "<scheme>:" followed by at
// least one character, for one of schemes, ignoring case.
func MatchScheme(raw string, schemes []string) bool {
	for _, scheme := range schemes {
		if scheme == "" || len(raw) <= len(scheme)+1 {
			continue
		}
		if raw[len(scheme)] == ':' && strings.EqualFold(raw[:len(scheme)], scheme) {
			return true
		}
	}
	return false
}

// FilterURLs returns the elements of args that match one of schemes, in order.
func FilterURLs(args []string, schemes []string) []string {
	var urls []string
	for _, arg := range args {
		if MatchScheme(arg, schemes) {
			urls = append(urls, arg)
		}
	}
	return urls
}
