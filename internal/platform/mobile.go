package platform

import "github.com/hyperscape/shell/internal/deeplink"

// Mobile is the link source of the mobile family. iOS and Android deliver
// the launch URL through the same open-URL callback as later activations,
// so there is no launch query.
type Mobile struct {
	stream
}

// NewMobile creates a mobile source.
func NewMobile() *Mobile {
	return &Mobile{}
}

// Capabilities implements deeplink.Source.
func (m *Mobile) Capabilities() deeplink.Capabilities {
	return deeplink.MobileCapabilities()
}

// Subscribe implements deeplink.Source.
func (m *Mobile) Subscribe(o deeplink.Observer) error {
	return m.subscribe(o)
}

// LaunchURLs implements deeplink.Source. It always fails on mobile.
func (m *Mobile) LaunchURLs() ([]string, error) {
	return nil, ErrLaunchQueryUnsupported
}

// Deliver reports URLs from the host's open-URL callback.
func (m *Mobile) Deliver(urls []string) {
	m.deliver(urls)
}

// Buffered reports how many batches wait for a subscriber.
func (m *Mobile) Buffered() int {
	return m.buffered()
}
