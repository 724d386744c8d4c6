package deeplink

// Family identifies the platform family a Source belongs to.
type Family string

const (
	FamilyDesktop Family = "desktop"
	FamilyMobile  Family = "mobile"
)

// Capabilities describes what a Source can do beyond live delivery.
type Capabilities struct {
	Family Family
	// LaunchURLQuery reports whether the Source can be asked for the URLs
	// the process was launched with.
	LaunchURLQuery bool
}

// DesktopCapabilities returns the capability set of the desktop family.
func DesktopCapabilities() Capabilities {
	return Capabilities{Family: FamilyDesktop, LaunchURLQuery: true}
}

// MobileCapabilities returns the capability set of the mobile family. The
// live subscription also delivers the launch URL there.
func MobileCapabilities() Capabilities {
	return Capabilities{Family: FamilyMobile}
}

// Observer receives activation batches from a Source.
type Observer interface {
	// OnActivation is called with one or more URLs, in the order the OS
	// delivered them.
	OnActivation(urls []string)
}

// Source is the platform layer that reports activation URLs.
type Source interface {
	Capabilities() Capabilities
	// Subscribe registers the single observer of the source.
	Subscribe(observer Observer) error
	// LaunchURLs returns the URLs the process was launched with. Only
	// meaningful when Capabilities().LaunchURLQuery is true.
	LaunchURLs() ([]string, error)
}

// Channel is the one-way event bus into the rendered UI.
type Channel interface {
	Emit(event, payload string) error
}
