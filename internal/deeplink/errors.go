package deeplink

import "errors"

var (
	// ErrRegistration is returned by Initialize when the router could not
	// subscribe to the platform source. It is fatal to application setup.
	ErrRegistration = errors.New("deep link registration failed")

	// ErrAlreadyInitialized is returned by a second call to Initialize.
	ErrAlreadyInitialized = errors.New("deep link router already initialized")
)
