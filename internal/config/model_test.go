package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	t.Parallel()
	require.NoError(t, Defaults().Validate())
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	t.Parallel()

	m := Defaults()
	m.App.Identifier = ""
	m.Window.Width = 0
	m.DeepLink.Schemes = []string{"bad:scheme"}
	m.DeepLink.Event = ""
	m.Log.Level = "loud"
	m.Log.Format = "xml"

	err := m.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"app.identifier",
		"window size",
		`invalid deep link scheme "bad:scheme"`,
		"deep_link.event",
		`invalid log level "loud"`,
		`invalid log format "xml"`,
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidate_RequiresScheme(t *testing.T) {
	t.Parallel()

	m := Defaults()
	m.DeepLink.Schemes = nil
	require.ErrorContains(t, m.Validate(), "at least one scheme")
}
