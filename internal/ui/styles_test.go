package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAccentColor(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{name: "empty", input: "", expected: "", ok: false},
		{name: "ansi code", input: "39", expected: "39", ok: true},
		{name: "ansi with whitespace", input: "  244 ", expected: "244", ok: true},
		{name: "ansi out of range", input: "256", expected: "", ok: false},
		{name: "negative ansi", input: "-1", expected: "", ok: false},
		{name: "hex 6", input: "#7aa2f7", expected: "#7aa2f7", ok: true},
		{name: "hex 3", input: "#abc", expected: "#aabbcc", ok: true},
		{name: "bad hex", input: "#zzzzzz", expected: "", ok: false},
		{name: "bad string", input: "blue", expected: "", ok: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalizeAccentColor(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestConfigureThemeAccentColor(t *testing.T) {
	origAccent, origColor, origOn := Accent, accentColor, accentOn
	t.Cleanup(func() {
		Accent, accentColor, accentOn = origAccent, origColor, origOn
	})

	ConfigureTheme("39")
	got, ok := AccentColor()
	assert.True(t, ok)
	assert.Equal(t, "39", got)

	ConfigureTheme("blue")
	got, ok = AccentColor()
	assert.True(t, ok)
	assert.Equal(t, "39", got, "invalid values keep the previous accent")

	ConfigureTheme("none")
	_, ok = AccentColor()
	assert.False(t, ok)
}
