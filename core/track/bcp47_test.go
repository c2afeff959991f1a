package track

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidBCP47LanguageTag(t *testing.T) {
	cases := []struct {
		name  string
		tag   string
		valid bool
	}{
		{"two letter primary", "en", true},
		{"two letter uppercase", "EN", true},
		{"three letter primary", "eng", true},
		{"language region", "en-US", true},
		{"language script region", "zh-Hant-TW", true},
		{"grandfathered irregular", "i-klingon", true},
		{"private use", "x-custom", true},
		{"private use single", "x-a", true},
		{"extended subtag", "zh-cmn-Hans-CN", true},
		{"empty", "", false},
		{"single letter", "e", false},
		{"leading digit", "1n", false},
		{"underscore separator", "en_US", false},
		{"second char digit", "e1", false},
		{"three chars trailing digit", "en1", false},
		{"third char digit no dash", "eng1", false},
		{"fourth char not dash", "engx-US", false},
		{"space in suffix", "en-U S", false},
		{"exclamation", "not valid!!", false},
		{"null byte", "en-\x00S", false},
		{"max length", "en-" + strings.Repeat("a", 97), true},
		{"over max length", "en-" + strings.Repeat("a", 98), false},
	}

	for _, ca := range cases {
		t.Run(ca.name, func(t *testing.T) {
			require.Equal(t, ca.valid, IsValidBCP47LanguageTag(ca.tag))
		})
	}
}

func TestIsValidBCP47LanguageTagShortCircuits(t *testing.T) {
	// Length 2 and 3 are decided before the extended-subtag logic runs.
	require.True(t, IsValidBCP47LanguageTag("de"))
	require.True(t, IsValidBCP47LanguageTag("deu"))
	require.False(t, IsValidBCP47LanguageTag("d-"))
	require.False(t, IsValidBCP47LanguageTag("de1"))

	// The grandfathered shortcut skips the second-letter rule entirely.
	require.True(t, IsValidBCP47LanguageTag("i-enochian"))
	require.True(t, IsValidBCP47LanguageTag("x-1234"))
	require.False(t, IsValidBCP47LanguageTag("q-custom"))
}
