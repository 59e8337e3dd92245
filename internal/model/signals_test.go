package model

import "testing"

// TestAltCoverage tests the image alt text coverage ratio.
func TestAltCoverage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		signals  Signals
		expected float64
	}{
		{"no images counts as full coverage", Signals{}, 1.0},
		{"half coverage", Signals{ImageCount: 4, ImagesWithAlt: 2}, 0.5},
		{"full coverage", Signals{ImageCount: 3, ImagesWithAlt: 3}, 1.0},
		{"zero coverage", Signals{ImageCount: 5}, 0.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.signals.AltCoverage(); got != tc.expected {
				t.Errorf("AltCoverage() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

// TestHasPhone tests phone detection across both signal forms.
func TestHasPhone(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		signals  Signals
		expected bool
	}{
		{"no phone", Signals{}, false},
		{"text only", Signals{PhoneText: true}, true},
		{"tel link only", Signals{TelLink: true}, true},
		{"both", Signals{PhoneText: true, TelLink: true}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.signals.HasPhone(); got != tc.expected {
				t.Errorf("HasPhone() = %v, expected %v", got, tc.expected)
			}
		})
	}
}
