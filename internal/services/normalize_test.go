package services

import (
	"testing"
)

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"5551234567", "+15551234567"},
		{"+15551234567", "+15551234567"},
		{"15551234567", "+15551234567"},
		{"(555) 123-4567", "+15551234567"},
		{"555-123-4567", "+15551234567"},
		{"1-555-123-4567", "+15551234567"},
		{"+44 20 7946 0958", "+442079460958"},
		{"911", "911"},
		{"", ""},
		{"extension 12", "extension 12"},
	}

	for _, test := range tests {
		result := NormalizeE164(test.input)
		if result != test.expected {
			t.Errorf("NormalizeE164(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}
