package utils

import (
	"testing"
)

func TestCanonicalDNSName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple domain", "example.com", "example.com"},
		{"trailing dot", "example.com.", "example.com"},
		{"multiple trailing dots", "example.com..", "example.com"},
		{"mixed case", "ExAmPlE.CoM", "example.com"},
		{"surrounding whitespace", "\t example.com \n", "example.com"},
		{"root", ".", ""},
		{"root with whitespace", " . ", ""},
		{"empty", "", ""},
		{"single label", " LOCALHOST ", "localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalDNSName(tt.input); got != tt.expected {
				t.Errorf("CanonicalDNSName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestGetApexDomain(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple domain with trailing dot", "example.com.", "example.com"},
		{"subdomain", "www.example.com", "example.com"},
		{"deep subdomain", "api.service.example.com.", "example.com"},
		{"co.uk domain", "www.example.co.uk", "example.co.uk"},
		{"private suffix", "subdomain.user.github.io", "user.github.io"},
		{"codecrafters", "codecrafters.io.", "codecrafters.io"},
		{"mixed case", "WWW.Example.COM.", "example.com"},
		{"single label fallback", "localhost", "localhost"},
		{"bare public suffix fallback", "com.", "com"},
		{"empty string", "", "."},
		{"root domain", ".", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetApexDomain(tt.input); got != tt.expected {
				t.Errorf("GetApexDomain(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
