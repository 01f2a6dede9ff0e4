// ABOUTME: Tests for the root microgc package, verifying project structure
// ABOUTME: These tests ensure the basic package setup is working correctly

package microgc_test

import (
	"testing"

	"github.com/prateek/microgc"
)

func TestProjectStructure(t *testing.T) {
	// Verify the version constant exists and is non-empty
	if microgc.Version == "" {
		t.Error("Version constant should not be empty")
	}

	// Verify version format (should be semantic versioning)
	expectedPrefix := "0."
	if len(microgc.Version) < len(expectedPrefix) || microgc.Version[:len(expectedPrefix)] != expectedPrefix {
		t.Errorf("Version should start with %q, got %q", expectedPrefix, microgc.Version)
	}
}
