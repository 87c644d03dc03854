package oasgraph

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestVersion verifies that Version() returns the version variable.
// In release builds this is set via ldflags; in development it is "dev".
func TestVersion(t *testing.T) {
	result := Version()

	assert.NotEmpty(t, result, "Version() should not return empty string")
	assert.True(t,
		result == "dev" || strings.HasPrefix(result, "v"),
		"Version() should be 'dev' or start with 'v', got: %s", result)
}

// TestGoVersion verifies that GoVersion() returns the runtime Go version.
func TestGoVersion(t *testing.T) {
	result := GoVersion()

	assert.Equal(t, runtime.Version(), result,
		"GoVersion() should match runtime.Version()")
}

// TestUserAgent verifies that UserAgent() is consistent with Version().
func TestUserAgent(t *testing.T) {
	result := UserAgent()

	assert.Equal(t, "oasgraph/"+Version(), result)
	assert.NotContains(t, result, " ", "UserAgent() should not contain spaces")
}

// TestBuildInfo verifies that BuildInfo() includes all build metadata.
func TestBuildInfo(t *testing.T) {
	result := BuildInfo()

	assert.Contains(t, result, "Version:")
	assert.Contains(t, result, "Commit:")
	assert.Contains(t, result, "Build Time:")
	assert.Contains(t, result, "Go Version:")
	assert.Contains(t, result, Version())
	assert.Contains(t, result, GoVersion())
}
