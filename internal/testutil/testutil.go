package testutil

import (
	"os"
	"os/exec"
	"strconv"
	"strings"
	"testing"
)

const updateExpectedEnvVar = "NOTES_UPDATE_EXPECTED"

// shouldUpdateExpected checks if the environment variable specified by updateExpectedEnvVar is set to a truthy value.
func shouldUpdateExpected() bool {
	value := strings.TrimSpace(os.Getenv(updateExpectedEnvVar))
	if value == "" {
		return false
	}

	b, err := strconv.ParseBool(value)
	return err == nil && b
}

// CompareGolden compares output to the contents of expectedFile and fails the
// test with a unified diff when they differ.
func CompareGolden(t *testing.T, output []byte, expectedFile string) {
	t.Helper()

	// Check if we should promote the actual output to replace the expected file
	if shouldUpdateExpected() {
		if err := os.WriteFile(expectedFile, output, 0644); err != nil {
			t.Fatalf("Failed to update expected file %s: %v", expectedFile, err)
		}
		t.Logf("Updated expected file: %s", expectedFile)
		return
	}

	// Read expected output
	expected, err := os.ReadFile(expectedFile)
	if err != nil {
		t.Fatalf("Failed to read expected file %s: %v", expectedFile, err)
	}

	// First, a simple and fast check to see if they are identical.
	if string(output) == string(expected) {
		return
	}

	// If they are not identical, generate a temporary file for the actual output.
	actualFile, err := os.CreateTemp(t.TempDir(), "actual_*.out")
	if err != nil {
		t.Fatalf("Failed to create temp file for actual output: %v", err)
	}
	defer actualFile.Close() // Ensure the file is closed.

	if _, err := actualFile.Write(output); err != nil {
		t.Fatalf("Failed to write actual output to temp file: %v", err)
	}

	// Use the `diff` command to generate a unified diff.
	diffCmd := exec.Command("diff", "-u", expectedFile, actualFile.Name())
	diffOutput, err := diffCmd.CombinedOutput()

	// The `diff` command exits with 1 if files differ. We expect this.
	// Any other error is unexpected.
	if err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			t.Logf("diff unavailable (%v); expected:\n%s\nactual:\n%s", err, expected, output)
			t.Fail()
			return
		}
	}

	t.Logf("\n%s", string(diffOutput))

	t.Fail()
}
