// Package testutil carries small helpers shared by package tests.
package testutil

import (
	"os"
	"testing"
)

// Chdir switches the working directory to dir for the duration of the
// test and restores the previous one on cleanup.
func Chdir(t testing.TB, dir string) {
	t.Helper()

	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restore working directory %s: %v", prev, err)
		}
	})
}
