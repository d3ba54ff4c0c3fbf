package config

import (
	"slices"
	"testing"
)

// runInDir runs fn with dir as the working directory.
func runInDir(t *testing.T, dir string, fn func()) {
	t.Helper()
	t.Chdir(dir)
	fn()
}

func checkError(t *testing.T, err error, wantErr bool) {
	t.Helper()
	if (err != nil) != wantErr {
		t.Fatalf("expected err=%v, got err=%v", wantErr, err)
	}
}

func assertStrings(t *testing.T, name string, got, want []string) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}
