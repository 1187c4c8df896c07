package store

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunMigrate_UpDownStatus(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "samples.db")
	var out bytes.Buffer

	if err := RunMigrate(&out, dbPath, []string{"status"}); err != nil {
		t.Fatalf("status on fresh db: %v", err)
	}
	if !strings.Contains(out.String(), "Current version: 0") {
		t.Errorf("fresh db status = %q", out.String())
	}

	out.Reset()
	if err := RunMigrate(&out, dbPath, []string{"up"}); err != nil {
		t.Fatalf("up: %v", err)
	}
	if !strings.Contains(out.String(), "Current version: 2 (dirty: false)") {
		t.Errorf("after up = %q", out.String())
	}

	out.Reset()
	if err := RunMigrate(&out, dbPath, []string{"down"}); err != nil {
		t.Fatalf("down: %v", err)
	}
	if !strings.Contains(out.String(), "Current version: 1") {
		t.Errorf("after down = %q", out.String())
	}

	// Open brings the schema back up to date.
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open after down: %v", err)
	}
	version, _, err := s.MigrateVersion(Migrations())
	s.Close()
	if err != nil || version != 2 {
		t.Errorf("version after reopen = %d (%v), want 2", version, err)
	}
}

func TestRunMigrate_BadArgs(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "samples.db")
	var out bytes.Buffer

	if err := RunMigrate(&out, dbPath, nil); err == nil {
		t.Error("expected error for missing action")
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Errorf("missing action should print help, got %q", out.String())
	}

	err := RunMigrate(&out, dbPath, []string{"sideways"})
	if !errors.Is(err, ErrUnknownMigrateAction) {
		t.Errorf("err = %v, want ErrUnknownMigrateAction", err)
	}

	out.Reset()
	if err := RunMigrate(&out, dbPath, []string{"help"}); err != nil {
		t.Errorf("help: %v", err)
	}
	if !strings.Contains(out.String(), "status") {
		t.Errorf("help output = %q", out.String())
	}
}
