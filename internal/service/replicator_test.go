package service

import (
	"os"
	"path/filepath"
	"testing"

	"firewatch/internal/logger"
)

func TestReplicator_CopiesExistingFiles(t *testing.T) {
	srcDir := t.TempDir()
	destDir := filepath.Join(t.TempDir(), "replica")

	src := filepath.Join(srcDir, "fire_incident.db")
	if err := os.WriteFile(src, []byte("sqlite-bytes"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	s := NewReplicatorService(destDir, []ReplicaFile{
		{Src: src, Dest: "fire_incident_llm_copy.db"},
		{Src: filepath.Join(srcDir, "does-not-exist.db"), Dest: "skipped.db"},
	}, logger.Get(logger.ErrorLevel))

	s.replicate()

	got, err := os.ReadFile(filepath.Join(destDir, "fire_incident_llm_copy.db"))
	if err != nil {
		t.Fatalf("replica not written: %v", err)
	}
	if string(got) != "sqlite-bytes" {
		t.Fatalf("replica content mismatch: %q", got)
	}

	if _, err := os.Stat(filepath.Join(destDir, "skipped.db")); !os.IsNotExist(err) {
		t.Fatalf("missing source must be skipped, stat err: %v", err)
	}
}

func TestReplicator_OverwritesStaleReplica(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.db")
	if err := os.WriteFile(src, []byte("v1"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	s := NewReplicatorService(dir, []ReplicaFile{{Src: src, Dest: "copy.db"}}, logger.Get(logger.ErrorLevel))
	s.replicate()

	if err := os.WriteFile(src, []byte("v2-longer"), 0o644); err != nil {
		t.Fatalf("rewrite source: %v", err)
	}
	s.replicate()

	got, err := os.ReadFile(filepath.Join(dir, "copy.db"))
	if err != nil {
		t.Fatalf("replica not written: %v", err)
	}
	if string(got) != "v2-longer" {
		t.Fatalf("replica not refreshed: %q", got)
	}
}
