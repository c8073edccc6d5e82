package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"firewatch/internal/logger"
)

// ReplicaFile maps a source database file to its name inside the replica
// directory.
type ReplicaFile struct {
	Src  string
	Dest string
}

// ReplicatorService periodically copies the database files into the
// directory consumed by the downstream voice agent. A copy failure on one
// file never blocks the others; everything is retried next tick.
type ReplicatorService struct {
	destDir string
	files   []ReplicaFile
	log     *logger.Logger
}

func NewReplicatorService(destDir string, files []ReplicaFile, log *logger.Logger) *ReplicatorService {
	return &ReplicatorService{destDir: destDir, files: files, log: log}
}

// Run ticks at the given interval until ctx is canceled.
func (s *ReplicatorService) Run(ctx context.Context, interval time.Duration) {
	if s.destDir == "" || len(s.files) == 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.replicate()
		}
	}
}

func (s *ReplicatorService) replicate() {
	if err := os.MkdirAll(s.destDir, 0o755); err != nil {
		s.log.Errorw("failed to create replica directory", "dir", s.destDir, "err", err)
		return
	}
	for _, f := range s.files {
		if _, err := os.Stat(f.Src); os.IsNotExist(err) {
			continue // source not created yet
		}
		if err := copyFile(f.Src, filepath.Join(s.destDir, f.Dest)); err != nil {
			s.log.Errorw("replica copy failed", "src", f.Src, "err", err)
		}
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %q: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %q: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %q -> %q: %w", src, dst, err)
	}
	return out.Close()
}
