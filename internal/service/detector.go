package service

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"firewatch/internal/logger"
)

// ProcessDetector launches the external people-detection workflow as a
// subprocess. Fire-and-forget: the process is released, not supervised.
type ProcessDetector struct {
	command []string
	log     *logger.Logger
}

var _ DetectorTrigger = (*ProcessDetector)(nil)

func NewProcessDetector(command []string, log *logger.Logger) *ProcessDetector {
	return &ProcessDetector{command: command, log: log}
}

// Start spawns the detector command. The context only bounds the spawn
// itself; the detector outlives it by design.
func (d *ProcessDetector) Start(ctx context.Context) error {
	if len(d.command) == 0 {
		return errors.New("detector command not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd := exec.Command(d.command[0], d.command[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start detector %q: %w", d.command[0], err)
	}

	// Reap the child when it exits so it never lingers as a zombie.
	go func() { _ = cmd.Wait() }()

	d.log.Infow("detector process started", "pid", cmd.Process.Pid, "command", d.command[0])
	return nil
}
