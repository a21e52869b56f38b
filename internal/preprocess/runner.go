package preprocess

import (
	"bytes"
	"context"
	"log"
	"os/exec"
	"strings"
	"time"

	"docextract/internal/domain"
)

// Runner executes an external command and returns its captured output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	if err != nil {
		log.Printf("preprocess.ExecRunner: %s %s failed after %s: %v (stderr: %s)",
			name, strings.Join(args, " "), time.Since(start).Round(time.Millisecond), err, domain.Truncate(errb.String(), 8<<10))
	}
	return out.Bytes(), errb.Bytes(), err
}
