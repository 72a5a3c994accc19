// Package runner executes Docker-packaged simulators against an archive.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/go-containerregistry/pkg/name"

	"github.com/biosimkit/biosimkit/pkg/configs/harness"
	derr "github.com/biosimkit/biosimkit/pkg/domain/errors"
)

// Runner executes a simulator image over an archive.
//
// The contract every simulator image honors: the archive is readable at
// /root/in, results go to /root/out, invocation is
// `<entrypoint> -i /root/in/<archive> -o /root/out`, exit 0 means success.
type Runner interface {
	// Exec runs imageRef over the archive at archivePath, writing results
	// into outDir.
	//
	// A run which started but failed (non-zero exit, timeout) is an
	// ExecutionError. Anything else (unparseable image ref, runtime not
	// invocable, canceled caller context) is not, so callers can tell a
	// broken simulator from a broken environment.
	Exec(ctx context.Context, archivePath string, imageRef string, outDir string) error
}

// Docker runs simulators via the docker CLI.
type Docker struct {
	// Binary is the docker executable. Empty = "docker".
	Binary string

	// Timeout bounds a single run. Zero = no bound beyond ctx.
	Timeout time.Duration
}

var _ Runner = Docker{}

// FromConfig builds a Docker runner from harness configuration.
func FromConfig(conf *harness.HarnessConfig) Docker {
	return Docker{
		Binary:  conf.Docker().Binary(),
		Timeout: conf.Timeout(),
	}
}

func (d Docker) Exec(ctx context.Context, archivePath string, imageRef string, outDir string) error {
	ref, err := name.ParseReference(imageRef)
	if err != nil {
		return derr.Configurationf("invalid image reference %q: %s", imageRef, err)
	}

	runCtx := ctx
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	binary := d.Binary
	if binary == "" {
		binary = "docker"
	}

	inDir, err := filepath.Abs(filepath.Dir(archivePath))
	if err != nil {
		return err
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(
		runCtx, binary,
		"run", "--rm",
		"-v", inDir+":/root/in:ro",
		"-v", absOut+":/root/out",
		ref.Name(),
		"-i", "/root/in/"+filepath.Base(archivePath),
		"-o", "/root/out",
	)

	stderr := bytes.Buffer{}
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err == nil {
		return nil
	}

	// the caller giving up is not the simulator's fault; only the runner's
	// own deadline marks the run as timed out.
	if ctx.Err() != nil {
		return fmt.Errorf("execution of %s interrupted: %w", imageRef, ctx.Err())
	}
	if runCtx.Err() != nil {
		return &derr.ExecutionError{
			Image:    imageRef,
			ExitCode: -1,
			Stderr:   strings.TrimSpace(stderr.String()),
			TimedOut: true,
			Cause:    runCtx.Err(),
		}
	}

	exitErr := new(exec.ExitError)
	if errors.As(err, &exitErr) {
		return &derr.ExecutionError{
			Image:    imageRef,
			ExitCode: exitErr.ExitCode(),
			Stderr:   strings.TrimSpace(stderr.String()),
			Cause:    err,
		}
	}

	return fmt.Errorf("cannot invoke %s: %w", binary, err)
}
