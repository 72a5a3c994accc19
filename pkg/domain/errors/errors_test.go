package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/biosimkit/biosimkit/pkg/domain/errors"
)

func TestTaxonomy(t *testing.T) {
	t.Run("IoError is matched through wrapping", func(t *testing.T) {
		cause := stderrors.New("fake error")
		err := fmt.Errorf("while reading: %w", errors.NewIo("SBML", "/tmp/model.xml", cause))

		ioErr := new(errors.IoError)
		if !stderrors.As(err, &ioErr) {
			t.Fatal("IoError is not matched.")
		}
		if ioErr.Format != "SBML" || ioErr.Path != "/tmp/model.xml" {
			t.Errorf("unexpected fields: %+v", ioErr)
		}
		if !stderrors.Is(err, cause) {
			t.Error("cause is not wrapped.")
		}
	})

	t.Run("AsConfiguration matches through wrapping", func(t *testing.T) {
		err := fmt.Errorf("case x: %w", errors.Configurationf("unknown test case: %q", "x"))

		ce, ok := errors.AsConfiguration(err)
		if !ok {
			t.Fatal("ConfigurationError is not matched.")
		}
		if ce.Reason != `unknown test case: "x"` {
			t.Errorf("unexpected reason: %s", ce.Reason)
		}
	})

	t.Run("AsExecution does not match other taxa", func(t *testing.T) {
		err := errors.ArchiveIof("/tmp/a.omex", "duplicate archive member: %s", "./model.xml")
		if _, ok := errors.AsExecution(err); ok {
			t.Error("matched, unexpectedly.")
		}
	})

	t.Run("ExecutionError renders timeout, stderr and exit code", func(t *testing.T) {
		timedOut := &errors.ExecutionError{Image: "sim:1", TimedOut: true, ExitCode: -1}
		if timedOut.Error() != "execution of sim:1 timed out" {
			t.Errorf("unexpected message: %s", timedOut.Error())
		}

		withStderr := &errors.ExecutionError{Image: "sim:1", ExitCode: 3, Stderr: "boom"}
		if withStderr.Error() != "execution of sim:1 failed (exit 3): boom" {
			t.Errorf("unexpected message: %s", withStderr.Error())
		}
	})
}
