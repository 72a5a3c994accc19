package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	prettyconsole "github.com/thessem/zap-prettyconsole"
	"github.com/youta-t/flarc"
	"go.uber.org/zap"

	"github.com/biosimkit/biosimkit/pkg/buildtime"
	"github.com/biosimkit/biosimkit/pkg/configs/harness"
	"github.com/biosimkit/biosimkit/pkg/domain/simulator"
	"github.com/biosimkit/biosimkit/pkg/utils/try"
	"github.com/biosimkit/biosimkit/pkg/validator"
	"github.com/biosimkit/biosimkit/pkg/workloads/runner"
)

type Flags struct {
	Properties string `flag:"properties,short=p" help:"path to the simulator properties JSON. required."`
	Image      string `flag:"image,short=i" help:"image reference to validate. default: the image from the properties."`
	Config     string `flag:"config,short=c" help:"path to the harness config yaml."`
	Verbose    bool   `flag:"verbose,short=v" help:"chatty, colorful logging."`
	Version    bool   `flag:"version" help:"show the version and exit."`
}

const ARG_CASE_ID = "CASE_ID"

func main() {
	logger := log.Default()
	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	cmd := try.To(flarc.NewCommand(
		"Validate a Docker-packaged simulator against the reference test cases.",
		Flags{
			Config: "simvalidator.yaml",
		},
		flarc.Args{
			{
				Name: ARG_CASE_ID, Required: false, Repeatable: true,
				Help: "test case ids to run. default: the whole catalog.",
			},
		},
		func(ctx context.Context, c flarc.Commandline[Flags], a []any) error {
			flags := c.Flags()
			if flags.Version {
				fmt.Fprintln(c.Stdout(), buildtime.VersionString())
				return nil
			}
			if flags.Properties == "" {
				return errors.New("--properties is required")
			}

			zlog := newLogger(flags.Verbose)
			defer zlog.Sync()

			conf, err := harness.LoadHarnessConfig(flags.Config)
			if err != nil {
				return err
			}

			image := flags.Image
			if image == "" {
				sim, err := simulator.Load(flags.Properties)
				if err != nil {
					return err
				}
				image = sim.Image
			}
			if image == "" {
				return errors.New("no image to validate: pass --image or declare one in the properties")
			}

			caseIDs := c.Args()[ARG_CASE_ID]
			if len(caseIDs) == 0 {
				caseIDs = conf.CaseIDs()
			}

			v := validator.New(runner.FromConfig(conf), conf, zlog)
			valid, invalid, err := v.Run(ctx, image, flags.Properties, caseIDs...)
			if err != nil {
				return err
			}

			report(c.Stdout(), image, valid, invalid)
			if len(invalid) != 0 {
				return fmt.Errorf("%d test cases failed", len(invalid))
			}
			return nil
		},
	)).OrFatal(logger)

	os.Exit(flarc.Run(ctx, cmd))
}

func newLogger(verbose bool) *zap.Logger {
	if verbose {
		return prettyconsole.NewLogger(zap.DebugLevel)
	}
	zlog, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return zlog
}

func report(out io.Writer, image string, valid []validator.TestCase, invalid []validator.CaseFailure) {
	fmt.Fprintf(out, "%s passed %d test cases:\n", image, len(valid))
	for _, c := range valid {
		fmt.Fprintf(out, "  %s\n", c.ID)
	}
	fmt.Fprintf(out, "%s failed %d test cases:\n", image, len(invalid))
	for _, failure := range invalid {
		fmt.Fprintf(out, "  %s\n    %s\n", failure.Case.ID, failure.Err)
	}
}
