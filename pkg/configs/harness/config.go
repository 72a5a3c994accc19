package harness

import (
	"time"
)

// Runtime configuration of the validation harness.
//
// to get `HarnessConfig` instance, use `HarnessConfigMarshall.TrySeal()` .
type HarnessConfig struct {
	docker  *DockerConfig
	timeout time.Duration
	workDir string
	caseIDs []string
}

// Configuration for invoking the container runtime.
func (c *HarnessConfig) Docker() *DockerConfig {
	return c.docker
}

// How long a single test case may run. default = 10m
func (c *HarnessConfig) Timeout() time.Duration {
	return c.timeout
}

// Where per-case scratch directories are created. default = os temp dir
func (c *HarnessConfig) WorkDir() string {
	return c.workDir
}

// Restriction of the catalog. Empty = run everything.
func (c *HarnessConfig) CaseIDs() []string {
	return append([]string{}, c.caseIDs...)
}

type DockerConfig struct {
	binary string
}

// Which executable should be invoked as docker. default = "docker"
func (d *DockerConfig) Binary() string {
	return d.binary
}
