package harness

import (
	"fmt"
	"os"
	"time"
)

type Marshalled[S any] interface {
	trySeal(string) S
}

// seal marshalled object.
//
// this function CAN CAUSE PANIC if misconfiguration is found.
func TrySeal[S any](conf Marshalled[S]) S {
	return conf.trySeal("(root)")
}

type HarnessConfigMarshall struct {
	Docker  *DockerConfigMarshall `yaml:"docker,omitempty"`
	Timeout string                `yaml:"timeout,omitempty"`
	WorkDir string                `yaml:"workDir,omitempty"`
	CaseIDs []string              `yaml:"cases,omitempty"`
}

var _ Marshalled[*HarnessConfig] = &HarnessConfigMarshall{}

func (h *HarnessConfigMarshall) trySeal(path string) *HarnessConfig {
	docker := h.Docker
	if docker == nil {
		docker = &DockerConfigMarshall{}
	}

	timeout := 10 * time.Minute
	if h.Timeout != "" {
		parsed, err := time.ParseDuration(h.Timeout)
		if err != nil {
			panic(fmt.Errorf("%s.timeout can not be parsed: %w", path, err))
		}
		if parsed <= 0 {
			panic(path + ".timeout should be positive")
		}
		timeout = parsed
	}

	workDir := h.WorkDir
	if workDir == "" {
		workDir = os.TempDir()
	}

	return &HarnessConfig{
		docker:  docker.trySeal(path + ".docker"),
		timeout: timeout,
		workDir: workDir,
		caseIDs: h.CaseIDs,
	}
}

type DockerConfigMarshall struct {
	Binary string `yaml:"binary,omitempty"`
}

func (d *DockerConfigMarshall) trySeal(path string) *DockerConfig {
	binary := d.Binary
	if binary == "" {
		binary = "docker"
	}
	return &DockerConfig{binary: binary}
}
