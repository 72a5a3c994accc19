package harness

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// load harness config from a file.
//
// A missing file is not an error: the defaults apply. A file which exists
// but cannot be parsed is an error.
func LoadHarnessConfig(filepath string) (*HarnessConfig, error) {
	content, err := os.ReadFile(filepath)
	if errors.Is(err, fs.ErrNotExist) {
		return Unmarshal([]byte{})
	}
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}

func Unmarshal(conf []byte) (out *HarnessConfig, err error) {
	_out := &HarnessConfigMarshall{}
	if err := yaml.Unmarshal(conf, _out); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("misconfiguration: %v", r)
		}
	}()
	out = TrySeal(_out)
	return out, nil
}
