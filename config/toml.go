package config

import (
	"github.com/BurntSushi/toml"
)

// ParseToml decodes a TOML configuration file. Unknown keys are errors.
func ParseToml(name string, src []byte) (cfg Config, err error) {
	defer func() {
		if err != nil {
			err = &ErrFile{Path: name, Err: err}
		}
	}()

	cfg = Default()
	md, err := toml.Decode(string(src), &cfg)
	if err != nil {
		return
	}

	undecoded := md.Undecoded()
	if len(undecoded) != 0 {
		err = ErrKey(undecoded[0].String())
		return
	}

	err = cfg.Validate()
	return
}
