// Package config holds the run configuration of the gsea command.
//
// Values come from three sources, later ones overriding earlier ones:
// built-in defaults, an optional YAML file (~/.gsea.yaml unless another
// path is given) and command line flags. The file only carries
// preferences; which operations to run and on which paths are always
// given on the command line.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/gsea/gsea/cipher"
	"github.com/gsea/gsea/codec"
)

// DefaultPath is the configuration file read when no path is given.
const DefaultPath = "~/.gsea.yaml"

// Config is the configuration of one run. It is passed by value and not
// modified once processing starts.
type Config struct {
	// Operations. At most one of Compress and Decompress, and at most one
	// of Encrypt and Decrypt, may be set.
	Compress   bool `yaml:"-"`
	Decompress bool `yaml:"-"`
	Encrypt    bool `yaml:"-"`
	Decrypt    bool `yaml:"-"`

	// InputPath is a file or a directory. OutputPath is a file when the
	// input is a file, and a directory when it is a directory.
	InputPath  string `yaml:"-"`
	OutputPath string `yaml:"-"`

	// Key is the cipher key or passphrase.
	Key string `yaml:"key,omitempty"`

	// CompAlg names the compression algorithm (see codec.Names).
	CompAlg string `yaml:"comp_alg"`

	// EncAlg names the cipher (see cipher.Names).
	EncAlg string `yaml:"enc_alg"`

	// Level is the compression level; 0 selects the algorithm's default.
	Level int `yaml:"level"`

	// Workers bounds the number of files processed at once.
	Workers int `yaml:"workers"`

	// Verify decompresses every compressed output again and compares it
	// with the input.
	Verify bool `yaml:"verify"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CompAlg: codec.Default,
		EncAlg:  cipher.Default,
		Workers: runtime.NumCPU(),
	}
}

// Load returns the default configuration with the file at path merged
// over it. An empty path reads DefaultPath, which may be missing; a path
// given explicitly must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("expanding config path %q: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", expanded, err)
	}
	return cfg, nil
}

// Validate checks that the configuration describes a run that can be
// carried out.
func (c Config) Validate() error {
	if c.InputPath == "" || c.OutputPath == "" {
		return errors.New("input (-i) and output (-o) paths are required")
	}
	if !c.Compress && !c.Decompress && !c.Encrypt && !c.Decrypt {
		return errors.New("no operation selected (use -c, -d, -e or -u)")
	}
	if c.Compress && c.Decompress {
		return errors.New("cannot compress (-c) and decompress (-d) at the same time")
	}
	if c.Encrypt && c.Decrypt {
		return errors.New("cannot encrypt (-e) and decrypt (-u) at the same time")
	}
	if c.Compress || c.Decompress {
		if _, err := codec.Lookup(c.CompAlg); err != nil {
			return err
		}
	}
	if c.Encrypt || c.Decrypt {
		if c.Key == "" {
			return errors.New("a key (-k) is required to encrypt or decrypt")
		}
		if _, err := cipher.New(c.EncAlg, nil); err != nil {
			return err
		}
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}
