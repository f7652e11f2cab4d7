// Package pipeline runs the configured chain of operations over a file or
// over every file in a directory.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gsea/gsea/codec"
	"github.com/gsea/gsea/internal/config"
)

// EncryptedSuffix is appended to encrypted files in directory mode when
// they are not also compressed.
const EncryptedSuffix = ".enc"

// A Task is one input file and the path its result is written to.
type Task struct {
	Input  string
	Output string
}

// Plan lists the tasks for cfg. A file input gives a single task writing
// to cfg.OutputPath. A directory input gives one task per regular file
// directly inside it, writing into cfg.OutputPath, which is created if
// it does not exist.
func Plan(cfg config.Config) ([]Task, error) {
	info, err := os.Stat(cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if !info.IsDir() {
		return []Task{{Input: cfg.InputPath, Output: cfg.OutputPath}}, nil
	}

	if err := os.MkdirAll(cfg.OutputPath, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	entries, err := os.ReadDir(cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("listing input directory: %w", err)
	}

	var tasks []Task
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name, err := OutputName(cfg, entry.Name())
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, Task{
			Input:  filepath.Join(cfg.InputPath, entry.Name()),
			Output: filepath.Join(cfg.OutputPath, name),
		})
	}
	return tasks, nil
}

// OutputName returns the name a file called name gets in the output
// directory. Decrypting strips EncryptedSuffix and decompressing strips
// the algorithm's suffix. Compressing then appends the algorithm's
// suffix, or, when only encrypting, EncryptedSuffix.
func OutputName(cfg config.Config, name string) (string, error) {
	var alg codec.Algorithm
	if cfg.Compress || cfg.Decompress {
		var err error
		alg, err = codec.Lookup(cfg.CompAlg)
		if err != nil {
			return "", err
		}
	}

	if cfg.Decrypt {
		name = strings.TrimSuffix(name, EncryptedSuffix)
	}
	if cfg.Decompress {
		name = alg.TrimSuffix(name)
	}

	switch {
	case cfg.Compress:
		name += alg.Suffix
	case cfg.Encrypt:
		name += EncryptedSuffix
	}
	return name, nil
}
