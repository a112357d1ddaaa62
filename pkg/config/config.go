// Package config resolves pack options from defaults, an optional YAML
// file, the environment and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"ctxpack/pkg/bundle"
	"ctxpack/pkg/clipboard"
	"ctxpack/pkg/pack"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no config file
// is given explicitly.
const DefaultFile = ".ctxpack.yaml"

// EnvGlobalIgnore names an ignore file applied to every pack.
const EnvGlobalIgnore = "CTXPACK_GLOBAL_IGNORE"

// Options is the validated options record for a pack run.
type Options struct {
	Directory      string   `yaml:"directory"`
	Output         string   `yaml:"output"`
	Format         string   `yaml:"format"`
	Copy           bool     `yaml:"copy"`
	Split          bool     `yaml:"split"`
	ChunkSize      int      `yaml:"chunkSize"`
	Ignore         []string `yaml:"ignore"`
	NoBinary       bool     `yaml:"noBinary"`
	GlobalIgnore   string   `yaml:"globalIgnore"`
	ClipboardLimit int      `yaml:"clipboardLimit"`
}

// Default returns the built-in option values.
func Default() Options {
	return Options{
		Directory:      ".",
		Format:         string(pack.FormatStructured),
		ChunkSize:      bundle.DefaultChunkSize,
		ClipboardLimit: clipboard.DefaultLimit,
	}
}

// Load returns the defaults overlaid with the YAML file at path and the
// environment. An empty path means DefaultFile, which may be absent; an
// explicit path must exist.
func Load(path string) (Options, error) {
	opts := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &opts); err != nil {
			return opts, fmt.Errorf("decode config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case errors.Is(err, fs.ErrNotExist):
		return opts, fmt.Errorf("%w: config file %s", bundle.ErrNotFound, path)
	default:
		return opts, fmt.Errorf("read config %s: %w", path, err)
	}

	if opts.GlobalIgnore == "" {
		opts.GlobalIgnore = os.Getenv(EnvGlobalIgnore)
	}
	return opts, nil
}

// ApplyFlags copies every flag the user set explicitly onto opts. Flags
// left at their defaults do not override file values.
func (o *Options) ApplyFlags(flags *pflag.FlagSet) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "output":
			o.Output, err = flags.GetString(f.Name)
		case "format":
			o.Format, err = flags.GetString(f.Name)
		case "copy":
			o.Copy, err = flags.GetBool(f.Name)
		case "split":
			o.Split, err = flags.GetBool(f.Name)
		case "chunk-size":
			o.ChunkSize, err = flags.GetInt(f.Name)
		case "ignore":
			var extra []string
			extra, err = flags.GetStringArray(f.Name)
			o.Ignore = append(o.Ignore, extra...)
		case "no-binary":
			o.NoBinary, err = flags.GetBool(f.Name)
		case "global-ignore":
			o.GlobalIgnore, err = flags.GetString(f.Name)
		case "clipboard-limit":
			o.ClipboardLimit, err = flags.GetInt(f.Name)
		}
	})
	return err
}

// Validate rejects option combinations a pack cannot run with.
func (o Options) Validate() error {
	if _, err := pack.ParseFormat(o.Format); err != nil {
		return err
	}
	if o.ChunkSize < 1 {
		return fmt.Errorf("chunk size must be positive, got %d", o.ChunkSize)
	}
	if o.Directory == "" {
		return fmt.Errorf("directory must not be empty")
	}
	return nil
}

// PackArguments converts validated options into pack arguments.
func (o Options) PackArguments() (*pack.Arguments, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	format, _ := pack.ParseFormat(o.Format)
	return &pack.Arguments{
		Directory:        o.Directory,
		Output:           o.Output,
		Format:           format,
		Split:            o.Split,
		ChunkSize:        o.ChunkSize,
		IgnorePatterns:   o.Ignore,
		GlobalIgnoreFile: o.GlobalIgnore,
		NoBinary:         o.NoBinary,
	}, nil
}
