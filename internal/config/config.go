// Package config parses the command line of the jsonsplit tool.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/arnodel/jsonsplit/decompress"
	"github.com/arnodel/jsonsplit/extract"
	"github.com/arnodel/jsonsplit/filter"
	yaml "github.com/goccy/go-yaml"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Stdio is the name used for standard input or output.
const Stdio = "-"

var (
	ErrTooManyArguments = errors.New("too many arguments")
	ErrEmptyTargetKey   = errors.New("target key cannot be empty")
	ErrInvalidColor     = errors.New("color must be auto, always or never")
	ErrConfigFile       = errors.New("invalid config file")
)

// Config is the configuration of a jsonsplit run.
type Config struct {
	Input       string // path or "-" for stdin
	Output      string // path or "-" for stdout
	TargetKey   string
	Compression decompress.Compression
	Where       string // JSONPath filter, may be empty
	Color       string
	Debug       bool
	Stats       bool // print statistics to stderr when done
}

// Default returns the configuration used when nothing is specified.
func Default() *Config {
	return &Config{
		Input:       Stdio,
		Output:      Stdio,
		TargetKey:   extract.DefaultTargetKey,
		Compression: decompress.Auto,
		Color:       ColorAuto,
	}
}

// Validate returns an error if c cannot be used.
func (c *Config) Validate() error {
	if c.TargetKey == "" {
		return ErrEmptyTargetKey
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w, got: %q", ErrInvalidColor, c.Color)
	}
	if c.Where != "" {
		if _, err := filter.Parse(c.Where); err != nil {
			return err
		}
	}
	return nil
}

// fileConfig is the contents of a config file.  Fields left out keep their
// value.
type fileConfig struct {
	Input       *string `yaml:"input"`
	Output      *string `yaml:"output"`
	TargetKey   *string `yaml:"target_key"`
	Compression *string `yaml:"compression"`
	Where       *string `yaml:"where"`
	Color       *string `yaml:"color"`
	Debug       *bool   `yaml:"debug"`
	Stats       *bool   `yaml:"stats"`
}

// LoadFile updates c with the settings in the YAML file at path.
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigFile, err)
	}
	defer f.Close()
	var fc fileConfig
	if err := yaml.NewDecoder(f, yaml.DisallowUnknownField()).Decode(&fc); err != nil && err != io.EOF {
		return fmt.Errorf("%w %s: %v", ErrConfigFile, path, err)
	}
	if fc.Compression != nil {
		comp, err := decompress.ParseCompression(*fc.Compression)
		if err != nil {
			return fmt.Errorf("%w %s: %v", ErrConfigFile, path, err)
		}
		c.Compression = comp
	}
	setString(&c.Input, fc.Input)
	setString(&c.Output, fc.Output)
	setString(&c.TargetKey, fc.TargetKey)
	setString(&c.Where, fc.Where)
	setString(&c.Color, fc.Color)
	if fc.Debug != nil {
		c.Debug = *fc.Debug
	}
	if fc.Stats != nil {
		c.Stats = *fc.Stats
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// compressionFlag implements flag.Value for the -compression flag.
type compressionFlag struct {
	c *decompress.Compression
}

func (f compressionFlag) String() string {
	if f.c == nil {
		return decompress.Auto.String()
	}
	return f.c.String()
}

func (f compressionFlag) Set(value string) error {
	comp, err := decompress.ParseCompression(value)
	if err != nil {
		return err
	}
	*f.c = comp
	return nil
}

// Parse parses the command line arguments (including the program name) and
// returns a validated Config.  Usage and flag errors are written to stderr.
// If help is requested, the error is flag.ErrHelp.
//
// Settings from the file given with -config are applied first, then the
// flags that are set explicitly.
func Parse(args []string, stderr io.Writer) (*Config, error) {
	name := "jsonsplit"
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [options] [input]\n\n", name)
		fmt.Fprint(stderr, usageHeader)
		fs.PrintDefaults()
	}

	flags := Default()
	var configFile string
	fs.StringVar(&configFile, "config", "", "YAML file with default settings")
	fs.StringVar(&flags.Output, "o", flags.Output, "output file, - for stdout")
	fs.StringVar(&flags.TargetKey, "key", flags.TargetKey, "root key of the object holding the records")
	fs.Var(compressionFlag{&flags.Compression}, "compression", "input compression: auto, none, zstd, gzip, s2, lz4")
	fs.StringVar(&flags.Where, "where", "", "only output records matching this JSONPath query")
	fs.StringVar(&flags.Color, "color", flags.Color, "colorize output: auto, always, never")
	fs.BoolVar(&flags.Debug, "debug", false, "log the progress of the extraction")
	fs.BoolVar(&flags.Stats, "stats", false, "print statistics to stderr when done")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return nil, fmt.Errorf("%w: %v", ErrTooManyArguments, fs.Args())
	}

	config := Default()
	if configFile != "" {
		if err := config.LoadFile(configFile); err != nil {
			return nil, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			config.Output = flags.Output
		case "key":
			config.TargetKey = flags.TargetKey
		case "compression":
			config.Compression = flags.Compression
		case "where":
			config.Where = flags.Where
		case "color":
			config.Color = flags.Color
		case "debug":
			config.Debug = flags.Debug
		case "stats":
			config.Stats = flags.Stats
		}
	})
	if fs.NArg() == 1 {
		config.Input = fs.Arg(0)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

const usageHeader = `Write each member of the object at a root key of a JSON document as one line
of compact JSON.  The input is read from stdin if not given or "-".

Options:
`
