package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Options holds the configuration of one braids invocation. Options are read from an optional YAML file and then
// overridden by command line flags.
type Options struct {
	Src       string   `yaml:"-"`         // Path to input file, package directory or "-" for stdin.
	Config    string   `yaml:"-"`         // Path to YAML configuration file.
	Host      string   `yaml:"host"`      // Program representation of the input: HostLLVM or HostGo.
	Out       string   `yaml:"out"`       // Path to output file. Empty writes to stdout.
	Threads   int      `yaml:"threads"`   // Number of blocks analysed in parallel.
	Format    string   `yaml:"format"`    // Report format: FormatText or FormatJSON.
	Listing   bool     `yaml:"listing"`   // Set true to list every instruction under the block header.
	Functions []string `yaml:"functions"` // Only analyse functions with these names. Empty means all.
	Verbose   bool     `yaml:"verbose"`   // Set true to log debug messages to stderr.
}

// ---------------------
// ----- Constants -----
// ---------------------

const maxThreads = 64 // Maximum threads allowed executing in parallel.

// AppVersion is printed by the --version flag.
const AppVersion = "braids 1.0"

// Input program representations.
const (
	HostAuto = ""     // Pick host from the input path.
	HostLLVM = "llvm" // LLVM IR, textual or bitcode.
	HostGo   = "go"   // Go packages lowered to SSA form.
)

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Flag names shared by BindFlags and the precedence check in ParseArgs.
const (
	flagHost      = "host"
	flagOut       = "out"
	flagThreads   = "threads"
	flagFormat    = "format"
	flagListing   = "listing"
	flagFunctions = "func"
	flagVerbose   = "verbose"
	flagConfig    = "config"
)

// -------------------
// ----- globals -----
// -------------------

// ErrThreads is returned when the thread count is out of range.
var ErrThreads = fmt.Errorf("thread count must be integer in range [1, %d]", maxThreads)

// ErrFormat is returned for unknown report formats.
var ErrFormat = errors.New("unknown report format")

// ErrHost is returned for unknown program representations.
var ErrHost = errors.New("unknown host representation")

// ---------------------
// ----- functions -----
// ---------------------

// DefaultOptions returns the options used when neither configuration file nor flags say otherwise.
func DefaultOptions() Options {
	return Options{
		Threads: 1,
		Format:  FormatText,
	}
}

// BindFlags registers the command line flags of braids on cmd. Flag values are written directly to opt.
func BindFlags(cmd *cobra.Command, opt *Options) {
	fs := cmd.Flags()
	fs.StringVarP(&opt.Host, flagHost, "x", opt.Host, "Input representation: 'llvm' or 'go'. Defaults to 'llvm' for .ll and .bc files, 'go' otherwise.")
	fs.StringVarP(&opt.Out, flagOut, "o", opt.Out, "Path and name of the output file.")
	fs.IntVarP(&opt.Threads, flagThreads, "t", opt.Threads, fmt.Sprintf("Number of blocks to analyse in parallel. Must be in range [1, %d].", maxThreads))
	fs.StringVarP(&opt.Format, flagFormat, "f", opt.Format, "Report format: 'text' or 'json'.")
	fs.BoolVarP(&opt.Listing, flagListing, "l", opt.Listing, "List every instruction of a block before its braids.")
	fs.StringSliceVarP(&opt.Functions, flagFunctions, "F", opt.Functions, "Only analyse functions with the given names.")
	fs.BoolVarP(&opt.Verbose, flagVerbose, "v", opt.Verbose, "Verbose mode: log progress to stderr.")
	fs.StringVarP(&opt.Config, flagConfig, "c", opt.Config, "Path to YAML configuration file.")
}

// ParseArgs completes the options parsed by cmd. If a configuration file was given, its values are used for every
// flag that was not explicitly set on the command line. The final options are validated.
func ParseArgs(cmd *cobra.Command, opt Options, args []string) (Options, error) {
	if len(args) != 1 {
		return opt, fmt.Errorf("expected exactly one input, got %d", len(args))
	}
	opt.Src = args[0]

	if len(opt.Config) > 0 {
		file, err := LoadConfig(opt.Config)
		if err != nil {
			return opt, err
		}
		fs := cmd.Flags()
		if !fs.Changed(flagHost) && len(file.Host) > 0 {
			opt.Host = file.Host
		}
		if !fs.Changed(flagOut) && len(file.Out) > 0 {
			opt.Out = file.Out
		}
		if !fs.Changed(flagThreads) && file.Threads != 0 {
			opt.Threads = file.Threads
		}
		if !fs.Changed(flagFormat) && len(file.Format) > 0 {
			opt.Format = file.Format
		}
		if !fs.Changed(flagListing) {
			opt.Listing = opt.Listing || file.Listing
		}
		if !fs.Changed(flagFunctions) && len(file.Functions) > 0 {
			opt.Functions = file.Functions
		}
		if !fs.Changed(flagVerbose) {
			opt.Verbose = opt.Verbose || file.Verbose
		}
	}

	opt.Host = opt.ResolveHost()
	return opt, opt.Validate()
}

// LoadConfig reads the YAML configuration file at path. Unknown keys are rejected.
func LoadConfig(path string) (Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return Options{}, fmt.Errorf("could not open configuration file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	opt := Options{}
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&opt); err != nil {
		return Options{}, fmt.Errorf("could not decode configuration file %s: %w", path, err)
	}
	return opt, nil
}

// Validate returns an error if any option is out of range.
func (opt Options) Validate() error {
	if opt.Threads < 1 || opt.Threads > maxThreads {
		return fmt.Errorf("%w, got %d", ErrThreads, opt.Threads)
	}
	switch opt.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrFormat, opt.Format)
	}
	switch opt.Host {
	case HostLLVM, HostGo:
	default:
		return fmt.Errorf("%w: %q", ErrHost, opt.Host)
	}
	if len(opt.Src) == 0 {
		return errors.New("no input given")
	}
	return nil
}

// ResolveHost returns the configured host, or picks one from the file extension of the input if none was given.
func (opt Options) ResolveHost() string {
	if opt.Host != HostAuto {
		return strings.ToLower(opt.Host)
	}
	switch filepath.Ext(opt.Src) {
	case ".ll", ".bc":
		return HostLLVM
	}
	if opt.Src == "-" {
		return HostLLVM
	}
	return HostGo
}

// Selected returns true if a function known by any of the given names should be analysed.
func (opt Options) Selected(names ...string) bool {
	if len(opt.Functions) == 0 {
		return true
	}
	for _, e1 := range opt.Functions {
		for _, e2 := range names {
			if e1 == e2 {
				return true
			}
		}
	}
	return false
}
