package cmd

import (
	"github.com/spf13/pflag"

	"github.com/PolarWolf314/vellum/internal/codec"
	"github.com/PolarWolf314/vellum/internal/configs"
)

// formatValue is a pflag.Value that only accepts known envelope formats.
type formatValue struct{ format *codec.Format }

func (v formatValue) String() string {
	if v.format == nil {
		return ""
	}
	return v.format.String()
}

func (v formatValue) Set(s string) error {
	f, err := codec.ParseFormat(s)
	if err != nil {
		return err
	}
	*v.format = f
	return nil
}

func (formatValue) Type() string { return "format" }

// suiteValue is a pflag.Value that only accepts known v2 cipher suites.
type suiteValue struct{ suite *codec.Suite }

func (v suiteValue) String() string {
	if v.suite == nil {
		return ""
	}
	return string(*v.suite)
}

func (v suiteValue) Set(s string) error {
	suite, err := codec.ParseSuite(s)
	if err != nil {
		return err
	}
	*v.suite = suite
	return nil
}

func (suiteValue) Type() string { return "suite" }

// envelopeFlags holds --format and --suite for commands that write envelopes.
type envelopeFlags struct {
	format codec.Format
	suite  codec.Suite
}

func (e *envelopeFlags) register(fs *pflag.FlagSet) {
	fs.Var(formatValue{&e.format}, "format", "envelope format: legacy or v2 (default from config)")
	fs.Var(suiteValue{&e.suite}, "suite", "v2 cipher suite: aes-256-gcm or xchacha20-poly1305 (implies --format v2)")
}

func (e *envelopeFlags) reset() {
	e.format = codec.FormatLegacy
	e.suite = ""
}

// changed reports whether either flag was given.
func (e *envelopeFlags) changed(fs *pflag.FlagSet) bool {
	return fs.Changed("format") || fs.Changed("suite")
}

// resolve layers the flags over the configured envelope. Naming a suite
// without a format selects v2, since only v2 has suites.
func (e *envelopeFlags) resolve(fs *pflag.FlagSet, config *configs.Config) (codec.Options, error) {
	opts, err := config.SealOptions()
	if err != nil {
		return codec.Options{}, err
	}
	if fs.Changed("format") {
		opts.Format = e.format
	}
	if fs.Changed("suite") {
		opts.Suite = e.suite
		if !fs.Changed("format") {
			opts.Format = codec.FormatV2
		}
	}
	return opts, nil
}
