/*package config reads fakegas's configuration. Values are layered, with later
sources overriding earlier ones:

   1. Default()
   2. a gcfg config file with a [fakegas] section (ReadFile)
   3. FAKEGAS_* environment variables (ParseEnv)
   4. command line flags, which are applied by the caller

An example config file:

   [fakegas]
   ByteOrder = little
   Marker = fakegas
   From = 1
   To = 0
   Workers = 4
   KeepGoing = false
*/
package config

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/fakegas/lib/reclass"
	"github.com/phil-mansfield/fakegas/lib/snapio"
)

// Config holds every fakegas setting.
type Config struct {
	// ByteOrder is "native", "little", or "big".
	ByteOrder string `env:"FAKEGAS_BYTE_ORDER"`
	// Marker is inserted into input file names to make output file names.
	Marker string `env:"FAKEGAS_MARKER"`
	// From and To are the particle types being merged.
	From int `env:"FAKEGAS_FROM"`
	To int `env:"FAKEGAS_TO"`
	// Workers is the number of files converted at the same time.
	Workers int `env:"FAKEGAS_WORKERS"`
	// KeepGoing skips files that fail instead of stopping.
	KeepGoing bool `env:"FAKEGAS_KEEP_GOING"`
	Debug bool `env:"FAKEGAS_DEBUG"`
	HumanLogs bool `env:"FAKEGAS_HUMAN_LOGS"`
}

// configFile is the layout gcfg expects: one field per section.
type configFile struct {
	FakeGas Config
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		ByteOrder: "native",
		Marker: "fakegas",
		From: reclass.FakeGas.From,
		To: reclass.FakeGas.To,
		Workers: 1,
	}
}

// ReadFile overwrites the fields of cfg which are set in the config file
// fileName.
func ReadFile(fileName string, cfg *Config) error {
	file := &configFile{FakeGas: *cfg}
	if err := gcfg.ReadFileInto(file, fileName); err != nil {
		return fmt.Errorf("Could not read config file, '%s': %w",
			fileName, err)
	}
	*cfg = file.FakeGas
	return nil
}

// ReadString is the same as ReadFile, but reads the config from a string.
func ReadString(text string, cfg *Config) error {
	file := &configFile{FakeGas: *cfg}
	if err := gcfg.ReadStringInto(file, text); err != nil {
		return fmt.Errorf("Could not parse config: %w", err)
	}
	*cfg = file.FakeGas
	return nil
}

// ParseEnv overwrites the fields of cfg whose environment variables are set.
func ParseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate returns an error describing the first invalid setting.
func (cfg *Config) Validate() error {
	if _, err := cfg.Order(); err != nil {
		return err
	} else if err := cfg.Merge().Check(); err != nil {
		return err
	} else if cfg.Workers < 1 {
		return fmt.Errorf("Workers is set to %d, but at least one worker " +
			"is needed.", cfg.Workers)
	} else if cfg.Marker == "" {
		return fmt.Errorf("Marker is empty, which would make output files " +
			"overwrite their inputs.")
	} else if strings.ContainsAny(cfg.Marker, `/\`) {
		return fmt.Errorf("Marker, '%s', contains a path separator.",
			cfg.Marker)
	}
	return nil
}

// Order returns the byte order named by cfg.ByteOrder.
func (cfg *Config) Order() (binary.ByteOrder, error) {
	return snapio.ParseByteOrder(cfg.ByteOrder)
}

// Merge returns the reclassification described by cfg.
func (cfg *Config) Merge() reclass.Merge {
	return reclass.Merge{From: cfg.From, To: cfg.To}
}
