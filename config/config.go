/*
Copyright (C) 2026  OpenPMD-Go Contributors

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package config implements the JSON/TOML backend configuration tree
// (spec.md §6.3, SPEC_FULL.md §4.7, C7): recognized keys, environment
// variable overrides, and shadow-diff warnings for unrecognized keys.
package config

import (
	"strings"

	"github.com/docker/go-units"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/openpmd/openpmd-go/ioerror"
)

// Engine mirrors adios2.engine.* (spec.md §6.3).
type Engine struct {
	Type                       string            `mapstructure:"type"`
	Parameters                 map[string]string `mapstructure:"parameters"`
	AccessMode                 string            `mapstructure:"access_mode"`
	FlushTarget                string            `mapstructure:"flush_target"`
	TreatUnsupportedEngineLike string            `mapstructure:"treat_unsupported_engine_like"`
}

// DatasetOperator mirrors one entry of adios2.dataset.operators.
type DatasetOperator struct {
	Type       string            `mapstructure:"type"`
	Parameters map[string]string `mapstructure:"parameters"`
}

// ADIOS2 mirrors the adios2.* recognized-key subtree.
type ADIOS2 struct {
	Engine                Engine `mapstructure:"engine"`
	UseGroupTable         bool   `mapstructure:"use_group_table"`
	UseSpanBasedPut       bool   `mapstructure:"use_span_based_put"`
	ModifiableAttributes  bool   `mapstructure:"modifiable_attributes"`
	AttributeWritingRanks []int  `mapstructure:"attribute_writing_ranks"`
	Dataset               struct {
		Operators []DatasetOperator `mapstructure:"operators"`
	} `mapstructure:"dataset"`
}

// HDF5Dataset mirrors hdf5.dataset.* — Chunks additionally accepts a
// human-sized byte budget string (e.g. "2MiB"), parsed on demand by
// ChunkByteBudget rather than at decode time, since "auto"/"none" are
// also legal and not byte sizes.
type HDF5Dataset struct {
	Chunks string `mapstructure:"chunks"`
}

// HDF5 mirrors the hdf5.* recognized-key subtree.
type HDF5 struct {
	Dataset HDF5Dataset `mapstructure:"dataset"`
}

// Catalog configures the optional SQL run catalog (SPEC_FULL.md §4.11).
type Catalog struct {
	Driver string `mapstructure:"driver"` // "mysql" | "postgres"
	DSN    string `mapstructure:"dsn"`
}

// Monitor configures the optional websocket stream monitor (SPEC_FULL.md §4.12).
type Monitor struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen"`
}

// Config is the full recognized-key tree of spec.md §6.3, supplemented by
// SPEC_FULL.md's catalog/monitor sections.
type Config struct {
	ADIOS2  ADIOS2  `mapstructure:"adios2"`
	HDF5    HDF5    `mapstructure:"hdf5"`
	Catalog Catalog `mapstructure:"catalog"`
	Monitor Monitor `mapstructure:"monitor"`
}

// envBindings is the closed list of recognized OPENPMD_* variables (§6.3).
var envBindings = []string{
	"OPENPMD_ADIOS2_ENGINE",
	"OPENPMD_ADIOS2_HAVE_METADATA_FILE",
	"OPENPMD_ADIOS2_HAVE_PROFILING",
	"OPENPMD_ADIOS2_ASYNC_WRITE",
	"OPENPMD_ADIOS2_STATS_LEVEL",
	"OPENPMD_ADIOS2_NUM_SUBSTREAMS",
	"OPENPMD_HDF5_COLLECTIVE_METADATA",
	"OPENPMD_HDF5_CHUNKS",
	"OPENPMD2_ADIOS2_USE_GROUP_TABLE",
}

// Load reads a JSON or TOML file (viper infers the format from the
// extension), decodes it into a Config via mapstructure, and reports any
// top-level keys present in the document but absent from Config's shape
// as warnings (spec §8 property 8 "Config shadow").
func Load(path string) (*Config, string, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("")
	for _, env := range envBindings {
		_ = v.BindEnv(strings.ToLower(strings.TrimPrefix(env, "OPENPMD_")), env)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, "", &ioerror.BackendConfigSchema{
			JSONPath: nil, Message: "reading config: " + err.Error(),
		}
	}

	var cfg Config
	decoderConfig := &mapstructure.DecoderConfig{
		Result:           &cfg,
		ErrorUnused:      false, // we want to report, not fail
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return nil, "", &ioerror.Internal{Message: "config: building decoder: " + err.Error()}
	}
	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, "", &ioerror.BackendConfigSchema{Message: "decoding config: " + err.Error()}
	}

	warning := ShadowDiff(v.AllSettings())
	return &cfg, warning, nil
}

// recognizedTopLevel are the only top-level keys Config understands.
var recognizedTopLevel = map[string]bool{
	"adios2": true, "hdf5": true, "catalog": true, "monitor": true,
}

// ShadowDiff returns a human-readable warning naming any top-level key in
// raw that Config's shape does not recognize, or "" if there is none
// (spec §8 property 8: "a malformed or unused...key produces a warning
// naming the key path, and the surrounding valid config still takes
// effect").
func ShadowDiff(raw map[string]any) string {
	var unknown []string
	for k := range raw {
		if !recognizedTopLevel[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return ""
	}
	return "openpmd: unrecognized config key(s): " + strings.Join(unknown, ", ")
}

// ChunkByteBudget parses hdf5.dataset.chunks when it is a byte-size
// string (e.g. "2MiB") rather than "auto"/"none", using
// github.com/docker/go-units for the human-size grammar, feeding the
// chunk-shape heuristic of spec.md §4.5.
func ChunkByteBudget(value string) (bytes int64, auto bool, none bool, err error) {
	switch strings.ToLower(value) {
	case "auto", "":
		return 0, true, false, nil
	case "none":
		return 0, false, true, nil
	}
	n, parseErr := units.RAMInBytes(value)
	if parseErr != nil {
		return 0, false, false, &ioerror.BackendConfigSchema{
			JSONPath: []string{"hdf5", "dataset", "chunks"},
			Message:  "not one of auto/none/<byte size>: " + parseErr.Error(),
		}
	}
	return n, false, false, nil
}
