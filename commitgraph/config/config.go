// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config holds the process-wide toggles this module is
// configured through: whether to retain raw commit buffers, which
// output encoding the pretty-printer should target, and whether to
// track a reverse object-refs index while parsing.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the commit graph core's ambient configuration.
type Config struct {
	// SaveCommitBuffer controls whether ParseCommit retains the raw
	// commit bytes on the Node after parsing, so the pretty-printer can
	// re-read headers cheaply. Defaults to true.
	SaveCommitBuffer bool `toml:"saveCommitBuffer,omitempty"`
	// LogOutputEncoding is git_log_output_encoding: the output encoding
	// preference for the pretty-printer's logmsg_reencode.
	LogOutputEncoding string `toml:"logOutputEncoding,omitempty"`
	// CommitEncoding is git_commit_encoding, consulted when
	// LogOutputEncoding is empty.
	CommitEncoding string `toml:"commitEncoding,omitempty"`
	// TrackObjectRefs enables the optional reverse object-refs callback
	// during commit parsing.
	TrackObjectRefs bool `toml:"trackObjectRefs,omitempty"`
}

// Default returns the default configuration: SaveCommitBuffer true,
// everything else off/empty.
func Default() *Config {
	return &Config{SaveCommitBuffer: true}
}

// OutputEncoding resolves the pretty-printer's target encoding:
// LogOutputEncoding wins if set, then CommitEncoding, else utf-8.
func (c *Config) OutputEncoding() string {
	if c == nil {
		return "utf-8"
	}
	if len(c.LogOutputEncoding) != 0 {
		return c.LogOutputEncoding
	}
	if len(c.CommitEncoding) != 0 {
		return c.CommitEncoding
	}
	return "utf-8"
}

// Overwrite layers o over c, the way modules/zeta/config.Core.Overwrite
// layers repo config over global config: the encoding strings are
// copied only when non-empty in o, while the two boolean toggles
// (SaveCommitBuffer, TrackObjectRefs) are always copied from o.
func (c *Config) Overwrite(o *Config) {
	if o == nil {
		return
	}
	c.SaveCommitBuffer = o.SaveCommitBuffer
	if len(o.LogOutputEncoding) != 0 {
		c.LogOutputEncoding = o.LogOutputEncoding
	}
	if len(o.CommitEncoding) != 0 {
		c.CommitEncoding = o.CommitEncoding
	}
	c.TrackObjectRefs = o.TrackObjectRefs
}

// Load decodes a TOML configuration file at path into a fresh Config
// seeded with Default's values.
func Load(path string) (*Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}
