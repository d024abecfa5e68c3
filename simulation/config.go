// Copyright (c) 2024, The Network Simulator Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

package simulation

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/salcardamone/network/types"
)

// ScheduleConfig describes one repeating radio campaign of a scenario node.
type ScheduleConfig struct {
	Mode     string  `yaml:"mode"` // "tx" or "rx"
	Start    float64 `yaml:"start"`
	Duration float64 `yaml:"duration"`
	Delay    float64 `yaml:"delay"`
	Num      int     `yaml:"num"`
	Dest     string  `yaml:"dest"` // tx only; "All" broadcasts
}

// RadioModeOf maps the configured mode name onto a radio mode.
func (sc *ScheduleConfig) RadioModeOf() (types.RadioMode, error) {
	switch strings.ToLower(sc.Mode) {
	case "tx":
		return types.RadioTX, nil
	case "rx":
		return types.RadioRX, nil
	default:
		return types.RadioOff, errors.Errorf("unknown schedule mode %q", sc.Mode)
	}
}

// NodeConfig describes one scenario node.
type NodeConfig struct {
	Name          string           `yaml:"name"`
	ThresholdRSSI *float64         `yaml:"threshold-rssi"`
	Schedules     []ScheduleConfig `yaml:"schedules"`
}

// Config is a simulation scenario.
type Config struct {
	Nodes    []NodeConfig `yaml:"nodes"`
	RunUntil float64      `yaml:"run-until"`
}

// DefaultConfig returns a small three-node scenario: one node broadcasts on
// a repeating campaign while the others listen.
func DefaultConfig() *Config {
	return &Config{
		Nodes: []NodeConfig{
			{
				Name: "A",
				Schedules: []ScheduleConfig{
					{Mode: "rx", Start: 8, Duration: 10, Delay: 20, Num: 5},
				},
			},
			{
				Name: "B",
				Schedules: []ScheduleConfig{
					{Mode: "rx", Start: 8, Duration: 10, Delay: 20, Num: 5},
				},
			},
			{
				Name: "C",
				Schedules: []ScheduleConfig{
					{Mode: "tx", Start: 10, Duration: 5, Delay: 20, Num: 5, Dest: types.Broadcast},
				},
			},
		},
		RunUntil: 150,
	}
}

// ParseConfig parses a YAML scenario.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing scenario config")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML scenario file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scenario file %s", path)
	}
	return ParseConfig(data)
}

func (cfg *Config) validate() error {
	seen := map[string]bool{}
	for _, nc := range cfg.Nodes {
		if nc.Name == "" {
			return errors.New("scenario node has no name")
		}
		if nc.Name == types.Broadcast {
			return errors.Errorf("node name %q is reserved for broadcast", types.Broadcast)
		}
		if seen[nc.Name] {
			return errors.Errorf("duplicate node name %q", nc.Name)
		}
		seen[nc.Name] = true
	}

	for _, nc := range cfg.Nodes {
		for _, sc := range nc.Schedules {
			mode, err := sc.RadioModeOf()
			if err != nil {
				return errors.Wrapf(err, "node %s", nc.Name)
			}
			if mode == types.RadioTX {
				if sc.Dest == "" {
					return errors.Errorf("node %s: tx schedule needs a dest", nc.Name)
				}
				if sc.Dest != types.Broadcast && !seen[sc.Dest] {
					return errors.Errorf("node %s: tx schedule dest %q is not a scenario node", nc.Name, sc.Dest)
				}
			}
		}
	}
	return nil
}
