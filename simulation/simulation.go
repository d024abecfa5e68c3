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

// Package simulation assembles a runnable simulation from a scenario config:
// the kernel environment, the nodes with their radios and schedules, and the
// world routing between them.
package simulation

import (
	"github.com/pkg/errors"

	"github.com/salcardamone/network/kernel"
	"github.com/salcardamone/network/logger"
	"github.com/salcardamone/network/node"
	"github.com/salcardamone/network/packet"
	"github.com/salcardamone/network/schedule"
	"github.com/salcardamone/network/types"
	"github.com/salcardamone/network/world"
)

// Simulation is a fully-wired scenario ready to advance through time.
type Simulation struct {
	env   *kernel.Env
	cfg   *Config
	nodes []*node.Node
	byId  map[types.Identifier]*node.Node
	world *world.World
}

// NewSimulation builds the environment, nodes and world described by cfg and
// installs every configured schedule. The simulation clock becomes the
// logger's time source.
func NewSimulation(cfg *Config) (*Simulation, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	env := kernel.NewEnv()
	logger.SetTimeSource(env.Now)

	s := &Simulation{
		env:  env,
		cfg:  cfg,
		byId: make(map[types.Identifier]*node.Node, len(cfg.Nodes)),
	}

	for _, nc := range cfg.Nodes {
		n := node.New(env, nc.Name)
		if nc.ThresholdRSSI != nil {
			n.Radio().SetThresholdRSSI(*nc.ThresholdRSSI)
		}
		s.nodes = append(s.nodes, n)
		s.byId[nc.Name] = n
	}
	s.world = world.New(env, s.nodes)

	for _, nc := range cfg.Nodes {
		n := s.byId[nc.Name]
		for _, sc := range nc.Schedules {
			if err := s.installSchedule(n, sc); err != nil {
				return nil, errors.Wrapf(err, "node %s", nc.Name)
			}
		}
	}
	return s, nil
}

// installSchedule turns one schedule config into a live schedule on the
// node's manager. Transmit campaigns stamp each synthesized packet with a
// per-campaign sequence number, captured fresh per firing.
func (s *Simulation) installSchedule(n *node.Node, sc ScheduleConfig) error {
	mode, err := sc.RadioModeOf()
	if err != nil {
		return err
	}

	var ctor schedule.PacketConstructor
	if mode == types.RadioTX {
		seq := 0
		src := n.Name()
		dest := sc.Dest
		ctor = func() *packet.DataPacket {
			return packet.NewLazyDataPacket(src, dest, map[string]func() interface{}{
				"seq": func() interface{} {
					seq++
					return seq
				},
			})
		}
	}

	sched, err := schedule.New(sc.Start, sc.Duration, sc.Delay, sc.Num, mode, ctor)
	if err != nil {
		return err
	}
	n.Protocol().Manager().Add(sched)
	return nil
}

// Env returns the simulation environment.
func (s *Simulation) Env() *kernel.Env {
	return s.env
}

// Now returns the current simulation time.
func (s *Simulation) Now() float64 {
	return s.env.Now()
}

// Go advances the simulation by duration ticks.
func (s *Simulation) Go(duration float64) {
	s.env.Run(s.env.Now() + duration)
}

// Run advances the simulation to the scenario's configured horizon.
func (s *Simulation) Run() {
	s.env.Run(s.cfg.RunUntil)
}

// Stop tears down the shared medium; time may still advance, but further
// transmissions are no longer routed.
func (s *Simulation) Stop() {
	s.world.Stop()
}

// Nodes returns the simulation's nodes in scenario order.
func (s *Simulation) Nodes() []*node.Node {
	return s.nodes
}

// Node returns the named node, or nil.
func (s *Simulation) Node(name types.Identifier) *node.Node {
	return s.byId[name]
}

// World returns the shared medium.
func (s *Simulation) World() *world.World {
	return s.world
}
