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
	"testing"

	"github.com/stretchr/testify/assert"
)

var testYamlScenario = `
nodes:
    - name: A
      threshold-rssi: 0.5
      schedules:
          - mode: rx
            start: 8
            duration: 10
            delay: 20
            num: 5
    - name: B
      schedules:
          - mode: tx
            start: 10
            duration: 5
            delay: 20
            num: 5
            dest: A
run-until: 150
`

func TestParseScenarioYaml(t *testing.T) {
	cfg, err := ParseConfig([]byte(testYamlScenario))
	assert.Nil(t, err)

	assert.Equal(t, 2, len(cfg.Nodes))
	assert.Equal(t, 150.0, cfg.RunUntil)

	a := cfg.Nodes[0]
	assert.Equal(t, "A", a.Name)
	assert.NotNil(t, a.ThresholdRSSI)
	assert.Equal(t, 0.5, *a.ThresholdRSSI)
	assert.Equal(t, 1, len(a.Schedules))
	assert.Equal(t, "rx", a.Schedules[0].Mode)

	b := cfg.Nodes[1]
	assert.Nil(t, b.ThresholdRSSI)
	assert.Equal(t, "A", b.Schedules[0].Dest)
	assert.Equal(t, 5, b.Schedules[0].Num)
}

func TestParseRejectsUnknownDest(t *testing.T) {
	_, err := ParseConfig([]byte(`
nodes:
    - name: A
      schedules:
          - mode: tx
            start: 0
            duration: 5
            delay: 10
            num: 1
            dest: Z
`))
	assert.NotNil(t, err)
}

func TestParseRejectsDuplicateNames(t *testing.T) {
	_, err := ParseConfig([]byte(`
nodes:
    - name: A
    - name: A
`))
	assert.NotNil(t, err)
}

func TestParseRejectsReservedName(t *testing.T) {
	_, err := ParseConfig([]byte(`
nodes:
    - name: All
`))
	assert.NotNil(t, err)
}

func TestParseRejectsUnknownMode(t *testing.T) {
	_, err := ParseConfig([]byte(`
nodes:
    - name: A
      schedules:
          - mode: duplex
            start: 0
            duration: 5
            delay: 10
            num: 1
`))
	assert.NotNil(t, err)
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.Nil(t, DefaultConfig().validate())
}
