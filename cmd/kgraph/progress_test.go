// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"testing"

	"github.com/ebay/kgraph/kg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_loadBars(t *testing.T) {
	bars := newLoadBars([]string{dataFile, "../../testdata/missing.tsv"})
	require.Len(t, bars.bars, 2)
	assert.True(t, bars.bars[0].Total > 0)
	assert.Equal(t, int64(0), bars.bars[1].Total)

	bars.done(0, 158, nil)
	assert.Equal(t, bars.bars[0].Total, bars.bars[0].Get())
	bars.done(1, 0, errors.New("no such file"))
	assert.Equal(t, int64(0), bars.bars[1].Get())
	bars.stop()
}

func Test_loadData(t *testing.T) {
	cfg, err := loadConfig(&options{ConfigFile: cfgFile})
	require.NoError(t, err)
	g, err := kg.New(cfg)
	require.NoError(t, err)
	err = loadData(context.Background(), g, &options{Data: []string{dataFile, dataFile}})
	require.NoError(t, err)
	assert.Equal(t, 158, g.Store.Len())
}
