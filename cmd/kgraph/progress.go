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
	"fmt"
	"io"
	"os"

	"github.com/cheggaaa/pb"
	log "github.com/sirupsen/logrus"
)

// loadBars shows one progress bar per DATA file while kg.LoadFiles parses
// them. Each bar counts the file's bytes and fills once the file is parsed.
type loadBars struct {
	names []string
	bars  []*pb.ProgressBar
	pool  *pb.Pool
}

func newLoadBars(filenames []string) *loadBars {
	bars := make([]*pb.ProgressBar, len(filenames))
	for i, name := range filenames {
		var size int64
		if info, err := os.Stat(name); err == nil {
			size = info.Size()
		}
		bars[i] = pb.New64(size).Prefix(fmt.Sprintf("%s ", name)).SetUnits(pb.U_BYTES)
		bars[i].SetMaxWidth(100)
		bars[i].ShowPercent = true
	}
	return &loadBars{names: filenames, bars: bars}
}

// start draws the bars to 'out' until stop is called. Without a terminal,
// the pool can't start and the bars stay hidden.
func (b *loadBars) start(out io.Writer) {
	pool := pb.NewPool(b.bars...)
	pool.Output = out
	if err := pool.Start(); err != nil {
		log.WithError(err).Debug("Not showing load progress")
		return
	}
	b.pool = pool
}

// done fills the file's bar. It's a kg.LoadProgress.
func (b *loadBars) done(file int, read int, err error) {
	bar := b.bars[file]
	if err != nil {
		bar.Prefix(fmt.Sprintf("%s failed ", b.names[file]))
	}
	bar.Postfix(fmt.Sprintf(" %d triples", read))
	bar.Set64(bar.Total)
}

func (b *loadBars) stop() {
	if b.pool != nil {
		b.pool.Stop()
	}
}
