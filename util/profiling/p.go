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

// Package profiling collects CPU profiles of a running kgraph process.
package profiling

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/ebay/kgraph/util/errors"
	"github.com/ebay/kgraph/util/web"
	log "github.com/sirupsen/logrus"
)

// CPUProfile starts writing a CPU profile to the named file. Profiling stops
// once 'duration' elapses or 'ctx' is done, whichever is first. CPUProfile
// returns as soon as profiling has started; the returned channel then yields
// the result of finishing the file and is closed. The Go runtime allows one CPU
// profile at a time, so starting another while one runs returns an error.
func CPUProfile(ctx context.Context, filename string, duration time.Duration) (<-chan error, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	logger := log.WithFields(log.Fields{
		"file":      filename,
		"duration":  duration,
		"requestID": web.RequestID(ctx),
	})
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		os.Remove(filename)
		return nil, fmt.Errorf("unable to start CPU profile: %v", err)
	}
	logger.Info("Started CPU profile")
	done := make(chan error, 1)
	go func() {
		defer close(done)
		start := time.Now()
		timer := time.NewTimer(duration)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
		}
		pprof.StopCPUProfile()
		err := errors.Any(f.Sync(), f.Close())
		logger.WithField("elapsed", time.Since(start)).Info("Completed CPU profile")
		done <- err
	}()
	return done, nil
}
