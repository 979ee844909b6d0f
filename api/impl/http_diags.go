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

package impl

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ebay/kgraph/util/profiling"
	"github.com/ebay/kgraph/util/web"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
)

// setLogLevel changes the level of the server's log to the "l" parameter, like
// "debug".
func (s *Server) setLogLevel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	levelName := r.URL.Query().Get("l")
	level, err := log.ParseLevel(levelName)
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, "Unable to parse level name: %s, %v", levelName, err)
		return
	}
	log.SetLevel(level)
	log.Infof("Log level set to %v", level)
	w.WriteHeader(http.StatusNoContent)
}

// profile collects a CPU profile of the server for the duration given in the
// "d" parameter, like "30s". It returns once the profile is complete. If the
// client goes away first, the profile is cut short.
func (s *Server) profile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	dur, err := time.ParseDuration(r.URL.Query().Get("d"))
	if err != nil || dur <= 0 {
		web.WriteError(w, http.StatusBadRequest, "Need a positive duration in the 'd' parameter")
		return
	}
	if dur > maxProfileDuration {
		web.WriteError(w, http.StatusBadRequest, "Profile duration may not exceed %v", maxProfileDuration)
		return
	}
	done, err := profiling.CPUProfile(r.Context(), s.profileFilename, dur)
	if err != nil {
		web.WriteError(w, http.StatusConflict, "Unable to start profiling: %v", err)
		return
	}
	metrics.profiles.Inc()
	if err := <-done; err != nil {
		web.WriteError(w, http.StatusInternalServerError, "Unable to write profile: %v", err)
		return
	}
	web.Write(w, fmt.Sprintf("Profiling complete, wrote %v\n", s.profileFilename))
}
