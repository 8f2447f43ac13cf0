/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package scan probes TCP reachability with non-blocking connects and
// readiness polling. Discovered network facts (closed, filtered,
// unreachable) are result values, never errors.
package scan

import (
	"time"

	"github.com/miroute/netdiag/pkg/logger"
	"github.com/miroute/netdiag/pkg/models"
)

const defaultProbeTimeout = 5 * time.Second

// Prober performs TCP connect probes against literal IPv4 targets.
type Prober struct {
	timeout time.Duration
	logger  logger.Logger
}

// NewProber creates a prober whose probes each resolve within timeout.
func NewProber(timeout time.Duration, log logger.Logger) *Prober {
	if timeout == 0 {
		timeout = defaultProbeTimeout
	}

	return &Prober{
		timeout: timeout,
		logger:  log,
	}
}

// ProbePorts probes each port in turn and returns one result per
// requested port, in request order. Probes are independent: each gets
// its own socket and its own timeout window.
func (p *Prober) ProbePorts(target string, ports []uint16) []models.ProbeResult {
	results := make([]models.ProbeResult, 0, len(ports))

	for _, port := range ports {
		results = append(results, p.Probe(target, port))
	}

	return results
}
