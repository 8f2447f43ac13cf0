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

// Package models defines the shared data types of the diagnostics
// toolkit.
package models

import "time"

// ProbeStatus classifies the outcome of a single connection attempt.
type ProbeStatus string

const (
	// ProbeOpen means the connection completed.
	ProbeOpen ProbeStatus = "open"
	// ProbeClosed means the target answered with a refusal.
	ProbeClosed ProbeStatus = "closed"
	// ProbeFiltered means the attempt went unanswered within the
	// timeout; indistinguishable from silent packet filtering.
	ProbeFiltered ProbeStatus = "filtered"
	// ProbeHostUnreachable means the network reported no route.
	ProbeHostUnreachable ProbeStatus = "host_unreachable"
	// ProbeError covers setup failures and unclassified errors.
	ProbeError ProbeStatus = "error"
)

// ProbeResult is the outcome of one probe attempt. A failed connection
// is useful information, not an exceptional condition, so every network
// fact lands here rather than in an error return.
//
// Latency is set whenever a timing measurement was actually taken:
// immediate success, or any outcome resolved through the poll wait. It
// stays nil for setup failures and for connect errors classified
// without entering the poll.
type ProbeResult struct {
	Target  string         `json:"target"`
	Port    uint16         `json:"port"`
	Proto   string         `json:"proto"`
	Status  ProbeStatus    `json:"status"`
	Latency *time.Duration `json:"latency,omitempty"`
	Detail  string         `json:"detail,omitempty"`
}
