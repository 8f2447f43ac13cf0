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

package scan

import (
	"fmt"
	"strings"
	"time"

	"github.com/miroute/netdiag/pkg/models"
)

// FormatResult renders one probe record:
//
//	<target>:<port>/<proto> <STATUS>[ (<detail>)]
func FormatResult(r models.ProbeResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s:%d/%s %s", r.Target, r.Port, r.Proto, strings.ToUpper(string(r.Status)))

	if detail := resultDetail(r); detail != "" {
		fmt.Fprintf(&b, " (%s)", detail)
	}

	return b.String()
}

func resultDetail(r models.ProbeResult) string {
	switch r.Status {
	case models.ProbeOpen:
		if r.Latency != nil {
			return FormatLatency(*r.Latency)
		}

		return ""
	case models.ProbeClosed:
		return "connection refused"
	case models.ProbeFiltered:
		return "timeout"
	case models.ProbeHostUnreachable:
		return "no route to host"
	default:
		if r.Detail != "" {
			return r.Detail
		}

		return "probe failed"
	}
}

// FormatLatency scales a measurement: microseconds below 1ms,
// milliseconds below 1s, otherwise seconds with two decimals.
func FormatLatency(d time.Duration) string {
	usec := d.Microseconds()

	switch {
	case usec < 1000:
		return fmt.Sprintf("%dus", usec)
	case usec < 1000000:
		return fmt.Sprintf("%.1fms", float64(usec)/1000)
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
