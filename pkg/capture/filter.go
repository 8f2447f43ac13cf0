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

package capture

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/miroute/netdiag/pkg/models"
	"github.com/miroute/netdiag/pkg/scan"
)

// ParseFilter parses the tiny capture filter language into the filter
// fields of CaptureOptions. Tokens: "tcp", "udp", "icmp", "port <n>",
// "host <a.b.c.d>". Unrecognized tokens are ignored; a repeated keyword
// overwrites the earlier occurrence.
func ParseFilter(text string) models.CaptureOptions {
	var opts models.CaptureOptions

	tokens := strings.Fields(text)

	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case "tcp":
			opts.Proto = models.ProtoTCP
		case "udp":
			opts.Proto = models.ProtoUDP
		case "icmp":
			opts.Proto = models.ProtoICMP
		case "port":
			if i+1 < len(tokens) {
				i++

				if v, err := strconv.ParseUint(tokens[i], 10, 16); err == nil {
					opts.Port = int(v)
				}
			}
		case "host":
			if i+1 < len(tokens) {
				i++

				if _, ok := scan.ParseIPv4(tokens[i]); ok {
					opts.Host = tokens[i]
				}
			}
		}
	}

	return opts
}

// matches evaluates the configured predicates against one dissected
// packet. Unconfigured predicates are vacuously true. The host
// predicate is IPv4-only and never matches an IPv6 packet.
func (c *Capturer) matches(pkt *models.PacketInfo) bool {
	if c.opts.Proto != 0 {
		if pkt.Protocol == nil || int(*pkt.Protocol) != c.opts.Proto {
			return false
		}
	}

	if c.opts.Port != 0 {
		port := uint16(c.opts.Port)

		srcMatch := pkt.SrcPort != nil && *pkt.SrcPort == port
		dstMatch := pkt.DstPort != nil && *pkt.DstPort == port

		if !srcMatch && !dstMatch {
			return false
		}
	}

	if c.hasHostFilter {
		if pkt.IPVersion != 4 {
			return false
		}

		srcMatch := bytes.Equal(pkt.SrcIP[:4], c.filterHost[:])
		dstMatch := bytes.Equal(pkt.DstIP[:4], c.filterHost[:])

		if !srcMatch && !dstMatch {
			return false
		}
	}

	return true
}
