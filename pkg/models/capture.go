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

package models

import "time"

// IP protocol numbers used by the capture filter.
const (
	ProtoICMP = 1
	ProtoTCP  = 6
	ProtoUDP  = 17
)

// PacketInfo is one dissected frame. Optional fields are nil (or, for
// the IP holders, guarded by IPVersion) when the underlying bytes were
// not present or not recognized; partial dissection is never reported
// as complete.
type PacketInfo struct {
	// Offset is the capture timestamp relative to session start.
	Offset time.Duration
	// Length is the received frame length in bytes.
	Length int

	SrcMAC    [6]byte
	DstMAC    [6]byte
	EtherType uint16
	// VLAN is the 12-bit 802.1Q id, when a tag was present.
	VLAN *uint16

	// IPVersion is 4 or 6, or 0 when no IP layer was parsed. The IP
	// holders below are meaningful only when it is non-zero; for IPv4
	// only the first 4 bytes carry the address.
	IPVersion int
	Protocol  *uint8
	SrcIP     [16]byte
	DstIP     [16]byte

	SrcPort *uint16
	DstPort *uint16
}

// CaptureStats is a point-in-time snapshot of session counters. The
// counters only grow; Dropped comes from the kernel's per-socket drop
// count.
type CaptureStats struct {
	Packets uint64    `json:"packets"`
	Bytes   uint64    `json:"bytes"`
	Dropped uint64    `json:"dropped"`
	Start   time.Time `json:"start"`
}

// CaptureOptions configures a capture session. All fields are optional;
// the zero value captures everything on all interfaces with no bound.
type CaptureOptions struct {
	// Interface restricts reception to one link and enables binding.
	// Empty means all interfaces.
	Interface string `json:"interface,omitempty"`
	// Count stops the session after this many accepted packets.
	Count int `json:"count,omitempty"`
	// Duration stops the session after this much wall-clock time.
	Duration time.Duration `json:"-"`
	// SnapLen caps the bytes received per frame. Zero means the
	// default (65535).
	SnapLen int `json:"snaplen,omitempty"`
	// Promiscuous requests receipt of frames not addressed to the
	// local link. Best effort; failure to enable is not fatal.
	Promiscuous bool `json:"promiscuous,omitempty"`

	// Filter fields. Zero means unconfigured; an unconfigured
	// predicate never excludes a packet.
	Proto int    `json:"proto,omitempty"`
	Port  int    `json:"port,omitempty"`
	Host  string `json:"host,omitempty"`
}
