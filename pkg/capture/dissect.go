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
	"time"

	"github.com/miroute/netdiag/pkg/models"
)

const (
	ethHeaderLen  = 14
	vlanTagLen    = 4
	ipv4HeaderMin = 20
	ipv6HeaderLen = 40

	etherTypeVLAN = 0x8100
	etherTypeIPv4 = 0x0800
	etherTypeIPv6 = 0x86DD
)

// dissect parses one link-layer frame at fixed offsets. Truncation
// degrades to absent fields; dissection never fails once the minimum
// Ethernet header is present. Frames shorter than that yield nil.
//
// IPv6 extension headers are not walked: the protocol is the fixed
// next-header byte, and ports are only read when TCP/UDP directly
// follows the fixed header.
func dissect(frame []byte, offset time.Duration) *models.PacketInfo {
	if len(frame) < ethHeaderLen {
		return nil
	}

	pkt := &models.PacketInfo{
		Offset: offset,
		Length: len(frame),
	}

	cur := newCursor(frame)

	dst, _ := cur.take(6)
	copy(pkt.DstMAC[:], dst)

	src, _ := cur.take(6)
	copy(pkt.SrcMAC[:], src)

	pkt.EtherType, _ = cur.u16()

	if pkt.EtherType == etherTypeVLAN && cur.remaining() >= vlanTagLen {
		tci, _ := cur.u16()
		inner, _ := cur.u16()

		id := tci & 0x0fff
		pkt.VLAN = &id
		pkt.EtherType = inner
	}

	switch pkt.EtherType {
	case etherTypeIPv4:
		dissectIPv4(cur, pkt)
	case etherTypeIPv6:
		dissectIPv6(cur, pkt)
	}

	return pkt
}

func dissectIPv4(cur *cursor, pkt *models.PacketInfo) {
	if cur.remaining() < ipv4HeaderMin {
		return
	}

	hdr, _ := cur.take(ipv4HeaderMin)

	pkt.IPVersion = 4

	proto := hdr[9]
	pkt.Protocol = &proto

	copy(pkt.SrcIP[:4], hdr[12:16])
	copy(pkt.DstIP[:4], hdr[16:20])

	if proto != models.ProtoTCP && proto != models.ProtoUDP {
		return
	}

	// The transport header starts after the full IHL, options included.
	ihl := int(hdr[0]&0x0f) * 4
	if ihl < ipv4HeaderMin || !cur.skip(ihl-ipv4HeaderMin) {
		return
	}

	takePorts(cur, pkt)
}

func dissectIPv6(cur *cursor, pkt *models.PacketInfo) {
	if cur.remaining() < ipv6HeaderLen {
		return
	}

	hdr, _ := cur.take(ipv6HeaderLen)

	pkt.IPVersion = 6

	proto := hdr[6]
	pkt.Protocol = &proto

	copy(pkt.SrcIP[:], hdr[8:24])
	copy(pkt.DstIP[:], hdr[24:40])

	if proto == models.ProtoTCP || proto == models.ProtoUDP {
		takePorts(cur, pkt)
	}
}

func takePorts(cur *cursor, pkt *models.PacketInfo) {
	if cur.remaining() < 4 {
		return
	}

	srcPort, _ := cur.u16()
	dstPort, _ := cur.u16()

	pkt.SrcPort = &srcPort
	pkt.DstPort = &dstPort
}
