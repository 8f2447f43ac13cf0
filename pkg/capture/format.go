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
	"fmt"
	"net"
	"strconv"

	"github.com/miroute/netdiag/pkg/models"
)

// FormatPacket renders one packet record:
//
//	<secs>.<usecs> <proto> <len> <src> > <dst>[ vlan:<id>]
//
// Endpoints render as ip:port when both are known, bare ip when only
// the address is known, and the MAC pair when no IP layer was parsed.
func FormatPacket(pkt *models.PacketInfo) string {
	usec := pkt.Offset.Microseconds()

	line := fmt.Sprintf("%d.%06d %-6s %4d %s > %s",
		usec/1000000, usec%1000000,
		protoLabel(pkt),
		pkt.Length,
		endpoint(pkt, pkt.SrcMAC, pkt.SrcIP, pkt.SrcPort),
		endpoint(pkt, pkt.DstMAC, pkt.DstIP, pkt.DstPort))

	if pkt.VLAN != nil {
		line += fmt.Sprintf(" vlan:%d", *pkt.VLAN)
	}

	return line
}

func protoLabel(pkt *models.PacketInfo) string {
	if pkt.Protocol == nil {
		// No IP layer: show the EtherType instead.
		return fmt.Sprintf("0x%04x", pkt.EtherType)
	}

	switch *pkt.Protocol {
	case models.ProtoICMP:
		return "icmp"
	case 2:
		return "igmp"
	case models.ProtoTCP:
		return "tcp"
	case models.ProtoUDP:
		return "udp"
	case 58:
		return "icmp6"
	default:
		return strconv.Itoa(int(*pkt.Protocol))
	}
}

func endpoint(pkt *models.PacketInfo, mac [6]byte, ip [16]byte, port *uint16) string {
	var addr string

	switch pkt.IPVersion {
	case 4:
		addr = net.IP(ip[:4]).String()
	case 6:
		addr = net.IP(ip[:]).String()
	default:
		return net.HardwareAddr(mac[:]).String()
	}

	if port != nil {
		return fmt.Sprintf("%s:%d", addr, *port)
	}

	return addr
}
