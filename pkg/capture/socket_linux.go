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

//go:build linux

package capture

import (
	"fmt"
	"net"

	"golang.org/x/sys/unix"

	"github.com/miroute/netdiag/pkg/logger"
	"github.com/miroute/netdiag/pkg/models"
)

// packetSocket is the AF_PACKET frame source.
type packetSocket struct {
	fd     int
	logger logger.Logger

	// drops accumulates the kernel counter, which resets on each
	// PACKET_STATISTICS read.
	drops uint64
}

func openPacketSocket(opts models.CaptureOptions, log logger.Logger) (frameSource, error) {
	proto := htons(unix.ETH_P_ALL)

	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW|unix.SOCK_CLOEXEC, int(proto))
	if err != nil {
		return nil, fmt.Errorf("open capture socket: %w", err)
	}

	if opts.Interface != "" {
		ifi, err := net.InterfaceByName(opts.Interface)
		if err != nil {
			_ = unix.Close(fd)
			return nil, fmt.Errorf("%w: %s", ErrInterfaceNotFound, opts.Interface)
		}

		sll := &unix.SockaddrLinklayer{
			Protocol: proto,
			Ifindex:  ifi.Index,
		}

		if err := unix.Bind(fd, sll); err != nil {
			_ = unix.Close(fd)
			return nil, fmt.Errorf("bind to %s: %w", opts.Interface, err)
		}

		if opts.Promiscuous {
			mreq := unix.PacketMreq{
				Ifindex: int32(ifi.Index),
				Type:    unix.PACKET_MR_PROMISC,
			}

			// Best effort: without the membership, capture continues
			// restricted to frames addressed to the local link.
			if err := unix.SetsockoptPacketMreq(fd, unix.SOL_PACKET, unix.PACKET_ADD_MEMBERSHIP, &mreq); err != nil {
				log.Warn().
					Err(err).
					Str("interface", opts.Interface).
					Msg("promiscuous mode unavailable, capturing without it")
			}
		}
	}

	// The fixed 1s receive timeout lets the capture loop re-check its
	// bounds even when no traffic arrives.
	tv := unix.Timeval{Sec: 1}
	if err := unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("set receive timeout: %w", err)
	}

	return &packetSocket{fd: fd, logger: log}, nil
}

func (s *packetSocket) Recv(buf []byte) (int, error) {
	n, _, err := unix.Recvfrom(s.fd, buf, 0)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EINTR {
			return 0, errReceiveTimeout
		}

		return 0, fmt.Errorf("receive: %w", err)
	}

	return n, nil
}

func (s *packetSocket) Drops() uint64 {
	st, err := unix.GetsockoptTpacketStats(s.fd, unix.SOL_PACKET, unix.PACKET_STATISTICS)
	if err == nil {
		s.drops += uint64(st.Drops)
	}

	return s.drops
}

func (s *packetSocket) Close() error {
	return unix.Close(s.fd)
}

func htons(v uint16) uint16 {
	return v<<8 | v>>8
}
