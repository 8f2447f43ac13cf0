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

package scan

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/miroute/netdiag/pkg/models"
)

// Probe attempts one non-blocking TCP connect to target:port and
// classifies the outcome. It never returns an error; setup failures
// land in the result with status "error".
//
// Latency is deliberately asymmetric: connect errors classified before
// the poll wait carry no latency, while every poll-resolved outcome
// does. Callers relying on latency must check for nil.
func (p *Prober) Probe(target string, port uint16) models.ProbeResult {
	result := models.ProbeResult{
		Target: target,
		Port:   port,
		Proto:  "tcp",
	}

	addr, ok := ParseIPv4(target)
	if !ok {
		result.Status = models.ProbeError
		result.Detail = "invalid address"

		return result
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		result.Status = models.ProbeError
		result.Detail = fmt.Sprintf("socket: %v", err)

		return result
	}

	defer func() {
		_ = unix.Close(fd)
	}()

	sa := &unix.SockaddrInet4{Port: int(port), Addr: addr}
	start := time.Now()

	err = unix.Connect(fd, sa)

	switch {
	case err == nil:
		// Loopback connects can complete without blocking.
		elapsed := time.Since(start)
		result.Status = models.ProbeOpen
		result.Latency = &elapsed

		return result
	case err == unix.EINPROGRESS:
		return p.waitConnect(fd, start, result)
	default:
		result.Status = classifyErrno(err)
		if result.Status == models.ProbeError {
			result.Detail = fmt.Sprintf("connect: %v", err)
		}

		return result
	}
}

// waitConnect polls the pending connect for write readiness, bounded by
// the prober timeout, then reads the socket's pending error code.
func (p *Prober) waitConnect(fd int, start time.Time, result models.ProbeResult) models.ProbeResult {
	deadline := start.Add(p.timeout)
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLOUT}}

	var (
		n   int
		err error
	)

	for {
		remaining := time.Until(deadline)
		if remaining < 0 {
			remaining = 0
		}

		n, err = unix.Poll(fds, int(remaining.Milliseconds()))
		if err == unix.EINTR {
			continue
		}

		break
	}

	elapsed := time.Since(start)
	result.Latency = &elapsed

	if err != nil {
		// The poll mechanism itself failing is an unreliable execution
		// environment, not a network fact.
		result.Status = models.ProbeError
		result.Detail = fmt.Sprintf("poll: %v", err)

		return result
	}

	if n == 0 {
		// An unanswered SYN within the bound is indistinguishable from
		// silent packet filtering.
		result.Status = models.ProbeFiltered

		return result
	}

	revents := fds[0].Revents

	switch {
	case revents&unix.POLLOUT != 0:
		soerr, gerr := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_ERROR)
		if gerr != nil {
			result.Status = models.ProbeError
			result.Detail = fmt.Sprintf("getsockopt: %v", gerr)

			return result
		}

		if soerr == 0 {
			result.Status = models.ProbeOpen

			return result
		}

		errno := unix.Errno(soerr)

		result.Status = classifyErrno(errno)
		if result.Status == models.ProbeError {
			result.Detail = fmt.Sprintf("connect: %v", errno)
		}

		return result
	case revents&(unix.POLLERR|unix.POLLHUP) != 0:
		result.Status = models.ProbeClosed

		return result
	default:
		result.Status = models.ProbeError
		result.Detail = "unknown poll result"

		return result
	}
}

func classifyErrno(err error) models.ProbeStatus {
	switch err {
	case unix.ECONNREFUSED:
		return models.ProbeClosed
	case unix.ENETUNREACH, unix.EHOSTUNREACH:
		return models.ProbeHostUnreachable
	default:
		return models.ProbeError
	}
}
