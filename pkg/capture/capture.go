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

// Package capture receives raw link-layer frames and dissects
// Ethernet/VLAN/IPv4/IPv6/TCP/UDP headers by hand. Capture sessions are
// single-threaded and bounded by packet count and wall-clock duration;
// the fixed 1-second receive timeout is the loop's only liveness tick.
package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/miroute/netdiag/pkg/logger"
	"github.com/miroute/netdiag/pkg/models"
	"github.com/miroute/netdiag/pkg/scan"
)

const defaultSnapLen = 65535

// frameSource is the receive side of a capture session. The real
// implementation wraps an AF_PACKET socket; tests substitute fakes.
type frameSource interface {
	// Recv fills buf with one frame. It returns errReceiveTimeout when
	// the bounded receive elapsed without traffic; any other error is
	// fatal to the session.
	Recv(buf []byte) (int, error)
	// Drops reports the cumulative kernel drop count, best effort.
	Drops() uint64
	Close() error
}

// Capturer owns one raw socket for the duration of one capture session.
type Capturer struct {
	opts      models.CaptureOptions
	src       frameSource
	logger    logger.Logger
	sessionID string

	start time.Time
	buf   []byte
	stats models.CaptureStats

	filterHost    [4]byte
	hasHostFilter bool
}

// New opens a raw capture socket per opts. Raw sockets need elevated
// privilege; failure to open is a setup error, reported here and never
// from the dissection path.
func New(opts models.CaptureOptions, log logger.Logger) (*Capturer, error) {
	src, err := openPacketSocket(opts, log)
	if err != nil {
		return nil, err
	}

	c, err := newCapturer(opts, src, log)
	if err != nil {
		_ = src.Close()
		return nil, err
	}

	return c, nil
}

func newCapturer(opts models.CaptureOptions, src frameSource, log logger.Logger) (*Capturer, error) {
	snapLen := opts.SnapLen
	if snapLen <= 0 {
		snapLen = defaultSnapLen
	}

	c := &Capturer{
		opts:      opts,
		src:       src,
		logger:    log,
		sessionID: uuid.New().String(),
		start:     time.Now(),
		buf:       make([]byte, snapLen),
	}

	c.stats.Start = c.start

	if opts.Host != "" {
		addr, ok := scan.ParseIPv4(opts.Host)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrBadHostFilter, opts.Host)
		}

		c.filterHost = addr
		c.hasHostFilter = true
	}

	log.Info().
		Str("session_id", c.sessionID).
		Str("interface", opts.Interface).
		Int("snaplen", snapLen).
		Msg("capture session opened")

	return c, nil
}

// SessionID identifies this session in logs.
func (c *Capturer) SessionID() string {
	return c.sessionID
}

// ReadPacket performs one bounded receive. It returns (nil, nil) when
// the receive timed out, when the frame was shorter than an Ethernet
// header, or when the filter rejected the frame; none of those count
// toward stats. Any other receive error is fatal.
func (c *Capturer) ReadPacket() (*models.PacketInfo, error) {
	n, err := c.src.Recv(c.buf)
	if err != nil {
		if errors.Is(err, errReceiveTimeout) {
			return nil, nil
		}

		return nil, err
	}

	pkt := dissect(c.buf[:n], time.Since(c.start))
	if pkt == nil {
		return nil, nil
	}

	if !c.matches(pkt) {
		return nil, nil
	}

	c.stats.Packets++
	c.stats.Bytes += uint64(n)

	return pkt, nil
}

// Run loops over ReadPacket until the configured count or duration
// bound is reached, streaming one formatted record per accepted packet
// to sink. With neither bound configured it runs until ctx is
// cancelled. The bounds are re-checked once per receive tick, so a
// duration bound overshoots by at most one tick.
func (c *Capturer) Run(ctx context.Context, sink io.Writer) error {
	var deadline time.Time
	if c.opts.Duration > 0 {
		deadline = time.Now().Add(c.opts.Duration)
	}

	accepted := 0

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if c.opts.Count > 0 && accepted >= c.opts.Count {
			return nil
		}

		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return nil
		}

		pkt, err := c.ReadPacket()
		if err != nil {
			return err
		}

		if pkt == nil {
			continue
		}

		accepted++

		if _, err := fmt.Fprintln(sink, FormatPacket(pkt)); err != nil {
			return err
		}
	}
}

// Stats returns a point-in-time snapshot of the session counters.
func (c *Capturer) Stats() models.CaptureStats {
	snapshot := c.stats
	snapshot.Dropped = c.src.Drops()

	return snapshot
}

// Close releases the capture socket.
func (c *Capturer) Close() error {
	c.logger.Debug().
		Str("session_id", c.sessionID).
		Uint64("packets", c.stats.Packets).
		Uint64("bytes", c.stats.Bytes).
		Msg("capture session closed")

	return c.src.Close()
}
