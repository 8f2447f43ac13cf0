package capture

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miroute/netdiag/pkg/logger"
	"github.com/miroute/netdiag/pkg/models"
)

// fakeSource replays canned frames, then reports receive timeouts (or
// a fatal error, when set).
type fakeSource struct {
	frames [][]byte
	idx    int
	err    error
	drops  uint64
	closed bool
}

func (f *fakeSource) Recv(buf []byte) (int, error) {
	if f.idx >= len(f.frames) {
		if f.err != nil {
			return 0, f.err
		}

		return 0, errReceiveTimeout
	}

	n := copy(buf, f.frames[f.idx])
	f.idx++

	return n, nil
}

func (f *fakeSource) Drops() uint64 {
	return f.drops
}

func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

func testTCPFrame(srcPort, dstPort uint16) []byte {
	payload := append(
		ipv4Header(models.ProtoTCP, [4]byte{192, 168, 1, 1}, [4]byte{192, 168, 1, 2}, 0),
		portBytes(srcPort, dstPort)...)

	return ethFrame(etherTypeIPv4, payload)
}

func TestReadPacketCountsAcceptedOnly(t *testing.T) {
	src := &fakeSource{frames: [][]byte{
		testTCPFrame(1000, 80),
		{0x01, 0x02}, // runt, silently discarded
		testTCPFrame(1001, 81),
	}}

	c, err := newCapturer(models.CaptureOptions{}, src, logger.NewTestLogger())
	require.NoError(t, err)

	pkt, err := c.ReadPacket()
	require.NoError(t, err)
	require.NotNil(t, pkt)

	pkt, err = c.ReadPacket()
	require.NoError(t, err)
	assert.Nil(t, pkt, "runt frame yields no packet and no error")

	pkt, err = c.ReadPacket()
	require.NoError(t, err)
	require.NotNil(t, pkt)

	stats := c.Stats()
	assert.Equal(t, uint64(2), stats.Packets)
	assert.Equal(t, uint64(2*len(testTCPFrame(0, 0))), stats.Bytes)
}

func TestReadPacketFilteredFramesNotCounted(t *testing.T) {
	src := &fakeSource{frames: [][]byte{
		testTCPFrame(1000, 80),
		testTCPFrame(1000, 8080),
	}}

	c, err := newCapturer(models.CaptureOptions{Port: 80}, src, logger.NewTestLogger())
	require.NoError(t, err)

	pkt, err := c.ReadPacket()
	require.NoError(t, err)
	require.NotNil(t, pkt)

	pkt, err = c.ReadPacket()
	require.NoError(t, err)
	assert.Nil(t, pkt, "rejected frame yields no packet")

	assert.Equal(t, uint64(1), c.Stats().Packets)
}

func TestReadPacketTimeoutIsNotAnError(t *testing.T) {
	c, err := newCapturer(models.CaptureOptions{}, &fakeSource{}, logger.NewTestLogger())
	require.NoError(t, err)

	pkt, err := c.ReadPacket()
	require.NoError(t, err)
	assert.Nil(t, pkt)
	assert.Zero(t, c.Stats().Packets)
}

func TestRunStopsAtCount(t *testing.T) {
	frames := make([][]byte, 8)
	for i := range frames {
		frames[i] = testTCPFrame(uint16(2000+i), 80)
	}

	c, err := newCapturer(models.CaptureOptions{Count: 5}, &fakeSource{frames: frames}, logger.NewTestLogger())
	require.NoError(t, err)

	var out bytes.Buffer

	require.NoError(t, c.Run(context.Background(), &out))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Len(t, lines, 5)
	assert.Equal(t, uint64(5), c.Stats().Packets)
}

func TestRunStopsAtDeadline(t *testing.T) {
	c, err := newCapturer(models.CaptureOptions{Duration: 50 * time.Millisecond}, &fakeSource{}, logger.NewTestLogger())
	require.NoError(t, err)

	start := time.Now()

	var out bytes.Buffer

	require.NoError(t, c.Run(context.Background(), &out))
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	assert.Empty(t, out.String())
}

func TestRunUnboundedStopsOnCancel(t *testing.T) {
	c, err := newCapturer(models.CaptureOptions{}, &fakeSource{}, logger.NewTestLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err = c.Run(ctx, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunPropagatesFatalReceiveError(t *testing.T) {
	fatal := errors.New("socket gone")

	c, err := newCapturer(models.CaptureOptions{}, &fakeSource{err: fatal}, logger.NewTestLogger())
	require.NoError(t, err)

	err = c.Run(context.Background(), &bytes.Buffer{})
	assert.ErrorIs(t, err, fatal)
}

func TestStatsSnapshotIncludesDrops(t *testing.T) {
	src := &fakeSource{frames: [][]byte{testTCPFrame(1, 2)}, drops: 7}

	c, err := newCapturer(models.CaptureOptions{}, src, logger.NewTestLogger())
	require.NoError(t, err)

	_, err = c.ReadPacket()
	require.NoError(t, err)

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Packets)
	assert.Equal(t, uint64(7), stats.Dropped)
	assert.False(t, stats.Start.IsZero())
}

func TestCloseReleasesSource(t *testing.T) {
	src := &fakeSource{}

	c, err := newCapturer(models.CaptureOptions{}, src, logger.NewTestLogger())
	require.NoError(t, err)

	require.NoError(t, c.Close())
	assert.True(t, src.closed)
}

func TestSessionIDAssigned(t *testing.T) {
	c, err := newCapturer(models.CaptureOptions{}, &fakeSource{}, logger.NewTestLogger())
	require.NoError(t, err)

	assert.NotEmpty(t, c.SessionID())
}
