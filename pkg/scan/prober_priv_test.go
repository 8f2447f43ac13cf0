//go:build linux && !ci

package scan

import (
	"testing"
	"time"

	"github.com/miroute/netdiag/pkg/logger"
	"github.com/miroute/netdiag/pkg/models"
)

// TestProbeUnansweredTarget sends a SYN into a private range that is
// typically unrouted. Depending on the environment the attempt either
// times out (filtered) or gets a route error; both are valid network
// facts here, but a timeout must have consumed the full window.
func TestProbeUnansweredTarget(t *testing.T) {
	timeout := 250 * time.Millisecond

	p := NewProber(timeout, logger.NewTestLogger())
	result := p.Probe("10.255.255.1", 81)

	switch result.Status {
	case models.ProbeFiltered:
		if result.Latency == nil {
			t.Fatal("filtered probe must record latency")
		}

		if *result.Latency < timeout-50*time.Millisecond {
			t.Errorf("filtered probe resolved after %v, want ~%v", *result.Latency, timeout)
		}
	case models.ProbeHostUnreachable, models.ProbeClosed:
		t.Logf("environment answered for 10.255.255.1: %s", result.Status)
	default:
		t.Errorf("unexpected status %q (detail %q)", result.Status, result.Detail)
	}
}
