package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleServices = `# Network services, Internet style
#
http		80/tcp		www www-http	# WorldWideWeb HTTP
https		443/tcp
ssh		22/tcp				# SSH Remote Login Protocol
domain		53/udp
chargen		19/tcp		ttytst source
malformed-line
noproto		99
`

func writeServices(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "services")
	require.NoError(t, os.WriteFile(path, []byte(sampleServices), 0o644))

	return path
}

func TestLookupPort(t *testing.T) {
	r := NewServiceResolver(writeServices(t))

	port, err := r.LookupPort("http", "tcp")
	require.NoError(t, err)
	assert.Equal(t, uint16(80), port)

	// Alias matches count the same as the primary name.
	port, err = r.LookupPort("www", "tcp")
	require.NoError(t, err)
	assert.Equal(t, uint16(80), port)

	port, err = r.LookupPort("ttytst", "tcp")
	require.NoError(t, err)
	assert.Equal(t, uint16(19), port)
}

func TestLookupPortProtocolConstraint(t *testing.T) {
	r := NewServiceResolver(writeServices(t))

	_, err := r.LookupPort("domain", "tcp")
	assert.ErrorIs(t, err, ErrUnknownService)

	port, err := r.LookupPort("domain", "udp")
	require.NoError(t, err)
	assert.Equal(t, uint16(53), port)
}

func TestLookupPortCommentNotAnAlias(t *testing.T) {
	r := NewServiceResolver(writeServices(t))

	_, err := r.LookupPort("WorldWideWeb", "tcp")
	assert.ErrorIs(t, err, ErrUnknownService)
}

func TestLookupPortCaseSensitive(t *testing.T) {
	r := NewServiceResolver(writeServices(t))

	_, err := r.LookupPort("HTTP", "tcp")
	assert.ErrorIs(t, err, ErrUnknownService)
}

func TestLookupPortMissingFile(t *testing.T) {
	r := NewServiceResolver(filepath.Join(t.TempDir(), "no-such-file"))

	_, err := r.LookupPort("http", "tcp")
	assert.ErrorIs(t, err, ErrUnknownService)
}

func TestLookupName(t *testing.T) {
	r := NewServiceResolver(writeServices(t))

	name, err := r.LookupName(443, "tcp")
	require.NoError(t, err)
	assert.Equal(t, "https", name)

	_, err = r.LookupName(4444, "tcp")
	assert.ErrorIs(t, err, ErrUnknownService)
}

func TestResolvePortNumeric(t *testing.T) {
	// Numeric ports never consult the directory.
	r := NewServiceResolver(filepath.Join(t.TempDir(), "no-such-file"))

	port, err := r.ResolvePort("80", "tcp")
	require.NoError(t, err)
	assert.Equal(t, uint16(80), port)

	_, err = r.ResolvePort("65536", "tcp")
	assert.ErrorIs(t, err, ErrInvalidPort)
}

func TestResolvePortByName(t *testing.T) {
	r := NewServiceResolver(writeServices(t))

	port, err := r.ResolvePort("ssh", "tcp")
	require.NoError(t, err)
	assert.Equal(t, uint16(22), port)

	_, err = r.ResolvePort("not-a-service", "tcp")
	assert.ErrorIs(t, err, ErrUnknownService)
}
