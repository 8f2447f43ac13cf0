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

package scan

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const defaultServicesPath = "/etc/services"

// ServiceResolver maps service names to ports through a services(5)
// style directory file. The file is small and re-read per call; no
// index is built.
type ServiceResolver struct {
	path string
}

// NewServiceResolver reads from path, or /etc/services when empty.
func NewServiceResolver(path string) *ServiceResolver {
	if path == "" {
		path = defaultServicesPath
	}

	return &ServiceResolver{path: path}
}

// ResolvePort turns text into a port number. A decimal uint16 is
// returned directly with no directory lookup; anything else is looked
// up as a service name restricted to proto.
func (r *ServiceResolver) ResolvePort(text, proto string) (uint16, error) {
	if isDecimal(text) {
		v, err := strconv.ParseUint(text, 10, 16)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrInvalidPort, text)
		}

		return uint16(v), nil
	}

	return r.LookupPort(text, proto)
}

// LookupPort scans the directory for the first entry whose primary name
// or alias equals name (exact, case sensitive), optionally constrained
// to proto. A missing directory file is "not found", not an error.
func (r *ServiceResolver) LookupPort(name, proto string) (uint16, error) {
	var port uint16

	found := r.scan(func(e serviceEntry) bool {
		if proto != "" && e.proto != proto {
			return false
		}

		if e.name == name {
			port = e.port
			return true
		}

		for _, alias := range e.aliases {
			if alias == name {
				port = e.port
				return true
			}
		}

		return false
	})

	if !found {
		return 0, fmt.Errorf("%w: %s/%s", ErrUnknownService, name, proto)
	}

	return port, nil
}

// LookupName is the reverse mapping: the primary name of the first
// entry carrying port/proto.
func (r *ServiceResolver) LookupName(port uint16, proto string) (string, error) {
	var name string

	found := r.scan(func(e serviceEntry) bool {
		if proto != "" && e.proto != proto {
			return false
		}

		if e.port == port {
			name = e.name
			return true
		}

		return false
	})

	if !found {
		return "", fmt.Errorf("%w: %d/%s", ErrUnknownService, port, proto)
	}

	return name, nil
}

type serviceEntry struct {
	name    string
	port    uint16
	proto   string
	aliases []string
}

// scan streams entries to match until it returns true. Returns whether
// a match was found.
func (r *ServiceResolver) scan(match func(serviceEntry) bool) bool {
	f, err := os.Open(r.path)
	if err != nil {
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		entry, ok := parseServiceLine(scanner.Text())
		if !ok {
			continue
		}

		if match(entry) {
			return true
		}
	}

	return false
}

// parseServiceLine tokenizes one "name port/proto [alias...]" line.
// Blank and comment lines yield no entry; a token starting with '#'
// ends the alias list.
func parseServiceLine(line string) (serviceEntry, bool) {
	var entry serviceEntry

	fields := strings.Fields(line)
	if len(fields) < 2 || strings.HasPrefix(fields[0], "#") {
		return entry, false
	}

	portProto := strings.SplitN(fields[1], "/", 2)
	if len(portProto) != 2 {
		return entry, false
	}

	port, err := strconv.ParseUint(portProto[0], 10, 16)
	if err != nil {
		return entry, false
	}

	entry.name = fields[0]
	entry.port = uint16(port)
	entry.proto = portProto[1]

	for _, tok := range fields[2:] {
		if strings.HasPrefix(tok, "#") {
			break
		}

		entry.aliases = append(entry.aliases, tok)
	}

	return entry, true
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
