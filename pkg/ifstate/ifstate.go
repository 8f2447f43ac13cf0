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

// Package ifstate answers the InterfaceState contract for named local
// interfaces: administrative up/down and physical carrier presence.
package ifstate

import (
	"errors"
	"fmt"
	"os"
	"strings"

	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/miroute/netdiag/pkg/models"
)

// ErrInterfaceNotFound means no local interface carries the name.
var ErrInterfaceNotFound = errors.New("interface not found")

// State is a point-in-time reading of one interface.
type State struct {
	name    string
	up      bool
	carrier bool
}

var _ models.InterfaceState = (*State)(nil)

func (s *State) Name() string {
	return s.name
}

func (s *State) IsUp() bool {
	return s.up
}

func (s *State) HasCarrier() bool {
	return s.carrier
}

// Get reads the current state of the named interface.
func Get(name string) (*State, error) {
	ifaces, err := psnet.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}

	for _, ifi := range ifaces {
		if ifi.Name != name {
			continue
		}

		up := false

		for _, flag := range ifi.Flags {
			if flag == "up" {
				up = true
				break
			}
		}

		return &State{
			name:    name,
			up:      up,
			carrier: readCarrier(name),
		}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrInterfaceNotFound, name)
}

// readCarrier consults sysfs; anything unreadable counts as no
// carrier. Reading carrier on an administratively down interface fails,
// which is the answer we want anyway.
func readCarrier(name string) bool {
	b, err := os.ReadFile("/sys/class/net/" + name + "/carrier")
	if err != nil {
		return false
	}

	return strings.TrimSpace(string(b)) == "1"
}
