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

import "errors"

var (
	// ErrInterfaceNotFound means the configured interface name did not
	// resolve to a link index.
	ErrInterfaceNotFound = errors.New("interface not found")

	// ErrBadHostFilter means the host filter was not a literal
	// dotted-quad IPv4 address.
	ErrBadHostFilter = errors.New("host filter is not a valid IPv4 address")

	// errReceiveTimeout is the internal liveness tick: the bounded
	// receive elapsed without a frame. Not a failure, not counted.
	errReceiveTimeout = errors.New("receive timed out")
)
