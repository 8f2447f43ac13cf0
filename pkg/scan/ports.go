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

// Well-known ports for batch callers.
const (
	PortFTP     uint16 = 21
	PortSSH     uint16 = 22
	PortTelnet  uint16 = 23
	PortSMTP    uint16 = 25
	PortDNS     uint16 = 53
	PortHTTP    uint16 = 80
	PortPOP3    uint16 = 110
	PortNTP     uint16 = 123
	PortIMAP    uint16 = 143
	PortSNMP    uint16 = 161
	PortLDAP    uint16 = 389
	PortHTTPS   uint16 = 443
	PortSMB     uint16 = 445
	PortSyslog  uint16 = 514
	PortMySQL   uint16 = 3306
	PortRDP     uint16 = 3389
	PortPgSQL   uint16 = 5432
	PortRedis   uint16 = 6379
	PortHTTPAlt uint16 = 8080
)

// QuickScanPorts is the short list for a fast reachability pass.
var QuickScanPorts = []uint16{
	PortFTP, PortSSH, PortTelnet, PortSMTP, PortDNS,
	PortHTTP, PortPOP3, PortIMAP, PortHTTPS, PortSMB,
	PortRDP, PortHTTPAlt,
}

// FullScanPorts covers the common service ports worth probing in a
// full diagnostic sweep.
var FullScanPorts = []uint16{
	20, 21, 22, 23, 25, 37, 43, 53, 67, 68,
	69, 79, 80, 88, 110, 111, 113, 119, 123, 135,
	137, 138, 139, 143, 161, 162, 179, 194, 389, 427,
	443, 445, 464, 465, 500, 514, 515, 520, 521, 543,
	544, 548, 554, 587, 631, 636, 646, 873, 902, 989,
	990, 993, 995, 1080, 1194, 1433, 1521, 1723, 1883, 2049,
	2181, 2375, 2376, 3128, 3260, 3306, 3389, 4369, 5060, 5222,
	5353, 5432, 5671, 5672, 5900, 5984, 6379, 6443, 7001, 8000,
	8080, 8081, 8088, 8443, 8883, 9000, 9090, 9092, 9200, 9300,
	10000, 11211, 27017, 27018, 50000,
}
