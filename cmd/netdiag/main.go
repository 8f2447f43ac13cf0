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

// netdiag is the command-line front end of the diagnostics toolkit:
// TCP port probing and raw packet capture.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/miroute/netdiag/pkg/capture"
	"github.com/miroute/netdiag/pkg/config"
	"github.com/miroute/netdiag/pkg/ifstate"
	"github.com/miroute/netdiag/pkg/logger"
	"github.com/miroute/netdiag/pkg/models"
	"github.com/miroute/netdiag/pkg/scan"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		usage()
		return errors.New("missing subcommand")
	}

	switch os.Args[1] {
	case "scan":
		return runScan(os.Args[2:])
	case "capture":
		return runCapture(os.Args[2:])
	case "iface":
		return runIface(os.Args[2:])
	default:
		usage()
		return fmt.Errorf("unknown subcommand %q", os.Args[1])
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  netdiag scan -target <ipv4> [-ports 22,80,https|quick|full] [-timeout 2s]
  netdiag capture [-i <iface>] [-c <count>] [-d <duration>] [-promisc] [filter expr]
  netdiag iface <name>
`)
}

type cliConfig struct {
	Logging *logger.Config `json:"logging,omitempty"`
	Scan    scanConfig     `json:"scan"`
	Capture captureConfig  `json:"capture"`
}

type scanConfig struct {
	Timeout  config.Duration `json:"timeout,omitempty"`
	Services string          `json:"services,omitempty"`
}

type captureConfig struct {
	Interface   string          `json:"interface,omitempty"`
	Count       int             `json:"count,omitempty"`
	Duration    config.Duration `json:"duration,omitempty"`
	SnapLen     int             `json:"snaplen,omitempty"`
	Promiscuous bool            `json:"promiscuous,omitempty"`
	Filter      string          `json:"filter,omitempty"`
}

func loadConfig(path string) (*cliConfig, error) {
	cfg := &cliConfig{}

	if path == "" {
		return cfg, nil
	}

	loader := &config.FileConfigLoader{}
	if err := loader.Load(context.Background(), path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

func runScan(args []string) error {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to JSON config file")
	target := fs.String("target", "", "Literal IPv4 address to probe")
	ports := fs.String("ports", "quick", `Comma-separated ports or service names, or "quick"/"full"`)
	timeout := fs.Duration("timeout", 0, "Per-probe timeout (0 = default)")
	services := fs.String("services", "", "Services directory path")
	_ = fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	appLogger, err := logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if *target == "" {
		return errors.New("scan: -target is required")
	}

	probeTimeout := *timeout
	if probeTimeout == 0 {
		probeTimeout = cfg.Scan.Timeout.Duration()
	}

	servicesPath := *services
	if servicesPath == "" {
		servicesPath = cfg.Scan.Services
	}

	resolver := scan.NewServiceResolver(servicesPath)

	portList, err := parsePorts(*ports, resolver)
	if err != nil {
		return err
	}

	prober := scan.NewProber(probeTimeout, appLogger)

	for _, result := range prober.ProbePorts(*target, portList) {
		fmt.Println(scan.FormatResult(result))
	}

	return nil
}

func parsePorts(list string, resolver *scan.ServiceResolver) ([]uint16, error) {
	switch list {
	case "quick":
		return scan.QuickScanPorts, nil
	case "full":
		return scan.FullScanPorts, nil
	}

	var ports []uint16

	for _, tok := range strings.Split(list, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		port, err := resolver.ResolvePort(tok, "tcp")
		if err != nil {
			return nil, err
		}

		ports = append(ports, port)
	}

	if len(ports) == 0 {
		return nil, errors.New("no ports to probe")
	}

	return ports, nil
}

func runCapture(args []string) error {
	fs := flag.NewFlagSet("capture", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to JSON config file")
	iface := fs.String("i", "", "Interface to capture from (empty = all)")
	count := fs.Int("c", 0, "Stop after this many packets (0 = unlimited)")
	duration := fs.Duration("d", 0, "Stop after this much time (0 = unlimited)")
	snapLen := fs.Int("s", 0, "Snapshot length per frame (0 = 65535)")
	promisc := fs.Bool("promisc", false, "Request promiscuous mode (best effort)")
	_ = fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	appLogger, err := logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	opts := models.CaptureOptions{
		Interface:   cfg.Capture.Interface,
		Count:       cfg.Capture.Count,
		Duration:    cfg.Capture.Duration.Duration(),
		SnapLen:     cfg.Capture.SnapLen,
		Promiscuous: cfg.Capture.Promiscuous,
	}

	if *iface != "" {
		opts.Interface = *iface
	}

	if *count != 0 {
		opts.Count = *count
	}

	if *duration != 0 {
		opts.Duration = *duration
	}

	if *snapLen != 0 {
		opts.SnapLen = *snapLen
	}

	if *promisc {
		opts.Promiscuous = true
	}

	expr := strings.Join(fs.Args(), " ")
	if expr == "" {
		expr = cfg.Capture.Filter
	}

	filter := capture.ParseFilter(expr)
	opts.Proto = filter.Proto
	opts.Port = filter.Port
	opts.Host = filter.Host

	session, err := capture.New(opts, appLogger)
	if err != nil {
		return err
	}
	defer session.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = session.Run(ctx, os.Stdout)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	stats := session.Stats()
	appLogger.Info().
		Uint64("packets", stats.Packets).
		Uint64("bytes", stats.Bytes).
		Uint64("dropped", stats.Dropped).
		Msg("capture finished")

	return err
}

func runIface(args []string) error {
	fs := flag.NewFlagSet("iface", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("iface: exactly one interface name required")
	}

	state, err := ifstate.Get(fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Printf("%s: up=%v carrier=%v\n", state.Name(), state.IsUp(), state.HasCarrier())

	return nil
}
