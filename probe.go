package main

import (
	"empathy/helpers"
	"empathy/irc/networks"
	"empathy/irc/servers"
	"flag"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

type probeResult struct {
	network *networks.Network
	server  *servers.Server
	latency time.Duration
	err     error
}

// probeNetworks checks that every server accepts TCP connections. Nothing is
// sent over the connection.
func (a *app) probeNetworks(m *networks.Manager, args []string) error {
	fs := flag.NewFlagSet("networks probe", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	timeout := fs.Duration("timeout", 5*time.Second, "Dial timeout per server")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	var results []*probeResult
	for _, n := range m.Networks() {
		for _, s := range n.Servers() {
			results = append(results, &probeResult{network: n, server: s})
		}
	}
	if len(results) == 0 {
		fmt.Fprintln(a.out, "No servers")
		return nil
	}

	bar := progressbar.Default(int64(len(results)), "probing servers")

	var wg sync.WaitGroup
	for _, r := range results {
		wg.Add(1)
		go func(r *probeResult) {
			defer wg.Done()
			r.latency, r.err = probe(r.server, *timeout)
			_ = bar.Add(1)
		}(r)
	}
	wg.Wait()
	_ = bar.Finish()

	for _, r := range results {
		status := "ok in " + helpers.DurationToHumanReadable(r.latency)
		if r.err != nil {
			status = "failed: " + r.err.Error()
		}
		fmt.Fprintf(a.out, "%-20s %-30s %s\n", r.network.Name(), r.server.HostPort(), status)
	}
	return nil
}

func probe(s *servers.Server, timeout time.Duration) (time.Duration, error) {
	start := time.Now()
	conn, err := net.DialTimeout("tcp", s.HostPort(), timeout)
	if err != nil {
		return 0, err
	}
	conn.Close()
	return time.Since(start), nil
}
