// Package dnsclient answers the CNAME and SRV questions of RadioDNS discovery
// by querying a recursive name server with github.com/miekg/dns.
package dnsclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/rs/zerolog"

	"radiodns/core-go/internal/lookup"
	"radiodns/core-go/internal/metrics"
	"radiodns/core-go/internal/naming"
)

const (
	defaultResolvConf = "/etc/resolv.conf"
	fallbackServer    = "127.0.0.1:53"
	ednsUDPSize       = 1232
)

// Config selects the name server and transport used for queries.
type Config struct {
	Server     string // "host" or "host:port"; empty uses the first resolv.conf nameserver
	Net        string // "udp" (default) | "tcp"
	Timeout    time.Duration
	Retries    int // extra attempts after a timeout
	ResolvConf string
}

// Client is a lookup.Resolver backed by a single recursive name server.
type Client struct {
	cfg     Config
	server  string
	log     zerolog.Logger
	metrics *metrics.Metrics
}

var _ lookup.Resolver = (*Client)(nil)

// NewClient fills in defaults for cfg. It never fails: an unreadable
// resolv.conf falls back to a local resolver.
func NewClient(log zerolog.Logger, cfg Config, m *metrics.Metrics) *Client {
	cfg.Net = strings.ToLower(strings.TrimSpace(cfg.Net))
	if cfg.Net == "" {
		cfg.Net = "udp"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if strings.TrimSpace(cfg.ResolvConf) == "" {
		cfg.ResolvConf = defaultResolvConf
	}

	server := strings.TrimSpace(cfg.Server)
	if server == "" {
		server = systemServer(cfg.ResolvConf)
	}

	return &Client{
		cfg:     cfg,
		server:  withDefaultPort(server),
		log:     log,
		metrics: m,
	}
}

// Server returns the host:port queries are sent to.
func (c *Client) Server() string { return c.server }

func systemServer(path string) string {
	conf, err := dns.ClientConfigFromFile(path)
	if err != nil || len(conf.Servers) == 0 {
		return fallbackServer
	}
	port := conf.Port
	if port == "" {
		port = "53"
	}
	return net.JoinHostPort(conf.Servers[0], port)
}

func withDefaultPort(server string) string {
	if _, _, err := net.SplitHostPort(server); err == nil {
		return server
	}
	return net.JoinHostPort(strings.Trim(server, "[]"), "53")
}

// ResolveCNAME returns the targets of the CNAME records owned by name.
func (c *Client) ResolveCNAME(ctx context.Context, name string) ([]string, error) {
	resp, err := c.query(ctx, name, dns.TypeCNAME)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, rr := range resp.Answer {
		cname, ok := rr.(*dns.CNAME)
		if !ok {
			continue
		}
		if target, ok := naming.NormalizeHost(cname.Target); ok {
			out = append(out, target)
		}
	}
	return out, nil
}

// ResolveSRV returns the SRV records owned by name in answer order. Records
// whose target is the root are dropped: they mark the service as unavailable.
func (c *Client) ResolveSRV(ctx context.Context, name string) ([]lookup.SRV, error) {
	resp, err := c.query(ctx, name, dns.TypeSRV)
	if err != nil {
		return nil, err
	}

	var out []lookup.SRV
	for _, rr := range resp.Answer {
		srv, ok := rr.(*dns.SRV)
		if !ok {
			continue
		}
		target, ok := naming.NormalizeHost(srv.Target)
		if !ok {
			continue
		}
		out = append(out, lookup.SRV{
			Target:   target,
			Port:     srv.Port,
			Priority: srv.Priority,
			Weight:   srv.Weight,
		})
	}
	return out, nil
}

// query returns a NOERROR response, or an empty one for NXDOMAIN.
func (c *Client) query(ctx context.Context, name string, qtype uint16) (*dns.Msg, error) {
	typeName := dns.TypeToString[qtype]
	start := time.Now()

	resp, err := c.queryOnce(ctx, name, qtype)
	outcome := metrics.OutcomeAnswer
	switch {
	case err != nil:
		outcome = metrics.OutcomeError
	case len(resp.Answer) == 0:
		outcome = metrics.OutcomeNoRecord
	}
	c.metrics.ObserveDNSQuery(typeName, outcome, time.Since(start))

	ev := c.log.Debug()
	if err != nil {
		ev = c.log.Warn().Err(err)
	}
	ev.Str("name", name).
		Str("type", typeName).
		Str("server", c.server).
		Str("outcome", outcome).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("dns_query")

	return resp, err
}

func (c *Client) queryOnce(ctx context.Context, name string, qtype uint16) (*dns.Msg, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(name), ".")
	fqdn := dns.Fqdn(trimmed)
	if _, ok := dns.IsDomainName(fqdn); !ok || !naming.LooksHostname(trimmed) {
		return nil, fmt.Errorf("invalid query name %q", name)
	}

	m := new(dns.Msg)
	m.SetQuestion(fqdn, qtype)
	m.RecursionDesired = true
	m.SetEdns0(ednsUDPSize, false)

	var resp *dns.Msg
	var err error
	for attempt := 0; attempt <= c.cfg.Retries; attempt++ {
		resp, err = c.exchange(ctx, m)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !isTimeout(err) {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}

	switch resp.Rcode {
	case dns.RcodeSuccess:
		return resp, nil
	case dns.RcodeNameError:
		return new(dns.Msg), nil
	default:
		return nil, fmt.Errorf("%s from %s", dns.RcodeToString[resp.Rcode], c.server)
	}
}

func (c *Client) exchange(ctx context.Context, m *dns.Msg) (*dns.Msg, error) {
	client := &dns.Client{Net: c.cfg.Net, Timeout: c.cfg.Timeout}
	resp, _, err := client.ExchangeContext(ctx, m, c.server)
	if err != nil {
		return nil, err
	}
	if resp.Truncated && c.cfg.Net == "udp" {
		tcp := &dns.Client{Net: "tcp", Timeout: c.cfg.Timeout}
		resp, _, err = tcp.ExchangeContext(ctx, m, c.server)
		if err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func isTimeout(err error) bool {
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
