// Package lookup implements RadioDNS service discovery: a broadcast identity
// is resolved to its authoritative domain through a CNAME record, and the
// applications published under that domain through SRV records.
//
// Nothing is cached. Every call performs fresh lookups through the Resolver
// it is given.
package lookup

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"radiodns/core-go/internal/broadcast"
)

const DefaultTransport = "tcp"

// Options tunes ResolveAll.
type Options struct {
	// MaxConcurrency bounds the number of application lookups in flight.
	// Zero or less runs one lookup per known application at once.
	MaxConcurrency int
}

// ResolveAuthoritativeDomain returns the domain under which the service's
// applications are published. ok is false when the canonical name has no
// CNAME record or id is nil.
func ResolveAuthoritativeDomain(ctx context.Context, id broadcast.Identity, r Resolver) (domain string, ok bool, err error) {
	if ip, isIP := id.(*broadcast.IP); isIP {
		if ip == nil {
			return "", false, nil
		}
		return ip.AuthoritativeDomain(), true, nil
	}

	name, hasName := broadcast.CanonicalName(id)
	if !hasName {
		return "", false, nil
	}

	targets, err := r.ResolveCNAME(ctx, name)
	if err != nil {
		return "", false, wrapLookupError(OpCNAME, name, err)
	}
	if len(targets) == 0 {
		return "", false, nil
	}
	return targets[0], true, nil
}

// ResolveApplication resolves app over the default transport.
func ResolveApplication(ctx context.Context, id broadcast.Identity, app ApplicationID, r Resolver) (Application, bool, error) {
	return ResolveApplicationTransport(ctx, id, app, DefaultTransport, r)
}

// ResolveApplicationTransport resolves the authoritative domain of id and then
// the SRV records of app under it. It panics if app is empty.
func ResolveApplicationTransport(ctx context.Context, id broadcast.Identity, app ApplicationID, transport string, r Resolver) (Application, bool, error) {
	if app == "" {
		panic("lookup: empty application id")
	}

	domain, ok, err := ResolveAuthoritativeDomain(ctx, id, r)
	if err != nil {
		return Application{}, false, err
	}
	if !ok {
		return Application{}, false, nil
	}
	return LookupApplication(ctx, r, domain, app, transport)
}

// LookupApplication queries the SRV records of app under an authoritative
// domain that the caller has already resolved.
func LookupApplication(ctx context.Context, r Resolver, authoritativeDomain string, app ApplicationID, transport string) (Application, bool, error) {
	if app == "" {
		panic("lookup: empty application id")
	}
	if authoritativeDomain == "" {
		return Application{}, false, nil
	}

	name := ApplicationName(app, transport, authoritativeDomain)
	records, err := r.ResolveSRV(ctx, name)
	if err != nil {
		return Application{}, false, wrapLookupError(OpSRV, name, err)
	}
	if len(records) == 0 {
		return Application{}, false, nil
	}
	return newApplication(app, records), true, nil
}

// ApplicationName builds the service discovery name
// _<application>._<transport>.<domain>.
func ApplicationName(app ApplicationID, transport, authoritativeDomain string) string {
	transport = strings.ToLower(strings.TrimSpace(transport))
	if transport == "" {
		transport = DefaultTransport
	}
	return "_" + strings.ToLower(string(app)) + "._" + transport + "." + authoritativeDomain
}

// ResolveAllApplications resolves every known application for id.
func ResolveAllApplications(ctx context.Context, id broadcast.Identity, r Resolver) (map[ApplicationID]ApplicationResult, error) {
	return ResolveAll(ctx, id, r, Options{})
}

// ResolveAll resolves the authoritative domain once and then every known
// application under it. A failure to resolve the domain fails the batch.
// Application lookup failures never fail the batch; each is reported in the
// Err of its own result.
func ResolveAll(ctx context.Context, id broadcast.Identity, r Resolver, opts Options) (map[ApplicationID]ApplicationResult, error) {
	apps := KnownApplications()

	domain, ok, err := ResolveAuthoritativeDomain(ctx, id, r)
	if err != nil {
		return nil, err
	}

	out := make(map[ApplicationID]ApplicationResult, len(apps))
	if !ok {
		for _, app := range apps {
			out[app] = ApplicationResult{}
		}
		return out, nil
	}

	results := make([]ApplicationResult, len(apps))
	g := new(errgroup.Group)
	if opts.MaxConcurrency > 0 {
		g.SetLimit(opts.MaxConcurrency)
	}
	for i, app := range apps {
		g.Go(func() error {
			a, found, err := LookupApplication(ctx, r, domain, app, DefaultTransport)
			results[i] = ApplicationResult{Application: a, Found: found, Err: err}
			return nil
		})
	}
	// Workers always return nil; errors live in results[i].
	g.Wait()

	for i, app := range apps {
		out[app] = results[i]
	}
	return out, nil
}
