package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"radiodns/core-go/internal/broadcast"
	"radiodns/core-go/internal/lookup"
	"radiodns/core-go/internal/metrics"
)

type Handler struct {
	log      zerolog.Logger
	resolver lookup.Resolver
	metrics  *metrics.Metrics
	opts     lookup.Options
}

func NewHandler(log zerolog.Logger, resolver lookup.Resolver, m *metrics.Metrics, opts lookup.Options) *Handler {
	return &Handler{log: log, resolver: resolver, metrics: m, opts: opts}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))
	r.Use(h.accessLog)

	// Health
	r.Get("/healthz", h.handleHealthz)
	r.Get("/readyz", h.handleReadyZ)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	// API
	r.Route("/api", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Route("/services/{band}", func(r chi.Router) {
				r.Get("/fqdn", h.handleCanonicalName)
				r.Get("/authority", h.handleAuthority)
				r.Get("/applications", h.handleApplications)
				r.Get("/applications/{app}", h.handleApplication)
			})
		})
	})

	return r
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		h.metrics.ObserveHTTPRequest(r.Method, route, ww.Status(), time.Since(start))

		h.log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("http_request")
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, msg string, details map[string]any) {
	resp := map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": msg,
		},
	}
	if details != nil {
		resp["error"].(map[string]any)["details"] = details
	}
	h.writeJSON(w, status, resp)
}

// writeResolveError maps validation and lookup failures onto the error envelope.
func (h *Handler) writeResolveError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *broadcast.ValidationError
	var lerr *lookup.LookupError
	switch {
	case errors.As(err, &verr):
		details := map[string]any{"band": string(verr.Band), "field": verr.Field}
		if !verr.Missing {
			details["value"] = verr.Value
			details["expected"] = verr.Expected
		}
		h.writeError(w, http.StatusBadRequest, "validation_failed", verr.Error(), details)
	case errors.As(err, &lerr):
		h.log.Warn().Err(err).Str("path", r.URL.Path).Msg("dns lookup failed")
		h.writeError(w, http.StatusBadGateway, "lookup_failed", "dns lookup failed", map[string]any{
			"op":    lerr.Op,
			"name":  lerr.Name,
			"error": lerr.Err.Error(),
		})
	default:
		h.log.Error().Err(err).Str("path", r.URL.Path).Msg("lookup request failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "lookup request failed", nil)
	}
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) handleReadyZ(w http.ResponseWriter, r *http.Request) {
	if h.resolver == nil {
		h.writeError(w, http.StatusServiceUnavailable, "resolver_unavailable", "dns resolver not configured", nil)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"ready": true})
}

func (h *Handler) ensureResolver(w http.ResponseWriter) bool {
	if h.resolver == nil {
		h.writeError(w, http.StatusServiceUnavailable, "resolver_unavailable", "dns resolver not configured", nil)
		return false
	}
	return true
}

// identity parses the {band} URL parameter and the band's query parameters.
func (h *Handler) identity(w http.ResponseWriter, r *http.Request) (broadcast.Identity, bool) {
	raw := chi.URLParam(r, "band")
	band, ok := broadcast.ParseBand(raw)
	if !ok {
		h.writeError(w, http.StatusNotFound, "unknown_band", "unknown band", map[string]any{"band": raw})
		return nil, false
	}
	id, err := identityFromQuery(band, r.URL.Query())
	if err != nil {
		h.writeResolveError(w, r, err)
		return nil, false
	}
	return id, true
}

type canonicalNameResponse struct {
	Band string `json:"band"`
	FQDN string `json:"fqdn"`
}

type authorityResponse struct {
	Band                string  `json:"band"`
	FQDN                *string `json:"fqdn,omitempty"`
	AuthoritativeDomain string  `json:"authoritative_domain"`
}

type applicationResponse struct {
	Application string            `json:"application"`
	Found       bool              `json:"found"`
	Endpoints   []lookup.Endpoint `json:"endpoints,omitempty"`
	Error       *string           `json:"error,omitempty"`
}

type applicationsResponse struct {
	Band         string                `json:"band"`
	Applications []applicationResponse `json:"applications"`
}

func (h *Handler) handleCanonicalName(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	name, ok := broadcast.CanonicalName(id)
	if !ok {
		h.writeError(w, http.StatusNotFound, "not_found", "service has no canonical name", map[string]any{"band": string(id.Band())})
		return
	}
	h.writeJSON(w, http.StatusOK, canonicalNameResponse{Band: string(id.Band()), FQDN: name})
}

func (h *Handler) handleAuthority(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok || !h.ensureResolver(w) {
		return
	}

	domain, found, err := lookup.ResolveAuthoritativeDomain(r.Context(), id, h.resolver)
	if err != nil {
		h.writeResolveError(w, r, err)
		return
	}

	var fqdn *string
	if name, ok := broadcast.CanonicalName(id); ok {
		fqdn = &name
	}
	if !found {
		details := map[string]any{"band": string(id.Band())}
		if fqdn != nil {
			details["fqdn"] = *fqdn
		}
		h.writeError(w, http.StatusNotFound, "not_found", "no authoritative domain published", details)
		return
	}

	h.writeJSON(w, http.StatusOK, authorityResponse{
		Band:                string(id.Band()),
		FQDN:                fqdn,
		AuthoritativeDomain: domain,
	})
}

func (h *Handler) handleApplications(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok || !h.ensureResolver(w) {
		return
	}

	results, err := lookup.ResolveAll(r.Context(), id, h.resolver, h.opts)
	if err != nil {
		h.writeResolveError(w, r, err)
		return
	}

	resp := applicationsResponse{Band: string(id.Band())}
	for _, app := range lookup.KnownApplications() {
		res := results[app]
		item := applicationResponse{Application: string(app), Found: res.Found}
		if res.Found {
			item.Endpoints = res.Application.Endpoints()
		}
		if res.Err != nil {
			msg := res.Err.Error()
			item.Error = &msg
		}
		resp.Applications = append(resp.Applications, item)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleApplication(w http.ResponseWriter, r *http.Request) {
	app, err := lookup.ParseApplicationID(chi.URLParam(r, "app"))
	if err != nil {
		h.writeError(w, http.StatusNotFound, "unknown_application", err.Error(), nil)
		return
	}
	transport := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("transport")))
	if transport == "" {
		transport = lookup.DefaultTransport
	}
	if transport != "tcp" && transport != "udp" {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "transport must be tcp or udp", map[string]any{"transport": transport})
		return
	}

	id, ok := h.identity(w, r)
	if !ok || !h.ensureResolver(w) {
		return
	}

	a, found, err := lookup.ResolveApplicationTransport(r.Context(), id, app, transport, h.resolver)
	if err != nil {
		h.writeResolveError(w, r, err)
		return
	}
	if !found {
		h.writeError(w, http.StatusNotFound, "not_found", "application not published", map[string]any{"application": string(app)})
		return
	}

	h.writeJSON(w, http.StatusOK, applicationResponse{
		Application: string(a.ID()),
		Found:       true,
		Endpoints:   a.Endpoints(),
	})
}
