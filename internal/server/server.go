// Package server exposes the core (pathfmt) over HTTP: JSON request/response
// handlers for normalize, check (IsNormalized), and subpath (IsSubPath),
// plus /healthz. It does not serve /metrics; the serve command exposes that
// on its own metrics listener.
//
// Grounded on internal/gateway/gateway.go and router.go (teacher): kept the
// ServeHTTP-with-per-request-decision/event-logging-and-metrics-and-
// ratelimit-wiring shape and the crypto/rand-with-atomic-counter-fallback
// request ID generator; replaced reverse-proxy body streaming (there is no
// upstream to forward to) with direct core function calls returning JSON.
package server

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/klyr/pathnorm/internal/config"
	"github.com/klyr/pathnorm/internal/logging"
	"github.com/klyr/pathnorm/internal/observability"
	"github.com/klyr/pathnorm/internal/pathfmt"
	"github.com/klyr/pathnorm/internal/ratelimit"
	"github.com/klyr/pathnorm/internal/resultcode"
)

// Server wires the core, the configured dialects, and the ambient
// logging/metrics/ratelimit shell together behind an http.Handler.
type Server struct {
	dialects  map[string]pathfmt.Flags
	rateLimit config.RateLimitConfig

	eventLog *logging.EventLogger
	metrics  *observability.Metrics
	limiter  *ratelimit.Limiter

	requestCount uint64
	mux          *http.ServeMux
}

// New builds a Server from cfg. eventLog and metrics may both be nil.
func New(cfg *config.Config, eventLog *logging.EventLogger, metrics *observability.Metrics) *Server {
	dialects := make(map[string]pathfmt.Flags, len(cfg.Dialects))
	for name, d := range cfg.Dialects {
		dialects[name] = d.Flags()
	}

	s := &Server{
		dialects:  dialects,
		rateLimit: cfg.Server.RateLimit,
		eventLog:  eventLog,
		metrics:   metrics,
		limiter:   ratelimit.NewLimiter(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/normalize", s.handleNormalize)
	mux.HandleFunc("/v1/check", s.handleCheck)
	mux.HandleFunc("/v1/subpath", s.handleSubPath)
	mux.HandleFunc("/healthz", s.handleHealthz)
	s.mux = mux

	return s
}

// Handler returns the server's request multiplexer. A caller wanting a
// /metrics endpoint should mount metrics.Handler(reg) alongside it, since
// the Prometheus registry is owned by the caller that constructed metrics.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type normalizeRequest struct {
	Path    string `json:"path"`
	Flags   string `json:"flags"`
	Dialect string `json:"dialect"`
}

type normalizeResponse struct {
	Result     string `json:"result,omitempty"`
	ResultCode uint32 `json:"result_code"`
	ResultName string `json:"result_name"`
	Error      string `json:"error,omitempty"`
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if !s.allow(w, r) {
		return
	}

	var req normalizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	flags, ok := s.resolveFlags(w, req.Dialect, req.Flags)
	if !ok {
		return
	}

	out, err := pathfmt.Normalize(req.Path, flags)

	resp := normalizeResponse{ResultName: resultcode.Name(err)}
	if err != nil {
		resp.ResultCode = uint32(errorCode(err))
		resp.Error = err.Error()
	} else {
		resp.Result = out
	}

	s.finish(start, "normalize", req.Dialect, req.Path, out, err)
	writeJSON(w, http.StatusOK, resp)
}

type checkRequest struct {
	Path    string `json:"path"`
	Flags   string `json:"flags"`
	Dialect string `json:"dialect"`
}

type checkResponse struct {
	IsNormalized bool   `json:"is_normalized"`
	ResultCode   uint32 `json:"result_code"`
	ResultName   string `json:"result_name"`
	Error        string `json:"error,omitempty"`
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if !s.allow(w, r) {
		return
	}

	var req checkRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	flags, ok := s.resolveFlags(w, req.Dialect, req.Flags)
	if !ok {
		return
	}

	isNorm, err := pathfmt.IsNormalized(req.Path, flags)

	resp := checkResponse{IsNormalized: isNorm, ResultName: resultcode.Name(err)}
	if err != nil {
		resp.ResultCode = uint32(errorCode(err))
		resp.Error = err.Error()
	}

	s.finish(start, "is_normalized", req.Dialect, req.Path, fmt.Sprintf("%v", isNorm), err)
	writeJSON(w, http.StatusOK, resp)
}

type subPathRequest struct {
	P1 string `json:"p1"`
	P2 string `json:"p2"`
}

type subPathResponse struct {
	IsSubPath bool `json:"is_subpath"`
}

func (s *Server) handleSubPath(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if !s.allow(w, r) {
		return
	}

	var req subPathRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result := pathfmt.IsSubPath(req.P1, req.P2)
	s.finish(start, "is_subpath", "", req.P1+" "+req.P2, fmt.Sprintf("%v", result), nil)
	writeJSON(w, http.StatusOK, subPathResponse{IsSubPath: result})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// resolveFlags resolves a request's flags, honoring both a named dialect
// and an ad-hoc letter-coded flags string (SPEC_FULL.md §6.4). Either may
// be given alone; when both are given, the ad-hoc flags are unioned onto
// the named dialect's flags rather than replacing them.
func (s *Server) resolveFlags(w http.ResponseWriter, dialectName, flagString string) (pathfmt.Flags, bool) {
	var flags pathfmt.Flags
	if dialectName != "" {
		dialectFlags, ok := s.dialects[dialectName]
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("unknown dialect %q", dialectName)})
			return pathfmt.Flags{}, false
		}
		flags = dialectFlags
	}
	return unionFlags(flags, pathfmt.ParseFlags(flagString)), true
}

func unionFlags(a, b pathfmt.Flags) pathfmt.Flags {
	return pathfmt.Flags{
		AllowWindowsPath:   a.AllowWindowsPath || b.AllowWindowsPath,
		AllowRelativePath:  a.AllowRelativePath || b.AllowRelativePath,
		AllowEmptyPath:     a.AllowEmptyPath || b.AllowEmptyPath,
		AllowMountName:     a.AllowMountName || b.AllowMountName,
		AllowBackslash:     a.AllowBackslash || b.AllowBackslash,
		AllowAllCharacters: a.AllowAllCharacters || b.AllowAllCharacters,
	}
}

func (s *Server) allow(w http.ResponseWriter, r *http.Request) bool {
	if !s.rateLimit.Enabled {
		return true
	}
	ip := clientIP(r)
	if s.limiter.Allow(ip, s.rateLimit.RPS, s.rateLimit.Burst, time.Now()) {
		return true
	}

	if s.metrics != nil {
		s.metrics.ObserveRateLimitHit(ip)
	}
	if s.eventLog != nil {
		_ = s.eventLog.Write(logging.Event{
			Timestamp:  time.Now().UTC(),
			RequestID:  s.newRequestID(),
			ClientIP:   ip,
			Operation:  operationForPath(r.URL.Path),
			ResultName: "RateLimited",
		})
	}

	status := s.rateLimit.StatusCode
	if status <= 0 {
		status = http.StatusTooManyRequests
	}
	http.Error(w, "rate limit exceeded", status)
	return false
}

func operationForPath(path string) string {
	switch path {
	case "/v1/normalize":
		return "normalize"
	case "/v1/check":
		return "is_normalized"
	case "/v1/subpath":
		return "is_subpath"
	default:
		return "unknown"
	}
}

func (s *Server) finish(start time.Time, operation, dialect, input, output string, err error) {
	event := logging.Event{
		Timestamp:  time.Now().UTC(),
		RequestID:  s.newRequestID(),
		Operation:  operation,
		Dialect:    dialect,
		Input:      input,
		Output:     output,
		ResultName: resultcode.Name(err),
		DurationUS: time.Since(start).Microseconds(),
	}
	if err != nil {
		event.ResultCode = uint32(errorCode(err))
	}

	if s.eventLog != nil {
		_ = s.eventLog.Write(event)
	}
	if s.metrics != nil {
		s.metrics.Observe(event, time.Since(start).Seconds())
	}
}

func (s *Server) newRequestID() string {
	var buf [12]byte
	if _, err := rand.Read(buf[:]); err == nil {
		return hex.EncodeToString(buf[:])
	}
	value := atomic.AddUint64(&s.requestCount, 1)
	return fmt.Sprintf("req-%d", value)
}

func errorCode(err error) resultcode.Code {
	var rerr *resultcode.Error
	if errors.As(err, &rerr) {
		return rerr.Code()
	}
	return 0
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
