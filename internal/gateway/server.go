package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lanikai/sampquery/internal/logging"
)

var log = logging.DefaultLogger.WithTag("gateway")

const (
	defaultCacheEntries = 1024
	defaultCacheTTL     = 5 * time.Second
	watchInterval       = 3 * time.Second
)

// Server is an HTTP gateway in front of SA-MP UDP queries.
type Server struct {
	dial  dialer
	cache *responseCache
	mux   *http.ServeMux
}

// NewServer returns a Server ready to be used as an http.Handler.
func NewServer() *Server {
	return newServer(defaultDialer)
}

func newServer(dial dialer) *Server {
	s := &Server{
		dial:  dial,
		cache: newResponseCache(defaultCacheEntries, defaultCacheTTL),
		mux:   http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/v1/servers/", s.handleServer)
}

// handleServer dispatches /api/v1/servers/{addr}/{action} requests. addr is
// expected to be a literal "host:port". It is resolved for IPv4 only, so an
// IPv6 peer is rejected by resolveAddr with KindAddrParse.
func (s *Server) handleServer(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/servers/")
	idx := strings.Index(rest, "/")
	if idx < 0 {
		writeError(w, http.StatusBadRequest, "missing action segment")
		return
	}
	addr, action := rest[:idx], rest[idx+1:]

	switch action {
	case "info":
		s.handleCached(w, r, addr, "info", func(ctx context.Context, c queryClient) (interface{}, error) {
			return c.QueryInfo(ctx)
		})
	case "rules":
		s.handleCached(w, r, addr, "rules", func(ctx context.Context, c queryClient) (interface{}, error) {
			return c.QueryRules(ctx)
		})
	case "players":
		s.handleUncached(w, r, addr, func(ctx context.Context, c queryClient) (interface{}, error) {
			return c.QueryClientList(ctx)
		})
	case "players/detailed":
		s.handleUncached(w, r, addr, func(ctx context.Context, c queryClient) (interface{}, error) {
			return c.QueryDetailedPlayerInfo(ctx)
		})
	case "ping":
		s.handleUncached(w, r, addr, func(ctx context.Context, c queryClient) (interface{}, error) {
			return c.QueryPing(ctx)
		})
	case "watch":
		s.handleWatch(w, r, addr)
	default:
		writeError(w, http.StatusNotFound, "unknown action: "+action)
	}
}

type queryFunc func(ctx context.Context, c queryClient) (interface{}, error)

const requestTimeout = 10 * time.Second

func (s *Server) withClient(ctx context.Context, addr string, fn queryFunc) (interface{}, error) {
	c, err := s.dial(addr)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	return fn(ctx, c)
}

func (s *Server) handleUncached(w http.ResponseWriter, r *http.Request, addr string, fn queryFunc) {
	result, err := s.withClient(r.Context(), addr, fn)
	if err != nil {
		log.Warn("query %s: %v", addr, err)
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCached(w http.ResponseWriter, r *http.Request, addr, action string, fn queryFunc) {
	key := addr + "/" + action
	if cached, ok := s.cache.get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	result, err := s.withClient(r.Context(), addr, fn)
	if err != nil {
		log.Warn("query %s: %v", addr, err)
		writeError(w, statusFor(err), err.Error())
		return
	}
	s.cache.put(key, result)
	writeJSON(w, http.StatusOK, result)
}

var upgrader = websocket.Upgrader{}

// handleWatch upgrades to a WebSocket and pushes a JSON snapshot of info
// and ping every watchInterval, until the client disconnects.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request, addr string) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade: %v", err)
		return
	}
	defer ws.Close()

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		c, err := s.dial(addr)
		if err != nil {
			ws.WriteJSON(map[string]string{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), watchInterval)
		info, infoErr := c.QueryInfo(ctx)
		ping, pingErr := c.QueryPing(ctx)
		cancel()
		c.Close()

		snapshot := map[string]interface{}{}
		if infoErr == nil {
			snapshot["info"] = info
		} else {
			snapshot["infoError"] = infoErr.Error()
		}
		if pingErr == nil {
			snapshot["ping"] = ping
		} else {
			snapshot["pingError"] = pingErr.Error()
		}

		if err := ws.WriteJSON(snapshot); err != nil {
			return
		}

		<-ticker.C
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, errorBody{Message: message, Code: status})
}
