package webserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/psidex/graphedit/internal/graph"
	"github.com/psidex/graphedit/internal/lib"
	"github.com/psidex/graphedit/internal/session"
)

const (
	PagePath     = "/"
	WsPath       = "/ws"
	ElementsPath = "/elements.json"
)

type Config struct {
	// Seed returns the elements each new session starts from.
	Seed func() []graph.Element
	// PingInterval is how often idle connections are pinged, zero disables pings.
	PingInterval time.Duration
	// WriteTimeout bounds every websocket write, zero means no bound.
	WriteTimeout time.Duration
}

// Message is the envelope for everything the server sends over the websocket.
type Message struct {
	Type  string        `json:"type"` // "view" or "error"
	View  *session.View `json:"data,omitempty"`
	Error string        `json:"error,omitempty"`
}

func viewMessage(v session.View) Message { return Message{Type: "view", View: &v} }

func errorMessage(err error) Message { return Message{Type: "error", Error: err.Error()} }

type Server struct {
	logger   *slog.Logger
	cfg      Config
	upgrader websocket.Upgrader
	page     []byte
}

func NewServer(logger *slog.Logger, cfg Config) *Server {
	s := &Server{
		logger: lib.OrNop(logger),
		cfg:    cfg,
		page:   renderPage(WsPath),
	}
	s.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(PagePath, s.Page)
	mux.HandleFunc(WsPath, s.Session)
	mux.HandleFunc(ElementsPath, s.Elements)
	return mux
}

func (s *Server) Page(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != PagePath {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(s.page); err != nil {
		s.logger.Debug("Page write failed", "error", err)
	}
}

// Elements serves the elements a new session would start from.
func (s *Server) Elements(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.cfg.Seed()); err != nil {
		s.logger.Error("Elements encode failed", "error", err)
	}
}

// Session runs one editing session for the lifetime of a websocket connection.
// Each frame the client sends is one session.Event; the server answers every
// frame with the resulting view or an error message.
func (s *Server) Session(w http.ResponseWriter, r *http.Request) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("ws upgrade failed", "error", err)
		return
	}
	defer c.Close()

	logger := s.logger.With("remote", r.RemoteAddr)
	ws := lib.NewThreadSafeWebSocket(c, s.cfg.WriteTimeout)
	sess := session.New(s.cfg.Seed(), logger)

	logger.Info("Session started")
	defer logger.Info("Session ended")

	if err := ws.WriteJSON(viewMessage(sess.View())); err != nil {
		logger.Error("ws initial view write failed", "error", err)
		return
	}

	done := make(chan struct{})
	defer close(done)
	if s.cfg.PingInterval > 0 {
		go s.keepAlive(logger, ws, done)
	}

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("ws read failed", "error", err)
			}
			return
		}

		reply := s.handle(sess, msg)
		if err := ws.WriteJSON(reply); err != nil {
			logger.Error("ws write failed", "error", err)
			return
		}
	}
}

func (s *Server) handle(sess *session.Session, msg []byte) Message {
	var ev session.Event
	if err := json.Unmarshal(msg, &ev); err != nil {
		return errorMessage(err)
	}
	view, err := sess.Dispatch(ev)
	if err != nil {
		return errorMessage(err)
	}
	return viewMessage(view)
}

// keepAlive pings the client until done is closed. It writes concurrently with
// the session loop, which is why the socket is wrapped.
func (s *Server) keepAlive(logger *slog.Logger, ws lib.ThreadSafeWebSocket, done <-chan struct{}) {
	ticker := time.NewTicker(s.cfg.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := ws.Ping(); err != nil {
				logger.Debug("ws ping failed", "error", err)
				return
			}
		}
	}
}
