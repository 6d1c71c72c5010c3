package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/subcover/internal/settings"
)

// Controller is the daemon-side surface the server drives. Methods are
// called from connection goroutines.
type Controller interface {
	Visible() bool
	SetVisible(ctx context.Context, visible bool) error
	Gesture() GestureInfo
	// Reload re-reads the appearance from the config file and applies it.
	Reload() (settings.Settings, error)
	Quit()
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	store        *settings.Store
	ctrl         Controller
	logger       *slog.Logger
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
	wg           sync.WaitGroup
}

// NewServer creates a server bound to socketPath. A stale socket file is
// removed; a live one means another daemon owns it and is an error.
func NewServer(socketPath string, store *settings.Store, ctrl Controller, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if conn, err := net.DialTimeout("unix", socketPath, 200*time.Millisecond); err == nil {
		conn.Close()
		return nil, fmt.Errorf("another subcover daemon is already listening on %s", socketPath)
	}
	if err := os.Remove(socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to remove stale socket: %w", err)
	}

	return &Server{
		socketPath: socketPath,
		store:      store,
		ctrl:       ctrl,
		logger:     logger,
		startTime:  time.Now(),
	}, nil
}

func (s *Server) String() string {
	return "ipc-server"
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.shutdownMu.Lock()
	s.listener = listener
	s.shuttingDown = false
	s.shutdownMu.Unlock()

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

// Stop closes the listener, waits for the accept loop and removes the
// socket file.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	if s.shuttingDown || s.listener == nil {
		s.shutdownMu.Unlock()
		return
	}
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	s.listener.Close()
	s.wg.Wait()
	os.Remove(s.socketPath)
}

// Serve starts the server and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return ctx.Err()
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			done := s.shuttingDown
			s.shutdownMu.Unlock()
			if done {
				return
			}
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection serves one newline-terminated request per connection.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(10 * time.Second))

	reader := bufio.NewReader(conn)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "error", err)
		return
	}

	var resp *Response
	req, err := ParseRequest(data)
	if err != nil {
		resp = NewErrorResponse(fmt.Sprintf("Invalid request: %v", err))
	} else {
		resp = s.handleCommand(req)
	}

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal response", "error", err)
		return
	}
	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send response", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	s.logger.Debug("IPC request", "command", string(req.Command))

	switch req.Command {
	case CommandPing:
		return ok(nil)
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetSettings:
		return ok(s.store.Snapshot())
	case CommandSetSettings:
		return s.handleSetSettings(req.Payload)
	case CommandSetVisible:
		return s.handleSetVisible(req.Payload)
	case CommandReload:
		return s.handleReload()
	case CommandQuit:
		s.logger.Info("IPC: received QUIT")
		// Reply first; the quit tears down this server.
		go s.ctrl.Quit()
		return ok(nil)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func ok(data interface{}) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleGetStatus() *Response {
	return ok(StatusData{
		PID:           os.Getpid(),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		Visible:       s.ctrl.Visible(),
		Gesture:       s.ctrl.Gesture(),
		Settings:      s.store.Snapshot(),
	})
}

func (s *Server) handleSetSettings(payload json.RawMessage) *Response {
	var p SetSettingsPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &p); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid payload: %v", err))
		}
	}
	update, err := p.Appearance()
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	if update.Empty() {
		return NewErrorResponse("SET_SETTINGS requires at least one of color, opacity, corner_radius")
	}

	next := s.store.SetAppearance(update)
	s.logger.Info("IPC: appearance updated",
		"color", next.Color.String(),
		"opacity", next.Opacity,
		"corner_radius", next.CornerRadius,
	)
	return ok(next)
}

func (s *Server) handleSetVisible(payload json.RawMessage) *Response {
	var p SetVisiblePayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &p); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid payload: %v", err))
		}
	}

	var want bool
	switch {
	case p.Toggle:
		want = !s.ctrl.Visible()
	case p.Visible != nil:
		want = *p.Visible
	default:
		return NewErrorResponse("SET_VISIBLE requires visible or toggle")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.ctrl.SetVisible(ctx, want); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to change visibility: %v", err))
	}
	return ok(VisibleData{Visible: s.ctrl.Visible()})
}

func (s *Server) handleReload() *Response {
	s.logger.Info("IPC: received RELOAD")
	next, err := s.ctrl.Reload()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}
	return ok(next)
}
