package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/subcover/internal/settings"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandPing        CommandType = "PING"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandGetSettings CommandType = "GET_SETTINGS"
	CommandSetSettings CommandType = "SET_SETTINGS"
	CommandSetVisible  CommandType = "SET_VISIBLE"
	CommandReload      CommandType = "RELOAD"
	CommandQuit        CommandType = "QUIT"
)

const (
	statusOK    = "OK"
	statusError = "ERROR"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// GestureInfo describes the pointer interaction and the window frame in
// root window pixels (origin top-left).
type GestureInfo struct {
	Mode   string `json:"mode"`
	Edge   string `json:"edge"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	PID           int               `json:"pid"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	Visible       bool              `json:"visible"`
	Gesture       GestureInfo       `json:"gesture"`
	Settings      settings.Settings `json:"settings"`
}

// SetSettingsPayload is a partial appearance update. Omitted fields are left
// unchanged; out-of-range numbers are clamped.
type SetSettingsPayload struct {
	Color        *string  `json:"color,omitempty"`
	Opacity      *float64 `json:"opacity,omitempty"`
	CornerRadius *float64 `json:"corner_radius,omitempty"`
}

// Appearance validates the payload and converts it to a store update.
func (p SetSettingsPayload) Appearance() (settings.Appearance, error) {
	var a settings.Appearance
	if p.Color != nil {
		c, err := settings.ParseColor(*p.Color)
		if err != nil {
			return a, err
		}
		a.Color = &c
	}
	a.Opacity = p.Opacity
	a.CornerRadius = p.CornerRadius
	return a, nil
}

// SetVisiblePayload either sets visibility or toggles it.
type SetVisiblePayload struct {
	Visible *bool `json:"visible,omitempty"`
	Toggle  bool  `json:"toggle,omitempty"`
}

// VisibleData is returned by SET_VISIBLE.
type VisibleData struct {
	Visible bool `json:"visible"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: statusOK,
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: statusError,
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	if req.Command == "" {
		return nil, fmt.Errorf("failed to parse request: missing command")
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
