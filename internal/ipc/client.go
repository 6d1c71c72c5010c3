package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/subcover/internal/runtimepath"
	"github.com/1broseidon/subcover/internal/settings"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the default socket.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientWithSocket(socketPath)
}

// NewClientWithSocket creates a client for an explicit socket path.
func NewClientWithSocket(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// SocketPath returns the socket the client dials.
func (c *Client) SocketPath() string {
	return c.socketPath
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == statusError {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

func (c *Client) call(cmd CommandType, payload interface{}, out interface{}) error {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", cmd, err)
		}
		req.Payload = data
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", cmd, err)
	}
	return nil
}

// Ping checks that the daemon is reachable.
func (c *Client) Ping() error {
	return c.call(CommandPing, nil, nil)
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandGetStatus, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetSettings retrieves the live overlay settings.
func (c *Client) GetSettings() (settings.Settings, error) {
	var s settings.Settings
	err := c.call(CommandGetSettings, nil, &s)
	return s, err
}

// SetSettings applies a partial appearance update and returns the result.
func (c *Client) SetSettings(p SetSettingsPayload) (settings.Settings, error) {
	var s settings.Settings
	err := c.call(CommandSetSettings, p, &s)
	return s, err
}

// SetVisible shows or hides the overlay.
func (c *Client) SetVisible(visible bool) (bool, error) {
	var out VisibleData
	err := c.call(CommandSetVisible, SetVisiblePayload{Visible: &visible}, &out)
	return out.Visible, err
}

// ToggleVisible flips overlay visibility.
func (c *Client) ToggleVisible() (bool, error) {
	var out VisibleData
	err := c.call(CommandSetVisible, SetVisiblePayload{Toggle: true}, &out)
	return out.Visible, err
}

// Reload asks the daemon to re-read its appearance from the config file.
func (c *Client) Reload() (settings.Settings, error) {
	var s settings.Settings
	err := c.call(CommandReload, nil, &s)
	return s, err
}

// Quit stops the daemon.
func (c *Client) Quit() error {
	return c.call(CommandQuit, nil, nil)
}
