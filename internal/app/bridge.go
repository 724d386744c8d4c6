package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/hyperscape/shell/internal/platform"
	"github.com/hyperscape/shell/internal/registry"
	"github.com/hyperscape/shell/internal/uichannel"
)

// ActivationRequest is the body of POST /activate. URLs are delivered as
// given; Args are filtered down to the configured deep-link schemes first.
type ActivationRequest struct {
	URLs []string `json:"urls,omitempty"`
	Args []string `json:"args,omitempty"`
}

// maxBodyBytes caps bridge request bodies.
const maxBodyBytes = 1 << 20

// decodeBody decodes a size-limited JSON body into v and returns the status
// to answer with when it fails.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) (int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return http.StatusRequestEntityTooLarge, err
		}
		return http.StatusBadRequest, err
	}
	return http.StatusOK, nil
}

type invokeResponse struct {
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (a *App) activateHandler(w http.ResponseWriter, r *http.Request) {
	var req ActivationRequest
	if status, err := decodeBody(w, r, &req); err != nil {
		http.Error(w, "Invalid activation request", status)
		return
	}

	urls := append(req.URLs, platform.FilterURLs(req.Args, a.model.DeepLink.Schemes)...)
	if len(urls) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	act := a.currentActivator()
	if act == nil {
		http.Error(w, "Shell is not ready", http.StatusServiceUnavailable)
		return
	}
	a.logger.Debug("Activation received over bridge.", "remote_addr", r.RemoteAddr, "urls", len(urls))
	act.Deliver(urls)
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) invokeHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	args := map[string]any{}
	if r.ContentLength != 0 {
		if status, err := decodeBody(w, r, &args); err != nil {
			writeJSON(w, status, invokeResponse{Error: "invalid JSON arguments"})
			return
		}
	}

	result, err := a.Invoke(r.Context(), name, args)
	switch {
	case errors.Is(err, registry.ErrUnknownCommand):
		writeJSON(w, http.StatusNotFound, invokeResponse{Error: err.Error()})
	case err != nil:
		a.logger.Warn("Command failed.", "command", name, "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, invokeResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusOK, invokeResponse{Result: result})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (a *App) bridgeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", a.healthHandler)
	mux.HandleFunc("POST /activate", a.activateHandler)
	mux.HandleFunc("POST /invoke/{name}", a.invokeHandler)
	if a.socket != nil {
		mux.Handle(uichannel.SocketIOPath, a.socket.Handler())
	}
	return mux
}

// StartBridge starts the local bridge server in the background. It returns
// the listen error, if any, so callers can tell a busy address apart.
func (a *App) StartBridge(ctx context.Context) error {
	addr := a.model.Bridge.Listen
	if addr == "" {
		a.logger.Warn("Bridge server not started: disabled")
		return nil
	}

	a.bridgeMu.Lock()
	defer a.bridgeMu.Unlock()
	if a.bridge != nil {
		return errors.New("bridge server already running")
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("bridge listen on %s: %w", addr, err)
	}

	a.bridge = &http.Server{
		Handler:           a.bridgeMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	a.bridgeAddr = ln.Addr().String()
	srv := a.bridge

	go func() {
		a.logger.Info("🌉 Bridge server starting", "address", fmt.Sprintf("http://%s", ln.Addr()))
		// Serve returns ErrServerClosed on graceful shutdown.
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Bridge server failed unexpectedly", "error", err)
		}
	}()
	return nil
}

// BridgeAddr returns the address the bridge listens on, empty when stopped.
func (a *App) BridgeAddr() string {
	a.bridgeMu.Lock()
	defer a.bridgeMu.Unlock()
	return a.bridgeAddr
}

// Close stops the bridge server and the socket.io channel.
func (a *App) Close(ctx context.Context) error {
	a.logger.Debug("Closing bridge server...")

	a.bridgeMu.Lock()
	srv := a.bridge
	a.bridge = nil
	a.bridgeAddr = ""
	a.bridgeMu.Unlock()

	if a.socket != nil {
		a.socket.Close()
	}
	if srv == nil {
		a.logger.Debug("Bridge server was not running.")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		a.logger.Error("Bridge server shutdown failed", "error", err)
		return err
	}
	a.logger.Debug("Bridge server shut down gracefully.")
	return nil
}
