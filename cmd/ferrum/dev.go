package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ferrum-web/ferrum/cmd/ferrum/internal/config"
	"github.com/ferrum-web/ferrum/internal/cache"
	"github.com/ferrum-web/ferrum/pkg/codegen"
	"github.com/ferrum-web/ferrum/pkg/format"
	"github.com/ferrum-web/ferrum/pkg/parser"
)

type devServer struct {
	port        int
	host        string
	srcDir      string
	started     time.Time
	watcher     *fsnotify.Watcher
	wsClients   map[*websocket.Conn]bool
	wsMutex     sync.RWMutex
	upgrader    websocket.Upgrader
	renderCache *cache.Cache
	registry    *componentRegistry
}

func newDevCommand() *cobra.Command {
	var port int
	var host string
	var cwd string

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Long:  `Starts a development server that recompiles .frr files on change and live-reloads connected browsers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cwd != "" {
				if err := os.Chdir(cwd); err != nil {
					return fmt.Errorf("change directory to %s: %w", cwd, err)
				}
			}
			return runDev(host, port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run the dev server on")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind the dev server to")
	cmd.Flags().StringVar(&cwd, "cwd", "", "Working directory of the project (defaults to current)")

	return cmd
}

func runDev(host string, port int) error {
	cfg, err := config.Load(".")
	if err != nil {
		log.Printf("⚠️  Failed to load %s: %v (using defaults)", config.FileName, err)
		cfg = config.DefaultConfig()
	}
	if port == 0 {
		port = cfg.Dev.Port
	}
	if host == "" {
		host = cfg.Dev.Host
	}

	server := &devServer{
		port:        port,
		host:        host,
		srcDir:      cfg.SrcDir,
		started:     time.Now(),
		wsClients:   make(map[*websocket.Conn]bool),
		renderCache: cache.New(),
		registry:    newComponentRegistry(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Allow all origins in dev mode.
				return true
			},
		},
	}

	if err := server.registry.Scan(server.srcDir); err != nil {
		log.Printf("⚠️  Component scan failed: %v", err)
	} else {
		log.Printf("🔍 Found %d components", len(server.registry.Names()))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()
	server.watcher = watcher

	if err := server.setupWatcher(); err != nil {
		return fmt.Errorf("setup watcher: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ferrum/live", server.handleWebSocket)
	mux.HandleFunc("/api/status", server.handleStatus)
	mux.HandleFunc("/api/components", server.handleComponents)
	mux.HandleFunc("/api/render", server.handleRender)
	mux.HandleFunc("/api/format", server.handleFormat)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("public"))))
	mux.HandleFunc("/components/", server.handleComponentPage)
	mux.HandleFunc("/", server.handleIndex)

	addr := fmt.Sprintf("%s:%d", host, port)
	srv := &http.Server{Addr: addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		server.watchFiles(ctx)
		return nil
	})

	g.Go(func() error {
		log.Printf("✨ Dev server running at http://%s", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Println("🛑 Shutting down dev server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *devServer) setupWatcher() error {
	return filepath.WalkDir(s.srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return s.watcher.Add(path)
		}
		return nil
	})
}

func (s *devServer) watchFiles(ctx context.Context) {
	debounce := time.NewTimer(0)
	<-debounce.C // drain initial timer

	var pending []fsnotify.Event

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !isRelevantFile(event.Name) {
				continue
			}
			pending = append(pending, event)
			debounce.Reset(100 * time.Millisecond)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Println("Watcher error:", err)

		case <-debounce.C:
			events := pending
			pending = nil
			if len(events) > 0 {
				s.handleFileChanges(events)
			}
		}
	}
}

func isRelevantFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".frr" || ext == ".css" || ext == ".html"
}

func (s *devServer) handleFileChanges(events []fsnotify.Event) {
	var frrChanged bool
	for _, event := range events {
		if strings.HasSuffix(event.Name, ".frr") {
			frrChanged = true
			if n := s.renderCache.InvalidateByDependency(event.Name); n > 0 {
				log.Printf("🗑️  Invalidated %d cached renders for %s", n, filepath.Base(event.Name))
			}
		}
		// New directories need to be watched too.
		if event.Op.Has(fsnotify.Create) {
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				s.watcher.Add(event.Name)
			}
		}
	}

	if frrChanged {
		if err := s.registry.Scan(s.srcDir); err != nil {
			log.Printf("⚠️  Component rescan failed: %v", err)
		}
	}

	log.Println("🔄 Files changed, reloading...")
	s.notifyClients("reload", nil)
}

// renderFile compiles a .frr file to a full HTML document, serving from
// the render cache when the content is unchanged.
func (s *devServer) renderFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	key := cache.Key("render", path, string(data))
	if cached, ok := s.renderCache.Get(key); ok {
		return string(cached), nil
	}

	nodes, err := parser.Parse(string(data))
	if err != nil {
		return "", err
	}

	page := codegen.ToHTML(nodes)
	page = injectLiveReload(page)
	s.renderCache.PutWithDeps(key, []byte(page), []string{path})
	return page, nil
}

// injectLiveReload appends the websocket reload client before </body>.
func injectLiveReload(page string) string {
	const script = `<script>
(function() {
  var ws = new WebSocket('ws://' + location.host + '/ferrum/live');
  ws.onopen = function() { ws.send(JSON.stringify({type: 'HELLO'})); };
  ws.onmessage = function(e) {
    var msg = JSON.parse(e.data);
    if (msg.type === 'RELOAD') location.reload();
  };
})();
</script>
`
	if i := strings.LastIndex(page, "</body>"); i >= 0 {
		return page[:i] + script + page[i:]
	}
	return page + script
}

func (s *devServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page, err := s.renderFile(filepath.Join(s.srcDir, "main.frr"))
	if err != nil {
		s.serveErrorPage(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	w.Header().Set("Cache-Control", "no-cache")
	io.WriteString(w, page)
}

func (s *devServer) handleComponentPage(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/components/")
	path, ok := s.registry.Lookup(name)
	if !ok {
		http.Error(w, "unknown component: "+name, http.StatusNotFound)
		return
	}

	page, err := s.renderFile(path)
	if err != nil {
		s.serveErrorPage(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	w.Header().Set("Cache-Control", "no-cache")
	io.WriteString(w, page)
}

func (s *devServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.wsMutex.RLock()
	clients := len(s.wsClients)
	s.wsMutex.RUnlock()

	writeJSON(w, map[string]any{
		"status":     "ok",
		"uptime":     time.Since(s.started).Round(time.Second).String(),
		"clients":    clients,
		"components": s.registry.Names(),
		"cache":      s.renderCache.GetStats(),
	})
}

func (s *devServer) handleComponents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"components": s.registry.Names()})
}

// handleRender compiles posted source and returns the body HTML, used by
// editor integrations to preview fragments.
func (s *devServer) handleRender(w http.ResponseWriter, r *http.Request) {
	source, ok := readSource(w, r)
	if !ok {
		return
	}

	nodes, err := parser.Parse(source)
	if err != nil {
		writeJSONError(w, err)
		return
	}
	writeJSON(w, map[string]any{"html": codegen.BodyHTML(nodes)})
}

func (s *devServer) handleFormat(w http.ResponseWriter, r *http.Request) {
	source, ok := readSource(w, r)
	if !ok {
		return
	}

	formatted, err := format.Default().Format(source)
	if err != nil {
		writeJSONError(w, err)
		return
	}
	writeJSON(w, map[string]any{"formatted": formatted})
}

func readSource(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return "", false
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body: "+err.Error(), http.StatusBadRequest)
		return "", false
	}
	return string(body), true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	// Responses carry HTML previews; keep them readable for editor clients.
	enc.SetEscapeHTML(false)
	enc.Encode(v)
}

func writeJSONError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)

	resp := map[string]any{"error": err.Error()}
	var syntaxErr *parser.SyntaxError
	if errors.As(err, &syntaxErr) {
		resp["line"] = syntaxErr.Line
		resp["text"] = syntaxErr.Text
	}
	json.NewEncoder(w).Encode(resp)
}

// serveErrorPage renders a compile error as an HTML page so the browser
// shows the failure instead of a stale view.
func (s *devServer) serveErrorPage(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusInternalServerError)

	detail := html.EscapeString(err.Error())
	var syntaxErr *parser.SyntaxError
	if errors.As(err, &syntaxErr) {
		detail = fmt.Sprintf("line %d: %s<br><pre>%s</pre>",
			syntaxErr.Line, html.EscapeString(syntaxErr.Message), html.EscapeString(syntaxErr.Text))
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html lang='en'>
<head><title>Ferrum - Compile Error</title></head>
<body style='font-family: monospace; padding: 2rem; background: #1f2937; color: #ef4444;'>
<h1>Compile Error</h1>
<p>%s</p>
</body>
</html>`, detail)
	io.WriteString(w, injectLiveReload(page))
}

func (s *devServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	s.wsMutex.Lock()
	s.wsClients[conn] = true
	s.wsMutex.Unlock()

	defer func() {
		s.wsMutex.Lock()
		delete(s.wsClients, conn)
		s.wsMutex.Unlock()
	}()

	for {
		var msg map[string]any
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		switch msg["type"] {
		case "HELLO":
			conn.WriteJSON(map[string]any{"type": "ACK"})
		default:
			log.Printf("Unknown WebSocket message type: %v", msg["type"])
		}
	}
}

func (s *devServer) notifyClients(msgType string, data map[string]any) {
	s.wsMutex.RLock()
	defer s.wsMutex.RUnlock()

	message := map[string]any{"type": strings.ToUpper(msgType)}
	for k, v := range data {
		message[k] = v
	}

	for client := range s.wsClients {
		if err := client.WriteJSON(message); err != nil {
			log.Printf("Failed to send message to client: %v", err)
		}
	}
}
