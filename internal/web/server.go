// SPDX-License-Identifier: Apache-2.0

package web

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"elector-dedup/internal/config"
	"elector-dedup/internal/formatters"
	"elector-dedup/internal/formatters/shared"
	"elector-dedup/internal/observability"
	"elector-dedup/internal/parallel"
	"elector-dedup/internal/records"
	"elector-dedup/internal/version"

	// Import formatters to register them
	_ "elector-dedup/internal/formatters/csv"
	_ "elector-dedup/internal/formatters/json"
	_ "elector-dedup/internal/formatters/text"
	_ "elector-dedup/internal/formatters/xlsx"
	_ "elector-dedup/internal/formatters/yaml"
)

// maxUploadBytes caps workbook uploads at 50MB, same as the original UI.
const maxUploadBytes = 50 << 20

// displayRowLimit caps the duplicate rows rendered on the results page;
// the full set is always in the downloadable workbook.
const displayRowLimit = 100

// WebServer represents the web server instance
type WebServer struct {
	port       string
	cfg        *config.Config
	observer   *observability.StandardObserver
	server     *http.Server
	mux        *http.ServeMux
	uploadDir  string
	resultsDir string
}

// NewWebServer creates a new web server instance
func NewWebServer(port string, cfg *config.Config, observer *observability.StandardObserver) (*WebServer, error) {
	uploadDir, err := os.MkdirTemp("", "elector-uploads-")
	if err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	resultsDir, err := os.MkdirTemp("", "elector-results-")
	if err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}

	ws := &WebServer{
		port:       port,
		cfg:        cfg,
		observer:   observer,
		mux:        http.NewServeMux(),
		uploadDir:  uploadDir,
		resultsDir: resultsDir,
	}
	ws.setupRoutes()
	return ws, nil
}

// Start starts the web server, scanning forward from the requested port
// when it is already taken.
func (ws *WebServer) Start() error {
	basePort, err := strconv.Atoi(ws.port)
	if err != nil {
		return fmt.Errorf("invalid port %q", ws.port)
	}

	var lastError error
	for i := 0; i < 10; i++ {
		currentPort := strconv.Itoa(basePort + i)

		// Test if port is available first
		listener, err := net.Listen("tcp", ":"+currentPort)
		if err != nil {
			lastError = err
			if i == 0 {
				fmt.Printf("Port %s is not available, trying alternative ports...\n", currentPort)
			}
			continue
		}
		listener.Close()

		ws.server = ws.createSecureServer(currentPort)

		fmt.Printf("Elector Dedup Web UI started on port %s\n", currentPort)
		fmt.Printf("Local: http://localhost:%s\n", currentPort)

		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lastError = err
			continue
		}
		return nil
	}

	return fmt.Errorf("could not find an available port in range %d-%d: %v", basePort, basePort+9, lastError)
}

// Stop stops the web server and removes its temp directories.
func (ws *WebServer) Stop() error {
	os.RemoveAll(ws.uploadDir)
	os.RemoveAll(ws.resultsDir)
	if ws.server != nil {
		return ws.server.Close()
	}
	return nil
}

// setupRoutes configures all HTTP route handlers
func (ws *WebServer) setupRoutes() {
	ws.mux.HandleFunc("/", ws.serveHome)
	ws.mux.HandleFunc("/health", ws.handleHealth)
	ws.mux.HandleFunc("/upload", ws.handleUpload)
	ws.mux.HandleFunc("/download/", ws.handleDownload)
	ws.mux.HandleFunc("/formats", ws.handleFormats)
}

// createSecureServer creates an HTTP server with security timeouts
func (ws *WebServer) createSecureServer(port string) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           ws.mux,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// serveHome serves the upload form
func (ws *WebServer) serveHome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data := map[string]interface{}{
		"Threshold":   ws.cfg.Defaults.Threshold,
		"SourceSheet": ws.cfg.Workbook.SourceSheet,
		"TargetSheet": ws.cfg.Workbook.TargetSheet,
	}
	ws.renderTemplate(w, homeTemplate, data)
}

// handleHealth reports server liveness
func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": version.Short(),
	})
}

// handleFormats lists the registered output formats
func (ws *WebServer) handleFormats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(formatters.GetSupportedFormats())
}

// handleUpload accepts a workbook, runs the comparison, and renders the
// results page with a download link to the exported review workbook.
func (ws *WebServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		ws.renderError(w, "File too large. Maximum file size is 50MB.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		ws.renderError(w, "No file uploaded. Please select an Excel file.")
		return
	}
	defer file.Close()

	if !allowedFile(header.Filename) {
		ws.renderError(w, "Invalid file type. Please upload an Excel file (.xlsx).")
		return
	}

	threshold := ws.cfg.Defaults.Threshold
	if v := r.FormValue("threshold"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 100 {
			threshold = parsed
		}
	}

	uploadPath, err := ws.saveUpload(file, header.Filename)
	if err != nil {
		ws.renderError(w, fmt.Sprintf("Failed to store upload: %v", err))
		return
	}
	defer os.Remove(uploadPath)

	sources, targets, err := records.LoadWorkbook(uploadPath, ws.cfg.LoadOptions())
	if err != nil {
		ws.renderError(w, fmt.Sprintf("Failed to load workbook: %v", err))
		return
	}

	processor := parallel.NewProcessor(ws.cfg.Defaults.Workers, ws.observer)
	result, _, err := processor.Compare(sources, targets, threshold)
	if err != nil {
		ws.renderError(w, fmt.Sprintf("Comparison failed: %v", err))
		return
	}

	report := shared.BuildReport(result, sources, targets)

	// Export the full workbook up front so the download link is ready
	// when the results page renders.
	outputName := fmt.Sprintf("%s_duplicates_%s.xlsx",
		strings.TrimSuffix(filepath.Base(header.Filename), filepath.Ext(header.Filename)),
		time.Now().Format("20060102_150405"))
	content, _, _, err := formatters.ExportForWeb("xlsx", report, formatters.FormatterOptions{})
	if err != nil {
		ws.renderError(w, fmt.Sprintf("Failed to build review workbook: %v", err))
		return
	}
	if err := os.WriteFile(filepath.Join(ws.resultsDir, outputName), []byte(content), 0600); err != nil {
		ws.renderError(w, fmt.Sprintf("Failed to save review workbook: %v", err))
		return
	}

	display := report.Duplicates
	if len(display) > displayRowLimit {
		display = display[:displayRowLimit]
	}
	ws.renderTemplate(w, resultsTemplate, map[string]interface{}{
		"Filename":   header.Filename,
		"Summary":    report.Summary,
		"Duplicates": display,
		"Shown":      len(display),
		"Total":      len(report.Duplicates),
		"Download":   outputName,
	})
}

// handleDownload serves a previously exported review workbook. Only bare
// filenames inside the results directory are reachable.
func (ws *WebServer) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/download/")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		http.Error(w, "Invalid filename", http.StatusBadRequest)
		return
	}

	path := filepath.Join(ws.resultsDir, name)
	if _, err := os.Stat(path); err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFile(w, r, path)
}

// saveUpload stores the uploaded workbook under a sanitized name in the
// upload temp directory.
func (ws *WebServer) saveUpload(file io.Reader, filename string) (string, error) {
	safeName := filepath.Base(filename)
	dst := filepath.Join(ws.uploadDir, fmt.Sprintf("%d_%s", time.Now().UnixNano(), safeName))

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(dst)
		return "", err
	}
	return dst, nil
}

// allowedFile checks the upload extension whitelist
func allowedFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".xlsx" || ext == ".xls"
}

func (ws *WebServer) renderTemplate(w http.ResponseWriter, tmpl *template.Template, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		http.Error(w, "Template rendering failed", http.StatusInternalServerError)
	}
}

func (ws *WebServer) renderError(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusBadRequest)
	ws.renderTemplate(w, errorTemplate, map[string]interface{}{"Message": message})
}
