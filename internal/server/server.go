// Package server exposes a directory of matfiles over a read-only HTTP API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/samcharles93/matfile/internal/logger"
	"github.com/samcharles93/matfile/internal/version"
	"github.com/samcharles93/matfile/pkg/matfile"
)

const defaultListConcurrency = 8

// Config configures a Server.
type Config struct {
	// Dir is the directory whose regular files are served.
	Dir string
	// ListConcurrency bounds header reads during a listing. Zero selects a default.
	ListConcurrency int
	Logger          logger.Logger
}

// Server serves the matfiles found directly inside one directory.
type Server struct {
	dir       string
	listLimit int
	log       logger.Logger
	clock     func() time.Time
	startedAt time.Time
}

// New returns a Server for cfg.
func New(cfg Config) *Server {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}
	limit := cfg.ListConcurrency
	if limit <= 0 {
		limit = defaultListConcurrency
	}
	s := &Server{
		dir:       cfg.Dir,
		listLimit: limit,
		log:       log.With("component", "server"),
		clock:     time.Now,
	}
	s.startedAt = s.clock()
	return s
}

// Register adds the server's routes to e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)
	e.GET("/v1/matrices", s.handleList)
	e.GET("/v1/matrices/:name", s.handleHeader)
	e.GET("/v1/matrices/:name/data", s.handleData)
	e.GET("/v1/matrices/:name/raw", s.handleRaw)
}

// Echo builds an echo instance with the standard middleware stack and all
// routes registered.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.Use(RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	s.Register(e)
	return e
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout time.Duration) error {
	s.log.Info("starting server", "address", addr, "dir", s.dir)
	sc := echo.StartConfig{
		Address: addr,
		BeforeServeFunc: func(srv *http.Server) error {
			srv.ReadHeaderTimeout = readTimeout
			return nil
		},
	}
	return sc.Start(ctx, s.Echo())
}

// HeaderInfo describes one stored matrix.
type HeaderInfo struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	Compatible bool   `json:"compatible"`
	DataType   string `json:"dtype"`
	DTypeSize  int    `json:"dtype_size"`
	MatrixType string `json:"matrix_type"`
	M          uint64 `json:"m"`
	N          uint64 `json:"n"`
	FileSize   int64  `json:"file_size"`
}

// NewHeaderInfo summarises h for display.
func NewHeaderInfo(name string, h matfile.Header, fileSize int64) HeaderInfo {
	return HeaderInfo{
		Name:       name,
		Version:    fmt.Sprintf("%d.%d", h.Major(), h.Minor()),
		Compatible: h.Compatible(),
		DataType:   h.DataType.String(),
		DTypeSize:  matfile.DTypeSize(h.DataType),
		MatrixType: h.MatrixType.String(),
		M:          h.M,
		N:          h.N,
		FileSize:   fileSize,
	}
}

// MatrixData is the decoded payload in column-major order.
type MatrixData struct {
	Name     string    `json:"name"`
	M        uint64    `json:"m"`
	N        uint64    `json:"n"`
	DataType string    `json:"dtype"`
	Data     []float64 `json:"data"`
}

type listResponse struct {
	Object string       `json:"object"`
	Data   []HeaderInfo `json:"data"`
}

func (s *Server) handleHealth(c *echo.Context) error {
	return writeOK(c, map[string]any{
		"status":      "ok",
		"version":     version.String(),
		"file_format": version.FileFormat(),
		"uptime":      s.clock().Sub(s.startedAt).Round(time.Second).String(),
	})
}

// resolve maps a route name to a path inside the data directory.
func (s *Server) resolve(name string) (string, bool) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", false
	}
	return filepath.Join(s.dir, name), true
}

func (s *Server) loadInfo(name, path string) (HeaderInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return HeaderInfo{}, fmt.Errorf("matfile: %w", err)
	}
	h, err := matfile.LoadHeader(path)
	if err != nil {
		return HeaderInfo{}, err
	}
	return NewHeaderInfo(name, h, st.Size()), nil
}

func (s *Server) handleList(c *echo.Context) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.log.Error("read data dir failed", "dir", s.dir, "error", err)
		return writeError(c, http.StatusInternalServerError, "server_error", "data directory unavailable")
	}

	names := make([]string, 0, len(entries))
	for _, ent := range entries {
		if ent.Type().IsRegular() {
			names = append(names, ent.Name())
		}
	}

	infos := make([]*HeaderInfo, len(names))
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.SetLimit(s.listLimit)
	for i, name := range names {
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			info, err := s.loadInfo(name, filepath.Join(s.dir, name))
			if err != nil {
				s.log.Debug("skipping entry", "name", name, "error", err)
				return nil
			}
			infos[i] = &info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return writeError(c, http.StatusServiceUnavailable, "server_error", err.Error())
	}

	out := listResponse{Object: "list", Data: make([]HeaderInfo, 0, len(infos))}
	for _, info := range infos {
		if info != nil {
			out.Data = append(out.Data, *info)
		}
	}
	slices.SortFunc(out.Data, func(a, b HeaderInfo) int { return strings.Compare(a.Name, b.Name) })
	return writeOK(c, out)
}

func (s *Server) handleHeader(c *echo.Context) error {
	name := c.Param("name")
	path, ok := s.resolve(name)
	if !ok {
		return writeBadRequest(c, fmt.Sprintf("invalid matrix name %q", name))
	}
	info, err := s.loadInfo(name, path)
	if err != nil {
		return writeLoadError(c, name, err)
	}
	return writeOK(c, info)
}

func (s *Server) handleData(c *echo.Context) error {
	name := c.Param("name")
	path, ok := s.resolve(name)
	if !ok {
		return writeBadRequest(c, fmt.Sprintf("invalid matrix name %q", name))
	}

	f, err := matfile.Open(path)
	if err != nil {
		return writeLoadError(c, name, err)
	}
	defer func() { _ = f.Close() }()

	vals, err := f.Float64s()
	if err != nil {
		return writeLoadError(c, name, err)
	}
	return writeOK(c, MatrixData{
		Name:     name,
		M:        f.Header.M,
		N:        f.Header.N,
		DataType: f.Header.DataType.String(),
		Data:     vals,
	})
}

func (s *Server) handleRaw(c *echo.Context) error {
	name := c.Param("name")
	path, ok := s.resolve(name)
	if !ok {
		return writeBadRequest(c, fmt.Sprintf("invalid matrix name %q", name))
	}

	f, err := matfile.Open(path)
	if err != nil {
		return writeLoadError(c, name, err)
	}
	defer func() { _ = f.Close() }()

	c.Response().Header().Set("X-Matfile-Dtype", f.Header.DataType.String())
	return writeBytes(c, http.StatusOK, mimeOctetStream, f.Data)
}
