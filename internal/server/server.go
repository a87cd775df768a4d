// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package server exposes one polygrid.Grid over HTTP. Requests are
// serialized since a Grid is not safe for concurrent use.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/2dChan/polygrid"
	"github.com/2dChan/polygrid/geom"
	"github.com/2dChan/polygrid/los"
	"github.com/2dChan/polygrid/pathfinding"
	"github.com/2dChan/polygrid/render"
	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

var (
	errMissingParam = errors.New("missing parameter")
	errCellNotFound = errors.New("cell not found")
)

// Server answers grid queries.
type Server struct {
	mu     sync.Mutex
	grid   *polygrid.Grid
	logger *log.Logger
	router chi.Router
}

// New returns a handler serving g.
func New(g *polygrid.Grid, logger *log.Logger) *Server {
	s := &Server{grid: g, logger: logger}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/cells", s.listCells)
	r.Get("/cells/{index}", s.getCell)
	r.Get("/pick", s.pick)
	r.Get("/path", s.findPath)
	r.Get("/los", s.lineOfSight)
	r.Get("/territories", s.listTerritories)
	r.Get("/config", s.getConfig)
	r.Put("/config", s.putConfig)
	r.Get("/svg", s.renderSVG)
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "elapsed", time.Since(start).Round(time.Microsecond))
	})
}

type point [2]float64

func toPoint(p geom.Point) point { return point{p.X, p.Y} }

type cellSummary struct {
	Index      int   `json:"index"`
	Row        int   `json:"row"`
	Column     int   `json:"column"`
	Center     point `json:"center"`
	Territory  int   `json:"territory"`
	Visible    bool  `json:"visible"`
	CanCross   bool  `json:"can_cross"`
	Neighbours []int `json:"neighbours"`
}

type cellDetail struct {
	cellSummary
	Group    int     `json:"group"`
	Tag      int     `json:"tag"`
	Border   bool    `json:"border"`
	Vertices []point `json:"vertices"`
}

func (s *Server) summary(i int) cellSummary {
	c := s.grid.Cell(i)
	return cellSummary{
		Index:      i,
		Row:        c.Row,
		Column:     c.Column,
		Center:     toPoint(c.Center),
		Territory:  c.TerritoryIndex,
		Visible:    c.Visible,
		CanCross:   c.CanCross,
		Neighbours: s.grid.CellNeighbours(i),
	}
}

func (s *Server) listCells(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]cellSummary, s.grid.CellCount())
	for i := range out {
		out[i] = s.summary(i)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getCell(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("index: %w", err))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.grid.Cell(i) == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %d", errCellNotFound, i))
		return
	}
	d := cellDetail{
		cellSummary: s.summary(i),
		Group:       s.grid.CellGroup(i),
		Tag:         s.grid.CellTag(i),
		Border:      s.grid.CellIsBorder(i),
	}
	for v := range s.grid.CellVertexCount(i) {
		p, _ := s.grid.CellVertex(i, v)
		d.Vertices = append(d.Vertices, toPoint(p))
	}
	writeJSON(w, http.StatusOK, d)
}

type pickResponse struct {
	Cell      int `json:"cell"`
	Territory int `json:"territory"`
}

func (s *Server) pick(w http.ResponseWriter, r *http.Request) {
	x, err := floatParam(r, "x")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	y, err := floatParam(r, "y")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := geom.Point{X: x, Y: y}
	writeJSON(w, http.StatusOK, pickResponse{Cell: s.grid.CellAt(p), Territory: s.grid.TerritoryAt(p)})
}

type pathResponse struct {
	Found bool    `json:"found"`
	Cost  float64 `json:"cost"`
	Cells []int   `json:"cells"`
}

func (s *Server) findPath(w http.ResponseWriter, r *http.Request) {
	start, end, err := cellPair(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var q pathfinding.Query
	if q.MaxSteps, err = optionalInt(r, "max_steps"); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if q.GroupMask, err = optionalInt(r, "group_mask"); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if r.URL.Query().Has("max_cost") {
		if q.MaxCost, err = floatParam(r, "max_cost"); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	path, cost, ok := s.grid.FindPath(start, end, q)
	if path == nil {
		path = []int{}
	}
	writeJSON(w, http.StatusOK, pathResponse{Found: ok, Cost: cost, Cells: path})
}

type losResponse struct {
	Visible bool    `json:"visible"`
	Cells   []int   `json:"cells"`
	Points  []point `json:"points"`
}

func (s *Server) lineOfSight(w http.ResponseWriter, r *http.Request) {
	start, end, err := cellPair(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var opts los.Options
	if opts.Resolution, err = optionalInt(r, "resolution"); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if opts.GroupMask, err = optionalInt(r, "group_mask"); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	opts.Exhaustive = r.URL.Query().Get("exhaustive") == "true"

	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.grid.LineOfSight(start, end, opts)
	out := losResponse{Visible: res.Visible, Cells: res.Cells, Points: make([]point, len(res.Points))}
	if out.Cells == nil {
		out.Cells = []int{}
	}
	for i, p := range res.Points {
		out.Points[i] = toPoint(p)
	}
	writeJSON(w, http.StatusOK, out)
}

type territoryResponse struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	Capital    int    `json:"capital"`
	Visible    bool   `json:"visible"`
	Color      string `json:"color"`
	Cells      []int  `json:"cells"`
	Neighbours []int  `json:"neighbours"`
}

func (s *Server) listTerritories(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	terrs := s.grid.Territories()
	out := make([]territoryResponse, len(terrs))
	for i, t := range terrs {
		out[i] = territoryResponse{
			Index:      i,
			Name:       t.Name,
			Capital:    t.Capital,
			Visible:    t.Visible,
			Color:      fmt.Sprintf("rgba(%.0f,%.0f,%.0f,%.2f)", t.FillColor.R*255, t.FillColor.G*255, t.FillColor.B*255, t.FillColor.A),
			Cells:      s.grid.TerritoryCells(i),
			Neighbours: s.grid.TerritoryNeighbours(i),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// configBody is the state of GET /config.
type configBody struct {
	Config *polygrid.Config `json:"config,omitempty"`
	Data   *string          `json:"data,omitempty"`
}

// configPatch is the body of PUT /config. Config fields are applied over
// the current configuration, and a present config regenerates the grid
// before the cell data is applied.
type configPatch struct {
	Config json.RawMessage `json:"config,omitempty"`
	Data   *string         `json:"data,omitempty"`
}

func (s *Server) getConfig(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.grid.Config()
	data := s.grid.ConfigurationData()
	writeJSON(w, http.StatusOK, configBody{Config: &cfg, Data: &data})
}

func (s *Server) putConfig(w http.ResponseWriter, r *http.Request) {
	var body configPatch
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(body.Config) > 0 && string(body.Config) != "null" {
		cfg := s.grid.Config()
		if err := json.Unmarshal(body.Config, &cfg); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("config: %w", err))
			return
		}
		if err := s.grid.SetConfig(cfg); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		s.logger.Info("grid regenerated", "topology", s.grid.Topology(), "cells", s.grid.CellCount())
	}
	if body.Data != nil {
		if err := s.grid.SetConfigurationData(*body.Data); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) renderSVG(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.Header().Set("Content-Type", "image/svg+xml")
	err := render.SVG(w, s.grid.Cells(), s.grid.Territories(), render.WithTerritories(s.grid.TerritoryFrontiers()))
	if err != nil {
		s.logger.Error("render", "err", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func cellPair(r *http.Request) (int, int, error) {
	start, err := intParam(r, "start")
	if err != nil {
		return 0, 0, err
	}
	end, err := intParam(r, "end")
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func intParam(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, fmt.Errorf("%w: %s", errMissingParam, name)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

func optionalInt(r *http.Request, name string) (int, error) {
	if !r.URL.Query().Has(name) {
		return 0, nil
	}
	return intParam(r, name)
}

func floatParam(r *http.Request, name string) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, fmt.Errorf("%w: %s", errMissingParam, name)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}
