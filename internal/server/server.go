// procalc — a scientific calculator for the terminal and the web
// Copyright (c) 2025 Khwahish Sharma (aka 0xRootAnon)
//
// Licensed under the GNU General Public License v3.0 or later (GPLv3+).
// You may obtain a copy of the License at
// https://www.gnu.org/licenses/gpl-3.0.html
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.

// Package server exposes the calculator over HTTP: evaluation plus the
// history endpoints the web front end uses.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/akashbangaru2005/pro-math-calculator/internal/calc"
	"github.com/akashbangaru2005/pro-math-calculator/internal/store"
)

const defaultMaxBody = 1 << 20 // 1 MiB

type Server struct {
	engine  *calc.Engine
	history store.Recorder
	limit   int
	maxBody int64
}

type Options struct {
	HistoryLimit int
	MaxBodyBytes int64
}

func New(engine *calc.Engine, history store.Recorder, opts Options) *Server {
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 20
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBody
	}
	return &Server{engine: engine, history: history, limit: opts.HistoryLimit, maxBody: opts.MaxBodyBytes}
}

type evaluateRequest struct {
	Expression string `json:"expression"`
}

// Result is null when the value has no JSON form (±Inf, NaN); Display always
// carries the text the calculator would show.
type evaluateResponse struct {
	Result  *float64 `json:"result"`
	Display string   `json:"display"`
}

type saveRequest struct {
	Expression string      `json:"expression"`
	Result     interface{} `json:"result"`
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/evaluate", s.handleEvaluate)
	mux.HandleFunc("/api/saveHistory", s.handleSaveHistory)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/health", s.handleHealth)
	return recoverer(mux)
}

func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic in %s: %v\n%s", r.URL.Path, rec, string(debug.Stack()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decode reads exactly one JSON object with no unknown fields.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("invalid JSON: trailing data")
	}
	return nil
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req evaluateRequest
	if err := s.decode(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	v, err := s.engine.Calculate(req.Expression)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]bool{"error": true})
		return
	}
	resp := evaluateResponse{Display: calc.FormatResult(v)}
	if !math.IsInf(v, 0) && !math.IsNaN(v) {
		resp.Result = &v
	}
	if err := s.history.SaveHistory(req.Expression, resp.Display); err != nil {
		log.Printf("history save: %v", err)
	}
	writeJSON(w, http.StatusOK, resp)
}

func resultText(v interface{}) (string, error) {
	switch r := v.(type) {
	case float64:
		return calc.FormatResult(r), nil
	case string:
		return r, nil
	case nil:
		return "null", nil
	}
	return "", fmt.Errorf("result must be a number or string, got %T", v)
}

func (s *Server) handleSaveHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req saveRequest
	if err := s.decode(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	result, err := resultText(req.Result)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := s.history.SaveHistory(req.Expression, result); err != nil {
		log.Printf("history save: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to save"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	entries, err := s.history.ListHistory(s.limit)
	if err != nil {
		log.Printf("history list: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch history"})
		return
	}
	if entries == nil {
		entries = []store.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
