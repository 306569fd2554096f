// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cilium/ipmerge/pkg/cidr"
	"github.com/cilium/ipmerge/pkg/logging/logfields"
	"github.com/cilium/ipmerge/pkg/metrics"
)

const (
	paramBlock        = "block"
	paramA            = "a"
	paramB            = "b"
	paramAlwaysPrefix = "always-prefix"
)

// ParseResponse is returned by /v1/parse.
type ParseResponse struct {
	Block   string `json:"block"`
	Address string `json:"address"`
	Prefix  int    `json:"prefix"`
	Family  string `json:"family"`
	Last    string `json:"last"`
}

// MergeResponse is returned by /v1/merge. Block is empty unless Merged.
type MergeResponse struct {
	Merged bool   `json:"merged"`
	Case   string `json:"case"`
	Block  string `json:"block,omitempty"`
}

// ErrorResponse is returned with status 400 for invalid requests. Kind is
// set for blocks which failed to parse.
type ErrorResponse struct {
	Param string `json:"param,omitempty"`
	Kind  string `json:"kind,omitempty"`
	Error string `json:"error"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	always, err := alwaysPrefix(query.Get(paramAlwaysPrefix))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Param: paramAlwaysPrefix, Error: err.Error()})
		return
	}

	b, ok := s.parseParam(w, query.Get(paramBlock), paramBlock)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, ParseResponse{
		Block:   cidr.Format(b, always),
		Address: b.Addr().String(),
		Prefix:  b.Bits(),
		Family:  b.Family().String(),
		Last:    b.Last().String(),
	})
}

func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	always, err := alwaysPrefix(query.Get(paramAlwaysPrefix))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Param: paramAlwaysPrefix, Error: err.Error()})
		return
	}

	a, ok := s.parseParam(w, query.Get(paramA), paramA)
	if !ok {
		return
	}
	b, ok := s.parseParam(w, query.Get(paramB), paramB)
	if !ok {
		return
	}

	m, c := cidr.MergeWithCase(a, b)
	if s.opts.enableMetrics {
		metrics.ObserveMerge(c)
	}
	s.log.Debug("Merged blocks",
		logfields.Blocks, []string{a.String(), b.String()},
		logfields.MergeCase, c,
	)

	resp := MergeResponse{Case: c.String()}
	if c != cidr.MergeNone {
		resp.Merged = true
		resp.Block = cidr.Format(m, always)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// parseParam parses text as a block, writing an error response if that
// fails.
func (s *Server) parseParam(w http.ResponseWriter, text, param string) (cidr.Block, bool) {
	b, err := cidr.Parse(text)
	if s.opts.enableMetrics {
		metrics.ObserveParse(err)
	}
	if err != nil {
		resp := ErrorResponse{Param: param, Error: err.Error()}
		if kind, ok := cidr.KindOf(err); ok {
			resp.Kind = kind.String()
		}
		s.log.Debug("Rejected block",
			logfields.Block, text,
			logfields.ErrorKind, resp.Kind,
			logfields.Error, err,
		)
		s.writeJSON(w, http.StatusBadRequest, resp)
		return cidr.Block{}, false
	}
	return b, true
}

func alwaysPrefix(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("Failed to write response", logfields.Error, err)
	}
}
