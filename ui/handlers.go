package ui

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"

	"datasense/app"
	"datasense/internal/errors"
)

// maxUploadBytes caps the accepted file size at 32 MiB
const maxUploadBytes = 32 << 20

// handleUpload accepts a multipart file, parses and profiles it, and
// returns the dataset profile
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, errors.InvalidInput("expected multipart form upload"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, errors.InvalidInput("missing form file 'file'"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		s.writeError(w, errors.Wrap(err, "failed to read upload"))
		return
	}

	ds, err := s.datasets.ProcessUpload(r.Context(), header.Filename, data)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, ds)
}

// handleProfile returns the cached profile of one dataset
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	ds, err := s.datasets.Get(chi.URLParam(r, "datasetID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ds)
}

// handleSummary renders the dataset summary block as HTML
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ds, err := s.datasets.Get(chi.URLParam(r, "datasetID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	html := markdown.ToHTML([]byte(app.SummaryBlock(ds)), nil, nil)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(html)
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Interpretation interface{} `json:"interpretation"`
	Result         interface{} `json:"result"`
}

// handleAsk interprets a natural-language question against the dataset
// schema and resolves it to a calculation context
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	ds, err := s.datasets.Get(chi.URLParam(r, "datasetID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Question == "" {
		s.writeError(w, errors.InvalidInput("expected JSON body with a 'question' field"))
		return
	}

	interpretation := s.bridge.Interpret(r.Context(), ds.ID, req.Question, ds.Columns)
	resolution := s.bridge.Resolve(interpretation, ds.Table, ds.Columns)

	s.writeJSON(w, http.StatusOK, askResponse{
		Interpretation: interpretation,
		Result:         resolution,
	})
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var envelope errorEnvelope
	envelope.Error.Code = errors.GetCode(err)
	envelope.Error.Message = err.Error()

	status := http.StatusInternalServerError
	switch envelope.Error.Code {
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeInvalidInput, errors.CodeParseError:
		status = http.StatusBadRequest
	case errors.CodeExternalService:
		status = http.StatusBadGateway
	}

	s.logger.Warn("request failed: %s (%s)", envelope.Error.Message, envelope.Error.Code)
	s.writeJSON(w, status, envelope)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response: %v", err)
	}
}
