package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rxtech-lab/argo-indicators/internal/config"
	"github.com/rxtech-lab/argo-indicators/internal/indicator"
	"github.com/rxtech-lab/argo-indicators/internal/overlay"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/internal/version"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/rxtech-lab/argo-indicators/pkg/marketdata"
	"go.uber.org/zap"
)

const maxBodyBytes = 16 << 20

// ComputeRequest is the body of POST /indicators/compute.
type ComputeRequest struct {
	Bars         marketdata.Bars          `json:"bars" validate:"required"`
	Indicators   []config.IndicatorConfig `json:"indicators" validate:"required,min=1,dive"`
	FilterFinite bool                     `json:"filter_finite,omitempty"`
}

// FetchRequest is the body of POST /indicators/fetch.
type FetchRequest struct {
	marketdata.StockDataRequest
	Indicators   []config.IndicatorConfig `json:"indicators" validate:"required,min=1,dive"`
	FilterFinite bool                     `json:"filter_finite,omitempty"`
}

// IndicatorInfo describes one registered indicator.
type IndicatorInfo struct {
	Type     types.IndicatorType `json:"type"`
	Name     string              `json:"name"`
	Label    string              `json:"label"`
	Pane     overlay.Pane        `json:"pane"`
	Defaults indicator.Params    `json:"defaults"`
	Options  []string            `json:"options"`
	Lines    []string            `json:"lines"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string           `json:"error"`
	Code  errors.ErrorCode `json:"code"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"version":        version.GetVersion(),
		"config_version": version.ConfigVersion,
	})
}

func (s *Server) handleListIndicators(w http.ResponseWriter, _ *http.Request) {
	descriptors := s.builder.Registry().ListIndicators()

	infos := make([]IndicatorInfo, 0, len(descriptors))
	for _, d := range descriptors {
		infos = append(infos, IndicatorInfo{
			Type:     d.Type,
			Name:     d.Name,
			Label:    overlay.Label(d, d.Defaults),
			Pane:     overlay.PaneFor(d.Type),
			Defaults: d.Defaults,
			Options:  d.Options,
			Lines:    d.Lines,
		})
	}

	s.writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	indicatorType, ok := types.ParseIndicatorType(name)
	if !ok {
		s.writeError(w, errors.Newf(errors.ErrCodeIndicatorNotFound, "unknown indicator %q", name))

		return
	}

	descriptor, err := s.builder.Registry().GetIndicator(indicatorType)
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, descriptor.Schema())
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)

		return
	}

	result, err := s.builder.Build(req.Bars, req.Indicators)
	if err != nil {
		s.writeError(w, err)

		return
	}

	if req.FilterFinite {
		result = result.FilterFinite()
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	if s.source == nil {
		s.writeError(w, errors.New(errors.ErrCodeDataSourceUnavailable, "no market data backend configured"))

		return
	}

	var req FetchRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)

		return
	}

	if err := req.StockDataRequest.Validate(); err != nil {
		s.writeError(w, err)

		return
	}

	result, err := s.builder.Fetch(r.Context(), s.source, req.StockDataRequest, req.Indicators)
	if err != nil {
		s.writeError(w, err)

		return
	}

	if req.FilterFinite {
		result = result.FilterFinite()
	}

	s.writeJSON(w, http.StatusOK, result)
}

// decode reads a JSON body into v and validates it.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid request body", err)
	}

	if err := validator.New().Struct(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid request", err)
	}

	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("Failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()

	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", zap.Error(err))
	}

	s.writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}
