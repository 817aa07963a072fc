package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cutlist/compiler"
	"cutlist/export"
	"cutlist/fcp"
	"cutlist/selection"
)

const maxBodyBytes = 32 << 20

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))
	r.Post("/preview", previewHandler(cfg))
	r.Post("/compile", compileHandler(cfg))
	r.Post("/export/{format}", exportHandler(cfg))
	r.Get("/selections", listSelectionsHandler(cfg))
	r.Get("/selections/{name}", getSelectionHandler(cfg))

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: Version,
			UptimeS: int64(time.Since(cfg.StartTime).Seconds()),
		})
	}
}

func previewHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PreviewRequest
		if !decodeBody(w, r, &req) {
			return
		}
		rows, err := compiler.Preview(req.Timeline, req.Segments)
		if err != nil {
			writeCompileError(w, cfg, err)
			return
		}
		WriteJSON(w, http.StatusOK, PreviewResponse{Rows: rows})
	}
}

func compileHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := newCompileRequest(cfg)
		if !decodeBody(w, r, &req) {
			return
		}
		res, ok := compile(w, cfg, req)
		if !ok {
			return
		}
		dropped := res.Dropped
		if dropped == nil {
			dropped = []compiler.Drop{}
		}
		WriteJSON(w, http.StatusOK, CompileResponse{
			Cuts:        res.Cuts,
			Matched:     res.Matched,
			Dropped:     dropped,
			TotalFrames: res.TotalFrames(),
		})
	}
}

// exportHandler compiles the request and returns the cut list in one of the
// export formats: fcpxml, edl, srt or vtt.
func exportHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := chi.URLParam(r, "format")
		switch format {
		case "fcpxml", "edl", "srt", "vtt":
		default:
			WriteError(w, http.StatusBadRequest, "format must be one of fcpxml, edl, srt, vtt", "BAD_REQUEST")
			return
		}

		req := newCompileRequest(cfg)
		if !decodeBody(w, r, &req) {
			return
		}
		res, ok := compile(w, cfg, req)
		if !ok {
			return
		}

		title := export.SanitizeName(req.Title, 120)
		if title == "" {
			title = "cutlist"
		}
		fps := req.Timeline.FrameRate

		var body []byte
		contentType := "text/plain; charset=utf-8"
		switch format {
		case "fcpxml":
			doc := export.FCPXML(res.Cuts, fps, req.Timeline.Width, req.Timeline.Height, title)
			data, err := fcp.Marshal(doc)
			if err != nil {
				cfg.Logger.Error("fcpxml marshal failed", zap.Error(err))
				WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
				return
			}
			body = data
			contentType = "application/xml"
		case "edl":
			body = []byte(export.EDL(res.Cuts, title, fps))
		case "srt":
			body = []byte(export.SRT(res.Cuts, fps))
			contentType = "application/x-subrip"
		case "vtt":
			body = []byte(export.VTT(res.Cuts, fps))
			contentType = "text/vtt"
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+title+"."+format+`"`)
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}

func listSelectionsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.Store == nil {
			WriteJSON(w, http.StatusOK, SelectionsResponse{Selections: []SelectionResponse{}})
			return
		}
		sels, err := cfg.Store.List(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		out := make([]SelectionResponse, 0, len(sels))
		for _, s := range sels {
			out = append(out, toSelectionResponse(s))
		}
		WriteJSON(w, http.StatusOK, SelectionsResponse{Selections: out})
	}
}

func getSelectionHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.Store == nil {
			WriteError(w, http.StatusNotFound, "no selection store configured", "NOT_FOUND")
			return
		}
		sel, err := cfg.Store.Get(chi.URLParam(r, "name"))
		if err != nil {
			if errors.Is(err, selection.ErrNotFound) {
				WriteError(w, http.StatusNotFound, err.Error(), "NOT_FOUND")
				return
			}
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusOK, toSelectionResponse(sel))
	}
}

// newCompileRequest seeds the options with the server defaults so a partial
// options object only overrides the fields it names.
func newCompileRequest(cfg ServerConfig) CompileRequest {
	opts := cfg.Options
	return CompileRequest{Options: &opts}
}

// compile resolves the selection and options of a request and runs the
// compiler. It writes the error response itself and reports whether to go on.
func compile(w http.ResponseWriter, cfg ServerConfig, req CompileRequest) (compiler.Result, bool) {
	ids := req.Selected
	if req.Selection != "" {
		if cfg.Store == nil {
			WriteError(w, http.StatusBadRequest, "saved selections are not available", "BAD_REQUEST")
			return compiler.Result{}, false
		}
		sel, err := cfg.Store.Get(req.Selection)
		if err != nil {
			if errors.Is(err, selection.ErrNotFound) {
				WriteError(w, http.StatusNotFound, err.Error(), "NOT_FOUND")
				return compiler.Result{}, false
			}
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return compiler.Result{}, false
		}
		ids = append(append([]int{}, ids...), sel.IDs...)
	}

	opts := cfg.Options
	if req.Options != nil {
		opts = *req.Options
	}

	res, err := compiler.Compile(req.Timeline, req.Segments, ids, opts)
	if err != nil {
		writeCompileError(w, cfg, err)
		return compiler.Result{}, false
	}
	for _, d := range res.Dropped {
		cfg.Logger.Debug("segment dropped",
			zap.Int("segment_id", d.SegmentID),
			zap.Stringer("reason", d.Reason),
		)
	}
	return res, true
}

func writeCompileError(w http.ResponseWriter, cfg ServerConfig, err error) {
	switch {
	case errors.Is(err, compiler.ErrInvalidTimebase), errors.Is(err, compiler.ErrInvalidOptions):
		WriteError(w, http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	case errors.Is(err, compiler.ErrEmptySelection):
		WriteError(w, http.StatusUnprocessableEntity, err.Error(), "EMPTY_SELECTION")
	default:
		cfg.Logger.Error("compile failed", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return false
	}
	return true
}

func toSelectionResponse(s selection.Selection) SelectionResponse {
	ids := s.IDs
	if ids == nil {
		ids = []int{}
	}
	return SelectionResponse{Name: s.Name, Goal: s.Goal, IDs: ids}
}
