package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"gsheet/pkg/transport"
	"gsheet/pkg/worksheet"
)

// Sheet is the worksheet surface the handlers need.
type Sheet interface {
	Row(ctx context.Context, row int, o worksheet.SliceOptions) ([]string, error)
	Column(ctx context.Context, col int, o worksheet.SliceOptions) ([]string, error)
	InsertRow(ctx context.Context, row int, values []interface{}, o worksheet.SliceOptions) error
	InsertColumn(ctx context.Context, col int, values []interface{}, o worksheet.SliceOptions) error
	ValueByRef(ctx context.Context, ref string) (string, error)
	UpdateValueByRef(ctx context.Context, ref string, value interface{}) error
	RowMap(ctx context.Context, row int, o worksheet.MapOptions) (map[string]string, error)
	InsertRowMap(ctx context.Context, row int, m map[string]interface{}, o worksheet.MapOptions) error
}

type handler struct {
	sheet Sheet
}

func sendResponse(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func sendJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		sendResponse(w, http.StatusInternalServerError, []byte(`{"error":"encoding failure"}`))
		return
	}
	sendResponse(w, status, body)
}

func sendError(w http.ResponseWriter, err error) {
	log.Debugf("request failed: %v", err)
	status := http.StatusInternalServerError
	var re *transport.RemoteError
	switch {
	case errors.Is(err, worksheet.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.As(err, &re):
		status = http.StatusBadGateway
	}
	sendJSON(w, status, map[string]string{"error": err.Error()})
}

// slice windowing from query parameters; absent values keep the
// defaults (from 1, to the end).
func sliceOptions(r *http.Request) worksheet.SliceOptions {
	var o worksheet.SliceOptions
	if v, err := strconv.Atoi(r.URL.Query().Get("from")); err == nil {
		o.From = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("length")); err == nil {
		o.Length = v
	}
	return o
}

func mapOptions(r *http.Request) worksheet.MapOptions {
	q := r.URL.Query()
	var o worksheet.MapOptions
	if v, err := strconv.Atoi(q.Get("mapTo")); err == nil {
		o.MapTo = v
	}
	o.AppendMissing = q.Get("appendMissing") == "true"
	o.Overwrite = q.Get("overwrite") == "true"
	return o
}

func indexParam(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || v < 1 {
		return 0, errors.New("index must be a positive integer")
	}
	return v, nil
}

func (h *handler) getRow(w http.ResponseWriter, r *http.Request) {
	row, err := indexParam(r, "row")
	if err != nil {
		sendJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	values, err := h.sheet.Row(r.Context(), row, sliceOptions(r))
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, values)
}

func (h *handler) putRow(w http.ResponseWriter, r *http.Request) {
	row, err := indexParam(r, "row")
	if err != nil {
		sendJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var values []interface{}
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		sendJSON(w, http.StatusBadRequest, map[string]string{"error": "body must be a JSON array"})
		return
	}
	if err := h.sheet.InsertRow(r.Context(), row, values, sliceOptions(r)); err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]int{"row": row})
}

func (h *handler) getColumn(w http.ResponseWriter, r *http.Request) {
	col, err := indexParam(r, "col")
	if err != nil {
		sendJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	values, err := h.sheet.Column(r.Context(), col, sliceOptions(r))
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, values)
}

func (h *handler) putColumn(w http.ResponseWriter, r *http.Request) {
	col, err := indexParam(r, "col")
	if err != nil {
		sendJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var values []interface{}
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		sendJSON(w, http.StatusBadRequest, map[string]string{"error": "body must be a JSON array"})
		return
	}
	if err := h.sheet.InsertColumn(r.Context(), col, values, sliceOptions(r)); err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]int{"column": col})
}

func (h *handler) getCell(w http.ResponseWriter, r *http.Request) {
	value, err := h.sheet.ValueByRef(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"value": value})
}

func (h *handler) putCell(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value interface{} `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		sendJSON(w, http.StatusBadRequest, map[string]string{"error": "body must carry a value"})
		return
	}
	if err := h.sheet.UpdateValueByRef(r.Context(), chi.URLParam(r, "ref"), body.Value); err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

func (h *handler) getRowMap(w http.ResponseWriter, r *http.Request) {
	row, err := indexParam(r, "row")
	if err != nil {
		sendJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	m, err := h.sheet.RowMap(r.Context(), row, mapOptions(r))
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, m)
}

func (h *handler) putRowMap(w http.ResponseWriter, r *http.Request) {
	row, err := indexParam(r, "row")
	if err != nil {
		sendJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var m map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		sendJSON(w, http.StatusBadRequest, map[string]string{"error": "body must be a JSON object"})
		return
	}
	if err := h.sheet.InsertRowMap(r.Context(), row, m, mapOptions(r)); err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]int{"row": row})
}
