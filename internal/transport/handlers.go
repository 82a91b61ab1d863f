package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mariovida/list-backend/internal/storage"
)

type createListRequest struct {
	Name string `json:"name"`
}

type addItemRequest struct {
	Item     string `json:"item"`
	Quantity *int   `json:"quantity"`
}

type removeItemRequest struct {
	Item string `json:"item"`
}

type setCheckedRequest struct {
	Checked *bool `json:"checked"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (s *Server) createList(w http.ResponseWriter, r *http.Request) {
	var req createListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	list, err := s.svc.CreateList(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": list.ID})
}

func (s *Server) getList(w http.ResponseWriter, r *http.Request) {
	listID := mux.Vars(r)["id"]

	list, err := s.svc.GetList(r.Context(), listID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"name":       list.Name,
		"created_at": list.CreatedAt,
		"items":      list.Items,
	})
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	listID := mux.Vars(r)["id"]

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := s.svc.AddItem(r.Context(), listID, req.Item, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "itemId": item.ID})
}

func (s *Server) removeItemByContent(w http.ResponseWriter, r *http.Request) {
	listID := mux.Vars(r)["id"]

	var req removeItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.svc.RemoveItemByContent(r.Context(), listID, req.Item); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	listID, itemID, ok := itemVars(w, r)
	if !ok {
		return
	}

	if err := s.svc.RemoveItem(r.Context(), listID, itemID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) setChecked(w http.ResponseWriter, r *http.Request) {
	listID, itemID, ok := itemVars(w, r)
	if !ok {
		return
	}

	var req setCheckedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Checked == nil {
		writeErrorMessage(w, http.StatusBadRequest, "checked is required")
		return
	}

	if err := s.svc.SetItemChecked(r.Context(), listID, itemID, *req.Checked); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) setQuantity(w http.ResponseWriter, r *http.Request) {
	listID, itemID, ok := itemVars(w, r)
	if !ok {
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		writeErrorMessage(w, http.StatusBadRequest, "quantity is required")
		return
	}

	if err := s.svc.SetItemQuantity(r.Context(), listID, itemID, *req.Quantity); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// itemVars extracts the list token and numeric item ID from the route.
func itemVars(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	vars := mux.Vars(r)
	itemID, err := strconv.ParseInt(vars["itemID"], 10, 64)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid item id")
		return "", 0, false
	}
	return vars["id"], itemID, true
}

// writeError maps store error kinds to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, storage.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}
	writeErrorMessage(w, status, err.Error())
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
