package httpapi

import (
	"net/http"

	"restaurante-backend/internal/domain"
)

func (h *Handler) listTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.svc.Tables.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}

func (h *Handler) listAvailableTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.svc.Tables.ListAvailable(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}

func (h *Handler) tableStatus(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.Tables.Status(r.Context(), userFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) getTable(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	table, err := h.svc.Tables.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (h *Handler) createTable(w http.ResponseWriter, r *http.Request) {
	var req domain.TableCreate
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	table, err := h.svc.Tables.Create(r.Context(), userFrom(r), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, table)
}

func (h *Handler) updateTable(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var upd domain.TableUpdate
	if err := decodeBody(r, &upd); err != nil {
		writeError(w, err)
		return
	}
	table, err := h.svc.Tables.Update(r.Context(), userFrom(r), id, upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (h *Handler) moveTable(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var pos domain.TablePosition
	if err := decodeBody(r, &pos); err != nil {
		writeError(w, err)
		return
	}
	table, err := h.svc.Tables.UpdatePosition(r.Context(), userFrom(r), id, pos)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (h *Handler) deleteTable(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.Tables.Delete(r.Context(), userFrom(r), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
