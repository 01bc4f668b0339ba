package httpapi

import (
	"fmt"
	"net/http"

	"restaurante-backend/internal/domain"
)

func (h *Handler) listProductReviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	reviews, err := h.svc.Reviews.ListByProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	var req domain.ReviewCreate
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	review, err := h.svc.Reviews.Create(r.Context(), userFrom(r), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *Handler) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.Reviews.Delete(r.Context(), userFrom(r), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listFavorites(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.Favorites.List(r.Context(), userFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) addFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "productID")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.Favorites.Add(r.Context(), userFrom(r), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "productID")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.Favorites.Remove(r.Context(), userFrom(r), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Manual notification triggers for the admin dashboard. They deliver
// synchronously and report whether any live channel took the message.

type notifyStatusRequest struct {
	Status string `json:"status"`
}

type notifyResponse struct {
	Delivered bool   `json:"delivered"`
	Message   string `json:"message"`
}

func (h *Handler) notifyOrderStatus(w http.ResponseWriter, r *http.Request) {
	if userFrom(r).Role != domain.RoleAdministrador {
		writeError(w, fmt.Errorf("sending notifications: %w", domain.ErrForbidden))
		return
	}
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req notifyStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if !domain.ValidStatus(req.Status) {
		writeError(w, fmt.Errorf("unknown status %q: %w", req.Status, domain.ErrInvalidRequest))
		return
	}
	delivered, err := h.dispatcher.NotifyStatusUpdate(r.Context(), orderID, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifyResponse{
		Delivered: delivered,
		Message:   domain.StatusMessage(req.Status),
	})
}

func (h *Handler) notifyOrderReady(w http.ResponseWriter, r *http.Request) {
	if userFrom(r).Role != domain.RoleAdministrador {
		writeError(w, fmt.Errorf("sending notifications: %w", domain.ErrForbidden))
		return
	}
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	delivered, err := h.dispatcher.NotifyOrderReady(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifyResponse{
		Delivered: delivered,
		Message:   domain.StatusMessage(domain.StatusListo),
	})
}

func (h *Handler) welcome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Bienvenido al API del restaurante"})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"database": "ok"}
	overall := "healthy"
	status := http.StatusOK

	if err := h.db.Ping(r.Context()); err != nil {
		checks["database"] = "unreachable"
		overall = "degraded"
		status = http.StatusServiceUnavailable
	}
	if h.rmq != nil {
		checks["rabbitmq"] = "ok"
		if err := h.rmq.Ping(); err != nil {
			checks["rabbitmq"] = "unreachable"
		}
	}
	writeJSON(w, status, map[string]any{"status": overall, "checks": checks})
}
