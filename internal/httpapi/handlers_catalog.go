package httpapi

import (
	"net/http"
	"strconv"

	"restaurante-backend/internal/domain"
	"restaurante-backend/internal/repository"
)

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	category, err := h.svc.Categories.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req domain.CategoryCreate
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	category, err := h.svc.Categories.Create(r.Context(), userFrom(r), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var upd domain.CategoryUpdate
	if err := decodeBody(r, &upd); err != nil {
		writeError(w, err)
		return
	}
	category, err := h.svc.Categories.Update(r.Context(), userFrom(r), id, upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.Categories.Delete(r.Context(), userFrom(r), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	f := repository.ProductFilter{
		Skip:  queryInt(r, "skip", 0),
		Limit: queryInt(r, "limit", 100),
	}
	if v := r.URL.Query().Get("category_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.CategoryID = &id
		}
	}
	if v := r.URL.Query().Get("available"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Available = &b
		}
	}
	products, err := h.svc.Products.List(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	product, err := h.svc.Products.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req domain.ProductCreate
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	product, err := h.svc.Products.Create(r.Context(), userFrom(r), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var upd domain.ProductUpdate
	if err := decodeBody(r, &upd); err != nil {
		writeError(w, err)
		return
	}
	product, err := h.svc.Products.Update(r.Context(), userFrom(r), id, upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.Products.Delete(r.Context(), userFrom(r), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listExtras(w http.ResponseWriter, r *http.Request) {
	f := repository.ExtraFilter{}
	if v := r.URL.Query().Get("category"); v != "" {
		f.Category = &v
	}
	if v := r.URL.Query().Get("available"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Available = &b
		}
	}
	if v := r.URL.Query().Get("free"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Free = &b
		}
	}
	extras, err := h.svc.Extras.List(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, extras)
}

func (h *Handler) getExtra(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	extra, err := h.svc.Extras.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, extra)
}

func (h *Handler) createExtra(w http.ResponseWriter, r *http.Request) {
	var req domain.ExtraCreate
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	extra, err := h.svc.Extras.Create(r.Context(), userFrom(r), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, extra)
}

func (h *Handler) updateExtra(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var upd domain.ExtraUpdate
	if err := decodeBody(r, &upd); err != nil {
		writeError(w, err)
		return
	}
	extra, err := h.svc.Extras.Update(r.Context(), userFrom(r), id, upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, extra)
}

func (h *Handler) deleteExtra(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.Extras.Delete(r.Context(), userFrom(r), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
