package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"maintenance-service/dto"
	"maintenance-service/helper"
	"maintenance-service/models"
	"maintenance-service/store"
)

type RequestHandler struct {
	documentHandler
}

func SetupRequestRoutes(mux *http.ServeMux, s store.Store, logger *zap.SugaredLogger) {
	handler := RequestHandler{
		documentHandler{store: s, logger: logger},
	}
	mux.HandleFunc("GET /api/requests", handler.getAll)
	mux.HandleFunc("GET /api/requests_by_apt/{apt}", handler.getByApartment)
	mux.HandleFunc("POST /api/update_request/{request_id}", handler.update)
	// add_comment is kept for existing clients; it is the same operation.
	mux.HandleFunc("POST /api/add_comment/{request_id}", handler.update)
	mux.HandleFunc("POST /api/data", handler.create)
}

func (h *RequestHandler) getAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, models.RequestsCollection)
}

func (h *RequestHandler) getByApartment(w http.ResponseWriter, r *http.Request) {
	apt := r.PathValue("apt")
	docs, err := h.store.Find(r.Context(), models.RequestsCollection, models.ApartmentNumberField, apt)
	if err != nil {
		h.logger.Errorf("Database error fetching requests for apartment %s: %v", apt, err)
		helper.WriteJsonError(w, http.StatusInternalServerError, dto.DatabaseErrorMessage)
		return
	}
	helper.WriteJson(w, http.StatusOK, docs)
}

func (h *RequestHandler) create(w http.ResponseWriter, r *http.Request) {
	h.insert(w, r, models.RequestsCollection)
}

func (h *RequestHandler) update(w http.ResponseWriter, r *http.Request) {
	requestID := r.PathValue("request_id")
	key, _, err := h.store.FindOne(r.Context(), models.RequestsCollection, models.RequestIDField, requestID)
	if errors.Is(err, store.ErrNotFound) {
		helper.WriteJsonError(w, http.StatusNotFound, dto.RequestNotFoundMessage)
		return
	}
	if err != nil {
		h.logger.Errorf("Database error finding request %s: %v", requestID, err)
		helper.WriteJsonError(w, http.StatusInternalServerError, err.Error())
		return
	}

	updates, ok := readDocument(w, r)
	if !ok {
		return
	}
	if err := h.store.Merge(r.Context(), models.RequestsCollection, key, updates); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			helper.WriteJsonError(w, http.StatusNotFound, dto.RequestNotFoundMessage)
			return
		}
		h.logger.Errorf("Database error updating request %s: %v", requestID, err)
		helper.WriteJsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.logger.Infof("Updated request %s", requestID)
	helper.WriteJsonMessage(w, http.StatusOK, dto.RequestUpdatedMessage)
}
