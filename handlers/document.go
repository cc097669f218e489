package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"maintenance-service/dto"
	"maintenance-service/helper"
	"maintenance-service/models"
	"maintenance-service/store"
)

// documentHandler holds what every collection handler needs.
type documentHandler struct {
	store  store.Store
	logger *zap.SugaredLogger
}

func (d *documentHandler) list(w http.ResponseWriter, r *http.Request, collection models.Collection) {
	docs, err := d.store.List(r.Context(), collection)
	if err != nil {
		d.logger.Errorf("Database error listing %s: %v", collection, err)
		helper.WriteJsonError(w, http.StatusInternalServerError, dto.DatabaseErrorMessage)
		return
	}
	helper.WriteJson(w, http.StatusOK, docs)
}

func (d *documentHandler) insert(w http.ResponseWriter, r *http.Request, collection models.Collection) {
	doc, ok := readDocument(w, r)
	if !ok {
		return
	}
	key, err := d.store.Insert(r.Context(), collection, doc)
	if err != nil {
		d.logger.Errorf("Database error inserting into %s: %v", collection, err)
		helper.WriteJsonError(w, http.StatusInternalServerError, dto.DatabaseErrorMessage)
		return
	}
	d.logger.Infof("Inserted document %s into %s", key, collection)
	helper.WriteJsonMessage(w, http.StatusOK, dto.DataReceivedMessage)
}

// readDocument decodes the body as a JSON object. On failure it has
// already written a 400 response.
func readDocument(w http.ResponseWriter, r *http.Request) (models.Document, bool) {
	var doc models.Document
	if err := helper.ReadJson(w, r, &doc); err != nil {
		helper.WriteJsonError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	if doc == nil {
		helper.WriteJsonError(w, http.StatusBadRequest, dto.NotObjectMessage)
		return nil, false
	}
	return doc, true
}
