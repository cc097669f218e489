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

type TenantHandler struct {
	documentHandler
}

func SetupTenantRoutes(mux *http.ServeMux, s store.Store, logger *zap.SugaredLogger) {
	handler := TenantHandler{
		documentHandler{store: s, logger: logger},
	}
	mux.HandleFunc("GET /api/tenants/{$}", handler.getAll)
	mux.HandleFunc("POST /api/add_tenant", handler.create)
	mux.HandleFunc("DELETE /api/remove_tenant/{tenant_id}", handler.delete)
	mux.HandleFunc("POST /api/update_tenant_apt/{tenant_id}", handler.updateApartment)
}

func (t *TenantHandler) getAll(w http.ResponseWriter, r *http.Request) {
	t.list(w, r, models.TenantsCollection)
}

func (t *TenantHandler) create(w http.ResponseWriter, r *http.Request) {
	t.insert(w, r, models.TenantsCollection)
}

func (t *TenantHandler) delete(w http.ResponseWriter, r *http.Request) {
	tenantID := r.PathValue("tenant_id")
	key, ok := t.lookup(w, r, tenantID)
	if !ok {
		return
	}
	if err := t.store.Delete(r.Context(), models.TenantsCollection, key); err != nil {
		t.writeWriteError(w, tenantID, err)
		return
	}
	t.logger.Infof("Removed tenant %s", tenantID)
	helper.WriteJsonMessage(w, http.StatusOK, dto.TenantRemovedMessage)
}

// updateApartment merges any supplied fields, not only the apartment.
func (t *TenantHandler) updateApartment(w http.ResponseWriter, r *http.Request) {
	tenantID := r.PathValue("tenant_id")
	key, ok := t.lookup(w, r, tenantID)
	if !ok {
		return
	}
	updates, ok := readDocument(w, r)
	if !ok {
		return
	}
	if err := t.store.Merge(r.Context(), models.TenantsCollection, key, updates); err != nil {
		t.writeWriteError(w, tenantID, err)
		return
	}
	t.logger.Infof("Updated tenant %s", tenantID)
	helper.WriteJsonMessage(w, http.StatusOK, dto.TenantMovedMessage)
}

func (t *TenantHandler) lookup(w http.ResponseWriter, r *http.Request, tenantID string) (string, bool) {
	key, _, err := t.store.FindOne(r.Context(), models.TenantsCollection, models.TenantIDField, tenantID)
	if errors.Is(err, store.ErrNotFound) {
		helper.WriteJsonError(w, http.StatusNotFound, dto.TenantNotFoundMessage)
		return "", false
	}
	if err != nil {
		t.logger.Errorf("Database error finding tenant %s: %v", tenantID, err)
		helper.WriteJsonError(w, http.StatusInternalServerError, err.Error())
		return "", false
	}
	return key, true
}

// writeWriteError reports a failed delete or merge. The document may have
// been removed between lookup and write, which is still a not-found.
func (t *TenantHandler) writeWriteError(w http.ResponseWriter, tenantID string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		helper.WriteJsonError(w, http.StatusNotFound, dto.TenantNotFoundMessage)
		return
	}
	t.logger.Errorf("Database error writing tenant %s: %v", tenantID, err)
	helper.WriteJsonError(w, http.StatusInternalServerError, err.Error())
}
