package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/shop-admin/internal/service"
)

type businessInfoHandler struct {
	businessInfoSvc service.BusinessInfoService
}

func newBusinessInfoHandler(businessInfoSvc service.BusinessInfoService) *businessInfoHandler {
	return &businessInfoHandler{
		businessInfoSvc: businessInfoSvc,
	}
}

func (h *businessInfoHandler) ListBusinessInfo(w http.ResponseWriter, r *http.Request) error {
	infos, err := h.businessInfoSvc.ListBusinessInfo(r.Context())
	if err != nil {
		return fmt.Errorf("business info service list business info: %w", err)
	}

	return writeJSON(w, http.StatusOK, infos)
}

func (h *businessInfoHandler) CreateBusinessInfo(w http.ResponseWriter, r *http.Request) error {
	var params service.CreateBusinessInfoParams
	if err := decodeJSON(w, r, &params); err != nil {
		return err
	}

	info, err := h.businessInfoSvc.CreateBusinessInfo(r.Context(), params)
	if err != nil {
		return fmt.Errorf("business info service create business info: %w", err)
	}

	return writeJSON(w, http.StatusCreated, info)
}

func (h *businessInfoHandler) GetBusinessInfo(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	info, err := h.businessInfoSvc.GetBusinessInfo(r.Context(), id)
	if err != nil {
		return fmt.Errorf("business info service get business info: %w", err)
	}

	return writeJSON(w, http.StatusOK, info)
}

func (h *businessInfoHandler) UpdateBusinessInfo(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	var params service.UpdateBusinessInfoParams
	if err := decodeJSON(w, r, &params); err != nil {
		return err
	}

	info, err := h.businessInfoSvc.UpdateBusinessInfo(r.Context(), id, params)
	if err != nil {
		return fmt.Errorf("business info service update business info: %w", err)
	}

	return writeJSON(w, http.StatusOK, info)
}
