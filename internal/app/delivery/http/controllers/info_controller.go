package controllers

import (
	"net/http"
	"patient-record-service/internal/pkg/constvars"
	"patient-record-service/internal/pkg/utils"
)

type InfoController struct {
	Version string
}

func NewInfoController(version string) *InfoController {
	return &InfoController{Version: version}
}

func (ctrl *InfoController) Home(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppBannerMessage, nil)
}

func (ctrl *InfoController) About(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppAboutMessage, nil)
}

func (ctrl *InfoController) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, map[string]string{
		"version": ctrl.Version,
	})
}
