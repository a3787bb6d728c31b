package http

import (
	"net/http"

	"github.com/MKhiriev/mini-capstone/internal/logger"
	"github.com/MKhiriev/mini-capstone/internal/utils"
)

type versionResponse struct {
	Version     string `json:"version"`
	BuildDate   string `json:"build_date,omitempty"`
	BuildCommit string `json:"build_commit,omitempty"`
}

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	buildInfo := h.services.AppInfoService.GetBuildInfo(ctx)

	if _, err := utils.WriteJSON(w, versionResponse{
		Version:     h.services.AppInfoService.GetAppVersion(ctx),
		BuildDate:   buildInfo.BuildDate(),
		BuildCommit: buildInfo.BuildCommit(),
	}, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getServerVersion").Send()
	}
}
