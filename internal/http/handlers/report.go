package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Paolahz1/bootcamp-capability/internal/http/response"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
	"github.com/Paolahz1/bootcamp-capability/internal/services"
)

type ReportHandler struct {
	log       *logger.Logger
	bootcamps services.BootcampService
}

func NewReportHandler(log *logger.Logger, bootcamps services.BootcampService) *ReportHandler {
	return &ReportHandler{log: log.With("handler", "ReportHandler"), bootcamps: bootcamps}
}

// GET /api/reports/top-bootcamp
func (h *ReportHandler) TopBootcamp(c *gin.Context) {
	top, err := h.bootcamps.Top(c.Request.Context())
	if err != nil {
		h.log.Error("top bootcamp lookup failed", "error", err)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, top)
}
