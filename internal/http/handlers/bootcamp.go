package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Paolahz1/bootcamp-capability/internal/domain"
	"github.com/Paolahz1/bootcamp-capability/internal/http/response"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
	"github.com/Paolahz1/bootcamp-capability/internal/services"
)

type BootcampHandler struct {
	log       *logger.Logger
	bootcamps services.BootcampService
}

func NewBootcampHandler(log *logger.Logger, bootcamps services.BootcampService) *BootcampHandler {
	return &BootcampHandler{log: log.With("handler", "BootcampHandler"), bootcamps: bootcamps}
}

type createBootcampRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	StartDate     string  `json:"startDate" binding:"required"`
	EndDate       string  `json:"endDate" binding:"required"`
	CapabilityIDs []int64 `json:"capabilityIds" binding:"required"`
}

// POST /api/bootcamps
func (h *BootcampHandler) Create(c *gin.Context) {
	var req createBootcampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	created, err := h.bootcamps.Create(c.Request.Context(), &domain.Bootcamp{
		Name:          req.Name,
		Description:   req.Description,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		CapabilityIDs: req.CapabilityIDs,
	})
	if err != nil {
		h.log.Error("create bootcamp failed", "name", req.Name, "error", err)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, created)
}

// GET /api/bootcamps
func (h *BootcampHandler) List(c *gin.Context) {
	page, size, sortBy, direction := pageParams(c)

	result, err := h.bootcamps.List(c.Request.Context(), page, size, sortBy, direction)
	if err != nil {
		h.log.Error("list bootcamps failed", "error", err)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, result)
}

// DELETE /api/bootcamps/:id
func (h *BootcampHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_bootcamp_id", err)
		return
	}

	if err := h.bootcamps.Delete(c.Request.Context(), id); err != nil {
		h.log.Error("delete bootcamp failed", "bootcamp_id", id, "error", err)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondNoContent(c)
}

type createEnrollmentRequest struct {
	PersonID   int64 `json:"personId" binding:"required"`
	BootcampID int64 `json:"bootcampId" binding:"required"`
}

// POST /api/enrollments
func (h *BootcampHandler) Enroll(c *gin.Context) {
	var req createEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	if err := h.bootcamps.Enroll(c.Request.Context(), req.PersonID, req.BootcampID); err != nil {
		h.log.Error("enrollment failed",
			"person_id", req.PersonID, "bootcamp_id", req.BootcampID, "error", err)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"personId": req.PersonID, "bootcampId": req.BootcampID})
}
