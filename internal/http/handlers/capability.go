package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Paolahz1/bootcamp-capability/internal/http/response"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
	"github.com/Paolahz1/bootcamp-capability/internal/services"
)

type CapabilityHandler struct {
	log  *logger.Logger
	caps services.CapabilityService
}

func NewCapabilityHandler(log *logger.Logger, caps services.CapabilityService) *CapabilityHandler {
	return &CapabilityHandler{log: log.With("handler", "CapabilityHandler"), caps: caps}
}

type createCapabilityRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	// No binding tag: a missing or null id list must reach the service and
	// fail its count rule, not generic request binding.
	TechnologyIDs []int64 `json:"technologyIds"`
}

// POST /api/capabilities
func (h *CapabilityHandler) Create(c *gin.Context) {
	var req createCapabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	created, err := h.caps.Create(c.Request.Context(), req.Name, req.Description, req.TechnologyIDs)
	if err != nil {
		h.log.Error("create capability failed", "name", req.Name, "error", err)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, created)
}

// GET /api/capabilities/:id
func (h *CapabilityHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_capability_id", err)
		return
	}

	row, err := h.caps.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, row)
}

// GET /api/capabilities
func (h *CapabilityHandler) List(c *gin.Context) {
	page, size, sortBy, direction := pageParams(c)

	result, err := h.caps.List(c.Request.Context(), page, size, sortBy, direction)
	if err != nil {
		h.log.Error("list capabilities failed", "error", err)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, result)
}

// GET /api/capabilities/by-ids?ids=1,2,3
func (h *CapabilityHandler) GetByIDs(c *gin.Context) {
	ids, err := parseIDList(c.Query("ids"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_capability_ids", err)
		return
	}

	rows, err := h.caps.GetByIDs(c.Request.Context(), ids)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/capabilities/count-by-technology/:technologyId
func (h *CapabilityHandler) CountByTechnology(c *gin.Context) {
	technologyID, err := strconv.ParseInt(c.Param("technologyId"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_technology_id", err)
		return
	}

	count, err := h.caps.CountByTechnology(c.Request.Context(), technologyID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"count": count})
}

// DELETE /api/capabilities/:id
func (h *CapabilityHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_capability_id", err)
		return
	}

	if err := h.caps.Delete(c.Request.Context(), id); err != nil {
		h.log.Error("delete capability failed", "capability_id", id, "error", err)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondNoContent(c)
}

func parseIDList(csv string) ([]int64, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, nil
	}
	parts := strings.Split(csv, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func pageParams(c *gin.Context) (page, size int, sortBy, direction string) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ = strconv.Atoi(c.DefaultQuery("size", "10"))
	sortBy = c.DefaultQuery("sortBy", "name")
	direction = c.DefaultQuery("direction", "ASC")
	return page, size, sortBy, direction
}
