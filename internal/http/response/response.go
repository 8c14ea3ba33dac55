package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Paolahz1/bootcamp-capability/internal/domain"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// RespondDomainError translates domain errors into HTTP statuses. Handlers
// call this instead of switching on error types themselves. Unknown errors
// become an opaque 500; their detail stays in the logs only.
func RespondDomainError(c *gin.Context, err error) {
	var (
		capNotFound      *domain.CapabilityNotFoundError
		bootcampNotFound *domain.BootcampNotFoundError
		invalid          *domain.InvalidCapabilityError
		inUse            *domain.CapabilityInUseError
		external         *domain.ExternalServiceError
	)
	switch {
	case errors.As(err, &capNotFound):
		RespondError(c, http.StatusNotFound, "capability_not_found", err)
	case errors.As(err, &bootcampNotFound):
		RespondError(c, http.StatusNotFound, "bootcamp_not_found", err)
	case errors.As(err, &invalid):
		RespondError(c, http.StatusBadRequest, string(invalid.Reason), err)
	case errors.As(err, &inUse):
		RespondError(c, http.StatusBadRequest, "capability_in_use", err)
	case errors.As(err, &external):
		RespondError(c, http.StatusServiceUnavailable, "external_service_failure", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error",
			errors.New("internal error"))
	}
}
