package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/pkg/validation"
)

// HandleBindingError reports a request that failed to bind or failed its binding tags
func HandleBindingError(c *gin.Context, err error) {
	detail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format")

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := dto.NewValidationErrors()
		for _, fe := range verrs {
			fields.AddError(jsonField(fe), formatValidationError(fe))
		}
		detail = dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").
			WithDetails(fields.Errors)
		if len(verrs) == 1 {
			detail = detail.WithField(jsonField(verrs[0]))
		}
	} else {
		detail = detail.WithDetails(err.Error())
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}

// jsonField lower-cases the first letter of the struct field name, matching the camelCase json tags
func jsonField(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	field := jsonField(e)
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + e.Param()
	case "max":
		return field + " must be at most " + e.Param()
	case "len":
		return field + " must be exactly " + e.Param() + " characters"
	case "numeric":
		return field + " must be numeric"
	case validation.TagGraduationYear:
		return field + " must be a four-digit year"
	case validation.TagNotBlank:
		return field + " must not be blank"
	case "oneof":
		return field + " must be one of: " + e.Param()
	default:
		return field + " validation failed: " + e.Tag()
	}
}
