package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// YearPattern is a four-digit calendar year
	YearPattern = regexp.MustCompile(`^\d{4}$`)
)

// Custom binding tags
const (
	TagGraduationYear = "gradyear"
	TagNotBlank       = "notblank"
)

// IsYear reports whether s is a four-digit year
func IsYear(s string) bool {
	return YearPattern.MatchString(s)
}

// Register adds the custom rules to v
func Register(v *validator.Validate) error {
	rules := map[string]validator.Func{
		TagGraduationYear: func(fl validator.FieldLevel) bool {
			// An empty string clears the year
			s := strings.TrimSpace(fl.Field().String())
			return s == "" || IsYear(s)
		},
		TagNotBlank: func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

// RegisterWithGin adds the custom rules to gin's binding validator
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	return Register(v)
}
