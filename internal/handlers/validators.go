package handlers

import (
	"time"

	"github.com/flujoapp/flujo_backend/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs custom binding validators on gin's validator
// engine. Call once at startup before routes are served.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("calendardate", validCalendarDate)
}

// validCalendarDate accepts strings in YYYY-MM-DD form. Empty strings are
// handled by the required/omitempty tags, not here.
func validCalendarDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(domain.DateFormat, fl.Field().String())
	return err == nil
}
