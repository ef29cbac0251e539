// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// loader.go calls validateStruct right after unmarshalling the merged tree.
// Any failure aborts startup.  Besides the built-in rules, one custom rule
// is registered here:
//
//   - `dsn_password` accepts a DSN that either embeds its own credentials
//     or carries a single `%s` verb for the password injected from
//     `database.password`.
//
// Notes
// -----
//   - Oxford commas, two spaces after periods.

package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	_ = val.RegisterValidation("dsn_password", func(fl validator.FieldLevel) bool {
		dsn := fl.Field().String()
		if !strings.Contains(dsn, "@") {
			return false
		}
		return strings.Count(dsn, "%s") <= 1
	})
	return val
}

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}
