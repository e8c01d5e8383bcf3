// Package validation holds the pure input validators. Each validator takes
// a raw input record and returns a field-keyed error map plus an ok flag.
// Missing fields count as empty strings, every failing field is reported in
// one pass, and a validator never errors out on its own.
package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Errors maps a field name to a human-readable message.
type Errors map[string]string

func isEmail(s string) bool {
	return validate.Var(s, "email") == nil
}

func isURL(s string) bool {
	return validate.Var(s, "url") == nil
}

func lengthBetween(s string, min, max int) bool {
	return validate.Var(s, fmt.Sprintf("min=%d,max=%d", min, max)) == nil
}
