package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"ai-interviewprep-be/internal/pkg/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation on a request DTO and converts
// failures into the InvalidRequest taxonomy.
func ValidateRequest(req any) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return apperr.Invalid("Invalid request: " + strings.Join(fields, ", "))
		}
		return apperr.Wrap(apperr.KindInvalidRequest, "Invalid request", err)
	}
	return nil
}
