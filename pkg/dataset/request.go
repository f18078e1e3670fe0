package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/exprgen/pkg/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Request describes a dataset build.
type Request struct {
	Valid     int `json:"valid" mapstructure:"valid" validate:"gte=0"`
	Invalid   int `json:"invalid" mapstructure:"invalid" validate:"gte=0"`
	MaxLength int `json:"max_length" mapstructure:"max_length" validate:"gt=0"`
}

// Validate checks the request bounds.
func (r Request) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s must be %s %s", fe.Field(), comparison(fe.Tag()), fe.Param()))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, strings.Join(msgs, "; "))
}

func comparison(tag string) string {
	switch tag {
	case "gt":
		return "greater than"
	case "gte":
		return "at least"
	case "lt":
		return "less than"
	case "lte":
		return "at most"
	}
	return tag
}
