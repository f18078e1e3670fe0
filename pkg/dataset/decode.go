package dataset

import (
	"fmt"

	"github.com/aretw0/exprgen/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// DecodeRequest builds a Request from untyped arguments, such as a decoded
// JSON body or tool call parameters. Numeric strings are accepted.
func DecodeRequest(args map[string]any) (Request, error) {
	var req Request
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &req,
	})
	if err != nil {
		return req, err
	}
	if err := decoder.Decode(args); err != nil {
		return req, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	return req, req.Validate()
}
