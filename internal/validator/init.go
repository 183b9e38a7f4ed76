package validator

import (
	"ctchen222/N-In-A-Row/pkg/proto"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	// Initialize validation
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names, which is what clients send
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterStructValidation(moveHasPosition, proto.ClientToServerMessage{})
}

func GetValidator() *validator.Validate {
	return validate
}

func moveHasPosition(sl validator.StructLevel) {
	msg := sl.Current().Interface().(proto.ClientToServerMessage)
	if msg.Type == proto.TypeMove && len(msg.Position) == 0 {
		sl.ReportError(msg.Position, "position", "Position", "required_for_move", "")
	}
}
