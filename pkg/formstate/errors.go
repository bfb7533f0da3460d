package formstate

import (
	"fmt"

	"github.com/goliatone/go-formstate/pkg/model"
)

// ContractError is the panic value raised when a caller passes an argument
// outside an operation's domain: an unknown key, a value the field cannot
// hold, a toggle on a non-set field or a rating outside [1,5]. Transports are
// expected to reject such input before it reaches the engine.
type ContractError struct {
	Op     string
	Field  model.FieldName
	Detail string
	Err    error
}

func (e *ContractError) Error() string {
	msg := fmt.Sprintf("formstate: %s(%s): %s", e.Op, e.Field, e.Detail)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ContractError) Unwrap() error {
	return e.Err
}

func violate(op string, field model.FieldName, detail string, err error) {
	panic(&ContractError{Op: op, Field: field, Detail: detail, Err: err})
}
