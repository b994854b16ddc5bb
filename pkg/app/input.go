package app

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"tableflip.dev/satcat/pkg/node"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// NodeInput carries the editable fields of a node.
type NodeInput struct {
	Name        string `json:"name" validate:"required"`
	Icon        string `json:"icon,omitempty"`
	Type        string `json:"type,omitempty"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

// InputFrom returns the editable fields of n.
func InputFrom(n *node.Node) NodeInput {
	if n == nil {
		return NodeInput{}
	}
	return NodeInput{Name: n.Name, Icon: n.Icon, Type: n.Type, Image: n.Image, Description: n.Description}
}

// ValidationError reports an input field that failed validation.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("app: %s is required", e.Field)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// clean trims the single-line fields and validates the result. Descriptions
// are stored as given.
func (in NodeInput) clean() (NodeInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Icon = strings.TrimSpace(in.Icon)
	in.Type = strings.TrimSpace(in.Type)
	in.Image = strings.TrimSpace(in.Image)

	if err := validate.Struct(in); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) && len(fields) > 0 {
			return in, &ValidationError{Field: fields[0].Field(), Err: err}
		}
		return in, &ValidationError{Field: "input", Err: err}
	}
	return in, nil
}

// apply copies the input onto n, filling a blank icon with node.DefaultIcon.
func (in NodeInput) apply(n *node.Node) {
	n.Name = in.Name
	n.Icon = in.Icon
	if n.Icon == "" {
		n.Icon = node.DefaultIcon
	}
	n.Type = in.Type
	n.Image = in.Image
	n.Description = in.Description
}
