package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError 单个字段的校验失败
type FieldError struct {
	Field  string
	Reason string
}

// InputValidationError 调用方输入不合法，在进入引擎之前拒绝
type InputValidationError struct {
	Errors []FieldError
}

func (e *InputValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Reason))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// NewInputValidationError 构造只含一个字段错误的校验失败
func NewInputValidationError(field, reason string) *InputValidationError {
	return &InputValidationError{Errors: []FieldError{{Field: field, Reason: reason}}}
}

// IsInputValidation 判断 err 链中是否有 InputValidationError
func IsInputValidation(err error) bool {
	var ive *InputValidationError
	return errors.As(err, &ive)
}

// ValidateRequest 校验公司信息三项必填且至少选择一个话题
func ValidateRequest(req *GenerateRequest) error {
	if req == nil {
		return NewInputValidationError("request", "missing")
	}

	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate request: %w", err)
	}

	out := &InputValidationError{}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, FieldError{
			Field:  fieldName(fe.Namespace()),
			Reason: reason(fe),
		})
	}
	return out
}

// fieldName 去掉结构体前缀: GenerateRequest.Profile.Name -> company.name
func fieldName(ns string) string {
	ns = strings.TrimPrefix(ns, "GenerateRequest.")
	ns = strings.Replace(ns, "Profile.", "company.", 1)
	return strings.ToLower(ns)
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "select at least one report topic"
	default:
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}
