package domain

import (
	"errors"
	"strings"
)

var ErrEmployeeNotFound = errors.New("Employee not found")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 按字段顺序记录所有未通过校验的字段
type ValidationError struct {
	Errors []FieldError
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return validationPrefix + strings.Join(parts, ", ")
}

// Field 返回某个字段的第一条错误信息
func (e *ValidationError) Field(name string) (string, bool) {
	for _, fe := range e.Errors {
		if fe.Field == name {
			return fe.Message, true
		}
	}
	return "", false
}

// Add 追加一条字段错误，同一字段只保留第一条
func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Field(field); ok {
		return
	}
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

const validationPrefix = "Employee validation failed: "

var inputFields = []string{"name", "email", "phone", "department", "position", "hireDate", "salary", "address"}

// ParseValidationError 把 Error() 的输出还原成结构化的字段错误。
// 信息本身可能含有 ", "，所以只在下一个已知字段名处断开。
func ParseValidationError(msg string) (*ValidationError, bool) {
	rest, ok := strings.CutPrefix(msg, validationPrefix)
	if !ok {
		return nil, false
	}

	verr := &ValidationError{}
	for _, part := range strings.Split(rest, ", ") {
		if field, message, ok := cutField(part); ok {
			verr.Errors = append(verr.Errors, FieldError{Field: field, Message: message})
			continue
		}
		if len(verr.Errors) == 0 {
			return nil, false
		}
		last := &verr.Errors[len(verr.Errors)-1]
		last.Message += ", " + part
	}

	if len(verr.Errors) == 0 {
		return nil, false
	}
	return verr, true
}

func cutField(part string) (string, string, bool) {
	for _, f := range inputFields {
		if message, ok := strings.CutPrefix(part, f+": "); ok {
			return f, message, true
		}
	}
	return "", "", false
}
