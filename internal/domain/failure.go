package domain

import (
	"errors"
	"fmt"
	"net/http"
)

type FailureKind string

const (
	KindValidation     FailureKind = "validation"
	KindDataValidation FailureKind = "data_validation"
	KindCompatibility  FailureKind = "compatibility"
	KindServer         FailureKind = "server"
	KindInternal       FailureKind = "internal"
)

// Failure is implemented by every error the analytics core returns on purpose.
type Failure interface {
	error
	Kind() FailureKind
	Code() int
}

// ValidationFailure reports malformed or out-of-range request input.
type ValidationFailure struct {
	Field   string
	Message string
	Value   any
}

func NewValidationFailure(field, msg string, value any) *ValidationFailure {
	return &ValidationFailure{Field: field, Message: msg, Value: value}
}

func (f *ValidationFailure) Error() string {
	return fmt.Sprintf("invalid %s: %s", f.Field, f.Message)
}

func (f *ValidationFailure) Kind() FailureKind { return KindValidation }
func (f *ValidationFailure) Code() int         { return http.StatusBadRequest }

// DataValidationFailure reports a payload that failed a sanity or freshness check.
type DataValidationFailure struct {
	Field   string
	Message string
	Value   any
}

func NewDataValidationFailure(field, msg string, value any) *DataValidationFailure {
	return &DataValidationFailure{Field: field, Message: msg, Value: value}
}

func (f *DataValidationFailure) Error() string {
	return fmt.Sprintf("invalid payload %s: %s", f.Field, f.Message)
}

func (f *DataValidationFailure) Kind() FailureKind { return KindDataValidation }
func (f *DataValidationFailure) Code() int         { return http.StatusUnprocessableEntity }

// CompatibilityFailure reports a chart type that cannot render a data type.
type CompatibilityFailure struct {
	ChartType ChartType
	DataType  DataType
	Message   string
}

func (f *CompatibilityFailure) Error() string {
	if f.Message != "" {
		return fmt.Sprintf("chart %s with data %s: %s", f.ChartType, f.DataType, f.Message)
	}
	return fmt.Sprintf("chart type %s is not compatible with data type %s", f.ChartType, f.DataType)
}

func (f *CompatibilityFailure) Kind() FailureKind { return KindCompatibility }
func (f *CompatibilityFailure) Code() int         { return http.StatusBadRequest }

// ServerFailure forwards an error from the data source without interpreting it.
type ServerFailure struct {
	Op  string
	Err error
}

func (f *ServerFailure) Error() string {
	return fmt.Sprintf("%s: %s", f.Op, f.Err)
}

func (f *ServerFailure) Unwrap() error     { return f.Err }
func (f *ServerFailure) Kind() FailureKind { return KindServer }
func (f *ServerFailure) Code() int         { return http.StatusBadGateway }

// InternalFailure wraps an unexpected error or panic caught at a boundary.
type InternalFailure struct {
	Op    string
	Cause any
}

func (f *InternalFailure) Error() string {
	return fmt.Sprintf("%s: internal error: %v", f.Op, f.Cause)
}

func (f *InternalFailure) Unwrap() error {
	if err, ok := f.Cause.(error); ok {
		return err
	}
	return nil
}

func (f *InternalFailure) Kind() FailureKind { return KindInternal }
func (f *InternalFailure) Code() int         { return http.StatusInternalServerError }

// FieldOf returns the offending field of a validation failure, or "".
func FieldOf(err error) string {
	var vf *ValidationFailure
	if errors.As(err, &vf) {
		return vf.Field
	}
	var df *DataValidationFailure
	if errors.As(err, &df) {
		return df.Field
	}
	return ""
}
