// Package domain defines error types for the storefront.
package domain

import (
	"errors"
	"fmt"
)

// ProductNotFoundError is returned when the catalog reports no product for an ID
type ProductNotFoundError struct {
	ProductID int
}

// Error implements the error interface for ProductNotFoundError
func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: id=%d", e.ProductID)
}

// Is allows proper error type checking with errors.Is()
func (e *ProductNotFoundError) Is(target error) bool {
	_, ok := target.(*ProductNotFoundError)
	return ok
}

// RequestFailedError is returned when a catalog call ends with a non-success status
type RequestFailedError struct {
	Op     string
	Status int
}

// Error implements the error interface for RequestFailedError
func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("catalog request failed: op=%s, status=%d", e.Op, e.Status)
}

// Is allows proper error type checking with errors.Is()
func (e *RequestFailedError) Is(target error) bool {
	_, ok := target.(*RequestFailedError)
	return ok
}

// InvalidProductError is returned when admin product input fails validation
type InvalidProductError struct {
	Field  string
	Reason string
	Value  interface{}
}

// Error implements the error interface for InvalidProductError
func (e *InvalidProductError) Error() string {
	return fmt.Sprintf("invalid product: field=%s, reason=%s, value=%v", e.Field, e.Reason, e.Value)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidProductError) Is(target error) bool {
	_, ok := target.(*InvalidProductError)
	return ok
}

// InvalidCredentialError is returned when a login attempt does not match the
// configured credential pair.
type InvalidCredentialError struct{}

// Error implements the error interface for InvalidCredentialError
func (e *InvalidCredentialError) Error() string {
	return "invalid email or password"
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidCredentialError) Is(target error) bool {
	_, ok := target.(*InvalidCredentialError)
	return ok
}

// Helper functions for creating errors with context

// NewProductNotFoundError creates a new ProductNotFoundError
func NewProductNotFoundError(productID int) error {
	return &ProductNotFoundError{ProductID: productID}
}

// NewRequestFailedError creates a new RequestFailedError
func NewRequestFailedError(op string, status int) error {
	return &RequestFailedError{Op: op, Status: status}
}

// NewInvalidProductError creates a new InvalidProductError
func NewInvalidProductError(field, reason string, value interface{}) error {
	return &InvalidProductError{
		Field:  field,
		Reason: reason,
		Value:  value,
	}
}

// NewInvalidCredentialError creates a new InvalidCredentialError
func NewInvalidCredentialError() error {
	return &InvalidCredentialError{}
}

// Type assertion helpers for use with errors.As()

// IsProductNotFoundError checks if an error is a ProductNotFoundError
func IsProductNotFoundError(err error) bool {
	var pnf *ProductNotFoundError
	return errors.As(err, &pnf)
}

// IsRequestFailedError checks if an error is a RequestFailedError
func IsRequestFailedError(err error) bool {
	var rfe *RequestFailedError
	return errors.As(err, &rfe)
}

// IsInvalidProductError checks if an error is an InvalidProductError
func IsInvalidProductError(err error) bool {
	var ipe *InvalidProductError
	return errors.As(err, &ipe)
}

// IsInvalidCredentialError checks if an error is an InvalidCredentialError
func IsInvalidCredentialError(err error) bool {
	var ice *InvalidCredentialError
	return errors.As(err, &ice)
}
