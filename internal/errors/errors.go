package errors

import (
	"errors"
	"fmt"
)

// Tokenize-stage errors
var (
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrUnterminatedString  = errors.New("missing closing quote")
)

// Parse-stage errors
var (
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrUnexpectedEOF   = errors.New("unexpected end of input")
	ErrTrailingTokens  = errors.New("unexpected tokens after root object")
	ErrNumberOverflow  = errors.New("number out of range")
	ErrDepthLimit      = errors.New("nesting depth limit exceeded")
)

// Standard application errors
var (
	ErrEmptyInput       = errors.New("input is empty or contains only whitespace")
	ErrFileNotFound     = errors.New("file not found")
	ErrFileEmpty        = errors.New("file is empty")
	ErrNoInput          = errors.New("no input provided: please specify a file with -i or pipe a document to stdin")
	ErrInvalidFilePath  = errors.New("invalid file path")
	ErrNotCanonical     = errors.New("document is not in canonical form")
	ErrInvalidKeyStyle  = errors.New("invalid key style")
	ErrInvalidMode      = errors.New("invalid output mode")
	ErrInvalidColorMode = errors.New("invalid color mode")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput     ErrorType = "input"
	ErrorTypeTokenize  ErrorType = "tokenize"
	ErrorTypeParsing   ErrorType = "parsing"
	ErrorTypeTransform ErrorType = "transform"
	ErrorTypeConfig    ErrorType = "config"
	ErrorTypeOutput    ErrorType = "output"
	ErrorTypeUnknown   ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison. Two AppErrors match when their types do.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewTokenizeError creates a new error raised while scanning text into tokens
func NewTokenizeError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeTokenize,
		Message: message,
		Err:     err,
	}
}

// NewParsingError creates a new error raised while building the value tree
func NewParsingError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeParsing,
		Message: message,
		Err:     err,
	}
}

// NewTransformError creates a new error related to tree transformations
func NewTransformError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeTransform,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to configuration loading
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		detail := appErr.Message
		if appErr.Err != nil {
			detail = fmt.Sprintf("%s: %v", appErr.Message, appErr.Err)
		}
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", detail)
		case ErrorTypeTokenize:
			return fmt.Sprintf("Tokenizing error: %s", detail)
		case ErrorTypeParsing:
			return fmt.Sprintf("Parsing error: %s", detail)
		case ErrorTypeTransform:
			return fmt.Sprintf("Transform error: %s", detail)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", detail)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", detail)
		default:
			return fmt.Sprintf("Error: %s", detail)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide a document."
	}
	if errors.Is(err, ErrUnterminatedString) {
		return "Error: A string literal is missing its closing quote."
	}
	if errors.Is(err, ErrUnexpectedCharacter) {
		return "Error: The input contains a character that is not part of the grammar."
	}
	if errors.Is(err, ErrTrailingTokens) {
		return "Error: Unexpected content found after the root object."
	}
	if errors.Is(err, ErrDepthLimit) {
		return "Error: Objects and arrays are nested too deeply."
	}
	if errors.Is(err, ErrUnexpectedEOF) {
		return "Error: The document ended before it was complete."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe a document to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
