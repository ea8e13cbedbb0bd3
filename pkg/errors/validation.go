package errors

// ValidationError carries the context an input-validation failure needs:
// which field was rejected, which rule rejected it, and what the caller
// provided versus what would have been accepted.
type ValidationError struct {
	*baseError

	// Field or parameter that failed validation.
	field string

	// Rule that rejected it, e.g. "required", "positive", "not_reserved".
	rule string

	// Value the caller actually provided.
	provided any

	// What a valid value would have looked like.
	expected any
}

// NewValidationError wraps err as a validation failure.
func NewValidationError(err error, code ErrorCode, msg string) *ValidationError {
	return &ValidationError{baseError: NewBaseError(err, code, msg)}
}

// The base builder methods are overridden to keep returning
// *ValidationError so base and validation-specific context can be chained
// in any order.

// WithMessage replaces the error message.
func (ve *ValidationError) WithMessage(msg string) *ValidationError {
	ve.baseError.WithMessage(msg)
	return ve
}

// WithCode replaces the error code.
func (ve *ValidationError) WithCode(code ErrorCode) *ValidationError {
	ve.baseError.WithCode(code)
	return ve
}

// WithDetail attaches structured context.
func (ve *ValidationError) WithDetail(key string, value any) *ValidationError {
	ve.baseError.WithDetail(key, value)
	return ve
}

// WithField records which field failed validation.
func (ve *ValidationError) WithField(field string) *ValidationError {
	ve.field = field
	return ve
}

// WithRule records which validation rule was violated.
func (ve *ValidationError) WithRule(rule string) *ValidationError {
	ve.rule = rule
	return ve
}

// WithProvided records the value the caller provided.
func (ve *ValidationError) WithProvided(value any) *ValidationError {
	ve.provided = value
	return ve
}

// WithExpected records what a valid value would have looked like.
func (ve *ValidationError) WithExpected(value any) *ValidationError {
	ve.expected = value
	return ve
}

// Field returns the field that failed validation.
func (ve *ValidationError) Field() string {
	return ve.field
}

// Rule returns the rule that was violated.
func (ve *ValidationError) Rule() string {
	return ve.rule
}

// Provided returns the value the caller provided.
func (ve *ValidationError) Provided() any {
	return ve.provided
}

// Expected returns what a valid value would have looked like.
func (ve *ValidationError) Expected() any {
	return ve.expected
}

// NewRequiredFieldError reports a missing or empty required field.
func NewRequiredFieldError(fieldName string) *ValidationError {
	return NewValidationError(
		nil, ErrorCodeInvalidInput, "required field is missing or empty",
	).WithField(fieldName).WithRule("required")
}
