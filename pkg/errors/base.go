package errors

// baseError is the foundation every ignite error type builds on. It wraps a
// causing error while carrying a stable message, a machine-readable code,
// and an optional bag of structured details, so callers can branch on what
// happened instead of parsing error strings.
type baseError struct {
	cause   error          // Underlying error, if any.
	message string         // Human-readable description.
	code    ErrorCode      // Category for programmatic handling.
	details map[string]any // Extra structured context for logs.
}

// NewBaseError wraps err with a code and message.
func NewBaseError(err error, code ErrorCode, msg string) *baseError {
	return &baseError{cause: err, code: code, message: msg}
}

// WithMessage replaces the error message, useful when an error is built up
// in stages.
func (be *baseError) WithMessage(msg string) *baseError {
	be.message = msg
	return be
}

// WithCode replaces the error code.
func (be *baseError) WithCode(code ErrorCode) *baseError {
	be.code = code
	return be
}

// WithDetail attaches one key/value of structured context. The details map
// is allocated lazily so errors without details stay cheap.
func (be *baseError) WithDetail(key string, value any) *baseError {
	if be.details == nil {
		be.details = make(map[string]any)
	}
	be.details[key] = value
	return be
}

// Error implements the error interface.
func (b *baseError) Error() string {
	return b.message
}

// Unwrap exposes the causing error to errors.Is and errors.As.
func (b *baseError) Unwrap() error {
	return b.cause
}

// Code returns the error's category.
func (b *baseError) Code() ErrorCode {
	return b.code
}

// Details returns the structured context attached to this error. The
// returned map is the internal one, not a copy.
func (b *baseError) Details() map[string]any {
	return b.details
}
