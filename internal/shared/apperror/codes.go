package apperror

const (
	// Client errors (4xx)
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeDuplicate  = "DUPLICATE"

	// Server errors (5xx)
	CodeStoreFailure  = "STORE_ERROR"
	CodeInternalError = "INTERNAL_ERROR"
)
