package errors

// Error codes, format CATEGORY_SPECIFIC_DETAIL.
// JSON endpoints return them in ErrorResponse.Error.

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // form failed validation
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // missing branch id

	// ==================== Session (SESSION_) ====================
	SessionInvalid = "SESSION_INVALID" // missing or forged session cookie

	// ==================== Concurrency (INFLIGHT_) ====================
	InFlightDuplicate = "INFLIGHT_DUPLICATE" // same operation already running

	// ==================== Upload (UPLOAD_) ====================
	UploadFileTooLarge = "UPLOAD_FILE_TOO_LARGE" // multipart body over the limit
	UploadFailed       = "UPLOAD_FAILED"         // media upload rejected

	// ==================== Remote API (REMOTE_) ====================
	RemoteServerError  = "REMOTE_SERVER_ERROR"  // API answered non-2xx
	RemoteNetworkError = "REMOTE_NETWORK_ERROR" // API unreachable
	RemoteClientError  = "REMOTE_CLIENT_ERROR"  // request could not be built

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR" // unexpected failure
)
