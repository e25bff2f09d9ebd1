package code

// HTTP status codes.
const (
	// StatusOK - 200: success.
	StatusOK = 200
	// StatusCreated - 201: resource created.
	StatusCreated = 201
	// StatusBadRequest - 400: invalid request.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: not authenticated.
	StatusUnauthorized = 401
	// StatusForbidden - 403: access denied.
	StatusForbidden = 403
	// StatusNotFound - 404: resource missing.
	StatusNotFound = 404
	// StatusConflict - 409: resource already exists.
	StatusConflict = 409
	// StatusRequestEntityTooLarge - 413: upload too large.
	StatusRequestEntityTooLarge = 413
	// StatusTooManyRequests - 429: rate limited.
	StatusTooManyRequests = 429
	// StatusInternalServerError - 500: server error.
	StatusInternalServerError = 500
)

// Common codes (100xxx).
const (
	// ErrSuccess - 200: success.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: unexpected error.
	ErrUnknown
	// ErrBind - 400: request body could not be bound.
	ErrBind
	// ErrValidation - 400: field validation failed.
	ErrValidation
	// ErrTokenInvalid - 401: token missing or invalid.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: rate limited.
	ErrTooManyRequests
	// ErrForbidden - 403: insufficient permissions.
	ErrForbidden
	// ErrNotFound - 404: generic missing resource.
	ErrNotFound
	// ErrConflict - 400: duplicate value.
	ErrConflict
	// ErrRouteNotFound - 404: no such route.
	ErrRouteNotFound
)

// User and auth codes (101xxx).
const (
	// ErrUserNotFound - 404: user not found.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 409: employee id or email taken.
	ErrUserAlreadyExist
	// ErrInvalidCredentials - 401: wrong username or password.
	ErrInvalidCredentials
	// ErrAccountInactive - 403: account disabled.
	ErrAccountInactive
	// ErrOTPNotFound - 400: no pending code.
	ErrOTPNotFound
	// ErrOTPExpired - 400: code expired.
	ErrOTPExpired
	// ErrOTPInvalid - 400: wrong code.
	ErrOTPInvalid
	// ErrMailDelivery - 500: email could not be sent.
	ErrMailDelivery
	// ErrPasswordChangeRequired - 403: temporary password must be rotated.
	ErrPasswordChangeRequired
	// ErrPasswordIncorrect - 400: current password mismatch.
	ErrPasswordIncorrect
)

// Resident codes (102xxx).
const (
	// ErrResidentNotFound - 404: resident not found.
	ErrResidentNotFound int = iota + 102000
	// ErrResidentDuplicate - 400: contact number or email taken.
	ErrResidentDuplicate
)

// Household codes (103xxx).
const (
	// ErrHouseholdNotFound - 404: household not found.
	ErrHouseholdNotFound int = iota + 103000
	// ErrHouseholdDuplicate - 400: household name taken.
	ErrHouseholdDuplicate
	// ErrHouseholdMemberConflict - 400: resident already in another household.
	ErrHouseholdMemberConflict
)

// Incident codes (104xxx).
const (
	// ErrIncidentNotFound - 404: incident not found.
	ErrIncidentNotFound int = iota + 104000
	// ErrIncidentDuplicate - 400: reference number taken.
	ErrIncidentDuplicate
)

// Service codes (105xxx).
const (
	// ErrServiceNotFound - 404: service not found.
	ErrServiceNotFound int = iota + 105000
	// ErrBeneficiaryNotFound - 404: beneficiary not found.
	ErrBeneficiaryNotFound
	// ErrBeneficiaryDuplicate - 400: resident already a beneficiary.
	ErrBeneficiaryDuplicate
)

// Misc resource codes (106xxx).
const (
	// ErrTimeLogNotFound - 404: time log not found.
	ErrTimeLogNotFound int = iota + 106000
	// ErrCarouselNotFound - 404: carousel image not found.
	ErrCarouselNotFound
	// ErrUploadInvalid - 400: bad upload.
	ErrUploadInvalid
	// ErrUploadTooLarge - 413: upload exceeds limit.
	ErrUploadTooLarge
)

// Database codes (109xxx).
const (
	// ErrDatabase - 500: database error.
	ErrDatabase int = iota + 109000
	// ErrMigrationFailed - 500: migration failed.
	ErrMigrationFailed
	// ErrConnectionFailed - 500: connection failed.
	ErrConnectionFailed
)
