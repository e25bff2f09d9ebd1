package code

// default message per code
var codeMessageMap = map[int]string{
	ErrSuccess:         "Success",
	ErrUnknown:         "Internal server error",
	ErrBind:            "Invalid request body",
	ErrValidation:      "Validation failed",
	ErrTokenInvalid:    "Invalid or expired token",
	ErrTooManyRequests: "Too many requests, please try again later",
	ErrForbidden:       "Insufficient permissions",
	ErrNotFound:        "Resource not found",
	ErrConflict:        "Duplicate entry",
	ErrRouteNotFound:   "Route not found",

	ErrUserNotFound:           "User not found",
	ErrUserAlreadyExist:       "Employee ID or email already exists",
	ErrInvalidCredentials:     "Invalid credentials",
	ErrAccountInactive:        "Account is inactive. Please contact administrator.",
	ErrOTPNotFound:            "OTP not found or expired",
	ErrOTPExpired:             "OTP has expired",
	ErrOTPInvalid:             "Invalid OTP code",
	ErrMailDelivery:           "Failed to send OTP email. Please try again.",
	ErrPasswordChangeRequired: "Password change required",
	ErrPasswordIncorrect:      "Current password is incorrect",

	ErrResidentNotFound:  "Resident not found",
	ErrResidentDuplicate: "Duplicate entry: Contact number or email already exists",

	ErrHouseholdNotFound:       "Household not found",
	ErrHouseholdDuplicate:      "Household name already exists",
	ErrHouseholdMemberConflict: "One or more residents are already assigned to another household",

	ErrIncidentNotFound:  "Incident not found",
	ErrIncidentDuplicate: "Duplicate entry: Reference number already exists",

	ErrServiceNotFound:      "Service not found",
	ErrBeneficiaryNotFound:  "Beneficiary not found",
	ErrBeneficiaryDuplicate: "Resident is already a beneficiary of this service",

	ErrTimeLogNotFound:  "Time log not found",
	ErrCarouselNotFound: "Carousel image not found",
	ErrUploadInvalid:    "Only image files are allowed",
	ErrUploadTooLarge:   "File too large",

	ErrDatabase:         "Database error",
	ErrMigrationFailed:  "Migration failed",
	ErrConnectionFailed: "Connection failed",
}

// HTTP status per code
var codeStatusMap = map[int]int{
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,
	ErrForbidden:       StatusForbidden,
	ErrNotFound:        StatusNotFound,
	ErrConflict:        StatusBadRequest,
	ErrRouteNotFound:   StatusNotFound,

	ErrUserNotFound:           StatusNotFound,
	ErrUserAlreadyExist:       StatusConflict,
	ErrInvalidCredentials:     StatusUnauthorized,
	ErrAccountInactive:        StatusForbidden,
	ErrOTPNotFound:            StatusBadRequest,
	ErrOTPExpired:             StatusBadRequest,
	ErrOTPInvalid:             StatusBadRequest,
	ErrMailDelivery:           StatusInternalServerError,
	ErrPasswordChangeRequired: StatusForbidden,
	ErrPasswordIncorrect:      StatusBadRequest,

	ErrResidentNotFound:  StatusNotFound,
	ErrResidentDuplicate: StatusBadRequest,

	ErrHouseholdNotFound:       StatusNotFound,
	ErrHouseholdDuplicate:      StatusBadRequest,
	ErrHouseholdMemberConflict: StatusBadRequest,

	ErrIncidentNotFound:  StatusNotFound,
	ErrIncidentDuplicate: StatusBadRequest,

	ErrServiceNotFound:      StatusNotFound,
	ErrBeneficiaryNotFound:  StatusNotFound,
	ErrBeneficiaryDuplicate: StatusBadRequest,

	ErrTimeLogNotFound:  StatusNotFound,
	ErrCarouselNotFound: StatusNotFound,
	ErrUploadInvalid:    StatusBadRequest,
	ErrUploadTooLarge:   StatusRequestEntityTooLarge,

	ErrDatabase:         StatusInternalServerError,
	ErrMigrationFailed:  StatusInternalServerError,
	ErrConnectionFailed: StatusInternalServerError,
}

// GetMessage returns the default message for code
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "Internal server error"
}

// GetStatus returns the HTTP status for code
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
