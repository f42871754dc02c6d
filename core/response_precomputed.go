package core

import (
	"encoding/json"
	"net/http"
)

// Standard response codes
const (
	// oks
	CodeOkSignup                = "ok_signup"
	CodeOkVerified              = "ok_verified"
	CodeOkVerificationResent    = "ok_verification_resent"
	CodeOkUsernameAvailable     = "ok_username_available"
	CodeOkPasswordResetRequested = "ok_password_reset_requested"
	CodeOkPasswordReset         = "ok_password_reset"

	// errors
	CodeErrorInvalidRequest             = "err_invalid_input"
	CodeErrorMissingFields              = "err_missing_fields"
	CodeErrorInvalidContentType         = "err_invalid_content_type"
	CodeErrorPasswordMismatch           = "err_password_mismatch"
	CodeErrorPasswordComplexity         = "err_password_complexity"
	CodeErrorInvalidUsername            = "err_invalid_username"
	CodeErrorUsernameTaken              = "err_username_taken"
	CodeErrorEmailConflict              = "err_email_conflict"
	CodeErrorUserNotFound               = "err_user_not_found"
	CodeErrorSigninNotFound             = "err_signin_not_found"
	CodeErrorSigninUnverified           = "err_signin_unverified"
	CodeErrorIncorrectPassword          = "err_incorrect_password"
	CodeErrorAlreadyVerified            = "err_already_verified"
	CodeErrorCodeExpired                = "err_code_expired"
	CodeErrorIncorrectCode              = "err_incorrect_code"
	CodeErrorResetUnverified            = "err_reset_unverified"
	CodeErrorInvalidResetLink           = "err_invalid_reset_link"
	CodeErrorSamePassword               = "err_same_password"
	CodeErrorVerificationEmailFailed    = "err_verification_email_failed"
	CodeErrorResetEmailFailed           = "err_reset_email_failed"
	CodeErrorTokenGeneration            = "err_token_generation"
	CodeErrorTooManyRequests            = "err_too_many_requests"
	CodeErrorServiceUnavailable         = "err_service_unavailable"
	CodeErrorNoAuthHeader               = "err_no_auth_header"
	CodeErrorInvalidTokenFormat         = "err_invalid_token_format"
	CodeErrorJwtInvalidSignMethod       = "err_invalid_sign_method"
	CodeErrorJwtTokenExpired            = "err_token_expired"
	CodeErrorJwtInvalidToken            = "err_invalid_token"
	CodeErrorInvalidOAuth2Provider      = "err_invalid_oauth2_provider"
	CodeErrorOAuth2TokenExchangeFailed  = "err_oauth2_token_exchange_failed"
	CodeErrorOAuth2UserInfoFailed       = "err_oauth2_user_info_failed"
	CodeErrorOAuth2UserInfoProcessing   = "err_oauth2_user_info_processing_failed"
	CodeErrorAuthDatabaseError          = "err_auth_database_error"
	CodeErrorIpBlocked                  = "err_ip_blocked"
)

// precomputeBasicResponse marshals a JsonBasic once at init time. Handlers
// then write the stored bytes directly, avoiding per-request marshaling.
func precomputeBasicResponse(status int, code, message string) jsonResponse {
	basic := JsonBasic{
		Status:  status,
		Code:    code,
		Message: message,
	}
	body, _ := json.Marshal(basic)
	return jsonResponse{status: status, body: body}
}

// Precomputed error and ok responses with status codes
var (
	// errors
	errorInvalidRequest         = precomputeBasicResponse(http.StatusBadRequest, CodeErrorInvalidRequest, "The request contains invalid data")
	errorMissingFields          = precomputeBasicResponse(http.StatusBadRequest, CodeErrorMissingFields, "Missing required fields.")
	errorInvalidContentType     = precomputeBasicResponse(http.StatusUnsupportedMediaType, CodeErrorInvalidContentType, "Unsupported media type")
	errorPasswordMismatch       = precomputeBasicResponse(http.StatusBadRequest, CodeErrorPasswordMismatch, "Passwords do not match.")
	errorPasswordComplexity     = precomputeBasicResponse(http.StatusBadRequest, CodeErrorPasswordComplexity, "Password must be at least 6 characters")
	errorInvalidUsername        = precomputeBasicResponse(http.StatusBadRequest, CodeErrorInvalidUsername, "Invalid username")
	errorUsernameTaken          = precomputeBasicResponse(http.StatusConflict, CodeErrorUsernameTaken, "Username already taken")
	errorEmailConflict          = precomputeBasicResponse(http.StatusConflict, CodeErrorEmailConflict, "User already exists with this email")
	errorUserNotFound           = precomputeBasicResponse(http.StatusNotFound, CodeErrorUserNotFound, "User not found.")
	errorSigninNotFound         = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorSigninNotFound, "No user found with this email or username")
	errorSigninUnverified       = precomputeBasicResponse(http.StatusForbidden, CodeErrorSigninUnverified, "Please verify your email before signing in")
	errorIncorrectPassword      = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorIncorrectPassword, "Incorrect password")
	errorAlreadyVerified        = precomputeBasicResponse(http.StatusBadRequest, CodeErrorAlreadyVerified, "User is already verified.")
	errorCodeExpired            = precomputeBasicResponse(http.StatusBadRequest, CodeErrorCodeExpired, "Code has expired. Please sign up again.")
	errorIncorrectCode          = precomputeBasicResponse(http.StatusBadRequest, CodeErrorIncorrectCode, "Incorrect Code")
	errorResetUnverified        = precomputeBasicResponse(http.StatusForbidden, CodeErrorResetUnverified, "Your account is not verified. Please sign up again to verify your account.")
	errorInvalidResetLink       = precomputeBasicResponse(http.StatusBadRequest, CodeErrorInvalidResetLink, "Invalid or expired link.")
	errorSamePassword           = precomputeBasicResponse(http.StatusBadRequest, CodeErrorSamePassword, "The new password cannot be same as the old one.")
	errorVerificationEmailFailed = precomputeBasicResponse(http.StatusInternalServerError, CodeErrorVerificationEmailFailed, "Failed to send verification email.")
	errorResetEmailFailed       = precomputeBasicResponse(http.StatusInternalServerError, CodeErrorResetEmailFailed, "Failed to send password reset email.")
	errorTokenGeneration        = precomputeBasicResponse(http.StatusInternalServerError, CodeErrorTokenGeneration, "Failed to generate authentication token")
	errorTooManyRequests        = precomputeBasicResponse(http.StatusTooManyRequests, CodeErrorTooManyRequests, "Too many requests, please try again later")
	errorServiceUnavailable     = precomputeBasicResponse(http.StatusServiceUnavailable, CodeErrorServiceUnavailable, "Service is temporarily unavailable")
	errorNoAuthHeader           = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorNoAuthHeader, "Authorization header is required")
	errorInvalidTokenFormat     = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorInvalidTokenFormat, "Invalid authorization token format")
	errorJwtInvalidSignMethod   = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorJwtInvalidSignMethod, "Invalid JWT signing method")
	errorJwtTokenExpired        = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorJwtTokenExpired, "Authentication token has expired")
	errorJwtInvalidToken        = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorJwtInvalidToken, "Invalid authentication token")
	errorInvalidOAuth2Provider  = precomputeBasicResponse(http.StatusBadRequest, CodeErrorInvalidOAuth2Provider, "Invalid OAuth2 provider specified")
	errorOAuth2TokenExchange    = precomputeBasicResponse(http.StatusBadRequest, CodeErrorOAuth2TokenExchangeFailed, "Failed to exchange OAuth2 token")
	errorOAuth2UserInfoFailed   = precomputeBasicResponse(http.StatusBadRequest, CodeErrorOAuth2UserInfoFailed, "Failed to get user info from OAuth2 provider")
	errorOAuth2UserInfoProcessing = precomputeBasicResponse(http.StatusBadRequest, CodeErrorOAuth2UserInfoProcessing, "Failed to process user info from OAuth2 provider")
	errorAuthDatabaseError      = precomputeBasicResponse(http.StatusInternalServerError, CodeErrorAuthDatabaseError, "Database error during authentication")
	errorIpBlocked              = precomputeBasicResponse(http.StatusTooManyRequests, CodeErrorIpBlocked, "IP address has been blocked due to excessive requests. Please try again later")

	// oks
	okSignup             = precomputeBasicResponse(http.StatusCreated, CodeOkSignup, "User registered successfully. Please verify your email.")
	okVerified           = precomputeBasicResponse(http.StatusOK, CodeOkVerified, "User verified successfully")
	okVerificationResent = precomputeBasicResponse(http.StatusOK, CodeOkVerificationResent, "Verification code resent successfully. Please check your email.")
	okUsernameAvailable  = precomputeBasicResponse(http.StatusOK, CodeOkUsernameAvailable, "Username is available")
	// One body for hits and misses, so responses do not reveal whether an
	// account exists.
	okPasswordResetRequested = precomputeBasicResponse(http.StatusOK, CodeOkPasswordResetRequested, "If an account with that email or username exists, we've sent a password reset link to the email associated with it.")
	okPasswordReset          = precomputeBasicResponse(http.StatusOK, CodeOkPasswordReset, "Password updated successfully.")
)
