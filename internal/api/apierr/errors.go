package apierr

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/mcoot/candyledger/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// RetryAfter is set for cooldown denials, in whole seconds
	RetryAfter int64 `json:"retry_after,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeSelfTarget         = "SELF_TARGET"
	CodeInvalidAmount      = "INVALID_AMOUNT"
	CodeInvalidName        = "INVALID_NAME"
	CodeUnknownItem        = "UNKNOWN_ITEM"
	CodeInvalidChoice      = "INVALID_CHOICE"
	CodeNotParticipant     = "NOT_PARTICIPANT"
	CodeNotClanOwner       = "NOT_CLAN_OWNER"
	CodeOwnerCannotLeave   = "OWNER_CANNOT_LEAVE"
	CodeNotInClan          = "NOT_IN_CLAN"
	CodeAlreadyInClan      = "ALREADY_IN_CLAN"
	CodeClanFull           = "CLAN_FULL"
	CodeAlreadyOwned       = "ALREADY_OWNED"
	CodeNotOwned           = "NOT_OWNED"
	CodePromoRedeemed      = "PROMO_ALREADY_REDEEMED"
	CodePromoExhausted     = "PROMO_EXHAUSTED"
	CodeNothingToClaim     = "NOTHING_TO_CLAIM"
	CodeInsufficientFunds  = "INSUFFICIENT_FUNDS"
	CodeTargetInsufficient = "TARGET_INSUFFICIENT_FUNDS"
	CodeCooldown           = "COOLDOWN_ACTIVE"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeClanNotFound       = "CLAN_NOT_FOUND"
	CodePromoNotFound      = "PROMO_NOT_FOUND"
	CodeDecisionNotFound   = "DECISION_NOT_FOUND"
	CodeAlreadyResolved    = "ALREADY_RESOLVED"
	CodeExternalDependency = "EXTERNAL_DEPENDENCY"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	if he.apiError.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.FormatInt(he.apiError.RetryAfter, 10))
	}
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// StatusOf returns the HTTP status err would be written with
func StatusOf(err error) int {
	return toHTTPError(err).status
}

// mapping pairs a sentinel with its response
type mapping struct {
	target error
	status int
	code   string
}

var mappings = []mapping{
	{model.ErrSelfTargetForbidden, http.StatusBadRequest, CodeSelfTarget},
	{model.ErrInvalidAmount, http.StatusBadRequest, CodeInvalidAmount},
	{model.ErrInvalidName, http.StatusBadRequest, CodeInvalidName},
	{model.ErrUnknownItem, http.StatusBadRequest, CodeUnknownItem},
	{model.ErrInvalidChoice, http.StatusBadRequest, CodeInvalidChoice},
	{model.ErrNotParticipant, http.StatusForbidden, CodeNotParticipant},
	{model.ErrNotClanOwner, http.StatusForbidden, CodeNotClanOwner},
	{model.ErrNotPrivileged, http.StatusForbidden, CodeForbidden},
	{model.ErrOwnerCannotLeave, http.StatusConflict, CodeOwnerCannotLeave},
	{model.ErrNotInClan, http.StatusConflict, CodeNotInClan},
	{model.ErrAlreadyInClan, http.StatusConflict, CodeAlreadyInClan},
	{model.ErrClanFull, http.StatusConflict, CodeClanFull},
	{model.ErrAlreadyOwned, http.StatusConflict, CodeAlreadyOwned},
	{model.ErrNotOwned, http.StatusConflict, CodeNotOwned},
	{model.ErrPromoAlreadyRedeemed, http.StatusConflict, CodePromoRedeemed},
	{model.ErrPromoExhausted, http.StatusConflict, CodePromoExhausted},
	{model.ErrNothingToClaim, http.StatusConflict, CodeNothingToClaim},
	{model.ErrAlreadyResolved, http.StatusConflict, CodeAlreadyResolved},
	{model.ErrInsufficientFunds, http.StatusUnprocessableEntity, CodeInsufficientFunds},
	{model.ErrInsufficientTargetFunds, http.StatusUnprocessableEntity, CodeTargetInsufficient},
	{model.ErrPlayerNotFound, http.StatusNotFound, CodePlayerNotFound},
	{model.ErrClanNotFound, http.StatusNotFound, CodeClanNotFound},
	{model.ErrPromoNotFound, http.StatusNotFound, CodePromoNotFound},
	{model.ErrDecisionNotFound, http.StatusNotFound, CodeDecisionNotFound},
	{model.ErrExternalDependency, http.StatusBadGateway, CodeExternalDependency},
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var ce *model.CooldownError
	if errors.As(err, &ce) {
		return &httpError{http.StatusTooManyRequests, APIError{
			Code:       CodeCooldown,
			Message:    ce.Error(),
			RetryAfter: int64(math.Ceil(ce.Remaining.Seconds())),
		}}
	}

	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return &httpError{m.status, APIError{Code: m.code, Message: m.target.Error()}}
		}
	}
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}
