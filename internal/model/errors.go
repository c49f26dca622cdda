package model

import (
	"errors"
	"fmt"
	"time"
)

// Common errors used across the application
var (
	// Validation errors
	ErrSelfTargetForbidden  = errors.New("cannot target yourself")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidName          = errors.New("name must not be empty")
	ErrUnknownItem          = errors.New("unknown item")
	ErrInvalidChoice        = errors.New("invalid choice")
	ErrNotParticipant       = errors.New("player is not the target of this decision")
	ErrNotClanOwner         = errors.New("player does not own a clan")
	ErrOwnerCannotLeave     = errors.New("clan owner cannot leave, disband instead")
	ErrNotInClan            = errors.New("player is not in a clan")
	ErrAlreadyInClan        = errors.New("player is already in a clan")
	ErrClanFull             = errors.New("clan is full")
	ErrAlreadyOwned         = errors.New("item is already owned")
	ErrNotOwned             = errors.New("item is not owned")
	ErrNotPrivileged        = errors.New("operation requires admin privileges")
	ErrPromoAlreadyRedeemed = errors.New("promo code already redeemed")
	ErrPromoExhausted       = errors.New("promo code has no uses left")
	ErrNothingToClaim       = errors.New("no completed challenges to claim")

	// Funds errors
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrInsufficientTargetFunds = errors.New("target has insufficient funds")

	// Cooldown errors
	ErrCooldownActive = errors.New("cooldown active")

	// Not found errors
	ErrPlayerNotFound   = errors.New("player not found")
	ErrClanNotFound     = errors.New("clan not found")
	ErrPromoNotFound    = errors.New("promo code not found")
	ErrDecisionNotFound = errors.New("decision not found")

	// Lifecycle errors
	ErrAlreadyResolved = errors.New("decision already resolved")

	// External errors
	ErrExternalDependency = errors.New("external dependency failed")
)

// CooldownError reports a cooldown denial together with the time left.
// It matches ErrCooldownActive with errors.Is.
type CooldownError struct {
	Action    string
	Remaining time.Duration
}

// NewCooldownError creates a CooldownError
func NewCooldownError(action string, remaining time.Duration) *CooldownError {
	return &CooldownError{Action: action, Remaining: remaining}
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s on cooldown for %s", e.Action, e.Remaining.Round(time.Second))
}

// Is reports whether target is ErrCooldownActive
func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldownActive
}
