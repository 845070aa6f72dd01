package drive

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/signtide/signtide/pkg/account"
)

// Session is one authenticated connection to the cloud-drive service on
// behalf of a single account. A Session is owned by the code processing
// that account and is never shared across accounts.
type Session interface {
	// Login authenticates the session. Every other call requires a
	// successful Login first.
	Login(ctx context.Context) error

	// SignPersonal performs one personal-space check-in
	SignPersonal(ctx context.Context) (SignResult, error)

	// SignFamily performs one family-space check-in against the given family
	SignFamily(ctx context.Context, familyID string) (SignResult, error)

	// Families lists the family groups the account belongs to
	Families(ctx context.Context) ([]Family, error)

	// Capacity reads the account's current storage totals
	Capacity(ctx context.Context) (CapacitySnapshot, error)
}

// Dialer produces a fresh Session for one credential. The orchestrator dials
// once per account, and again for the cohort baseline re-check.
type Dialer func(cred account.Credential) Session

// SignResult is the outcome of one check-in action
type SignResult struct {
	// AlreadySigned is true when the service reports today's check-in was
	// already consumed; no bonus is granted in that case
	AlreadySigned bool

	// BonusMB is the granted space in megabytes
	BonusMB int64
}

// Family identifies one family group an account belongs to
type Family struct {
	ID   string
	Name string
}

// CapacitySnapshot is a point-in-time read of an account's storage totals.
// Snapshots carry no identity; two snapshots of the same account are
// compared by subtraction only.
type CapacitySnapshot struct {
	PersonalBytes int64
	FamilyBytes   int64
}

// Delta returns the per-total growth from before to s
func (s CapacitySnapshot) Delta(before CapacitySnapshot) CapacityDelta {
	return CapacityDelta{
		PersonalBytes: s.PersonalBytes - before.PersonalBytes,
		FamilyBytes:   s.FamilyBytes - before.FamilyBytes,
	}
}

// PersonalGB returns the personal total in gigabytes
func (s CapacitySnapshot) PersonalGB() float64 {
	return float64(s.PersonalBytes) / (1 << 30)
}

// FamilyGB returns the family total in gigabytes
func (s CapacitySnapshot) FamilyGB() float64 {
	return float64(s.FamilyBytes) / (1 << 30)
}

// CapacityDelta is the growth between two snapshots
type CapacityDelta struct {
	PersonalBytes int64
	FamilyBytes   int64
}

// PersonalMB returns the personal growth in megabytes
func (d CapacityDelta) PersonalMB() float64 {
	return float64(d.PersonalBytes) / (1 << 20)
}

// FamilyMB returns the family growth in megabytes
func (d CapacityDelta) FamilyMB() float64 {
	return float64(d.FamilyBytes) / (1 << 20)
}

// AuthError reports a failed login for one account
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("login failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// ActionError reports a failed check-in action
type ActionError struct {
	Kind string // "personal" or "family"
	Err  error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s sign-in failed: %v", e.Kind, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err is a timeout-class failure. The orchestrator
// treats a login timeout as evidence the gateway is down for everyone and
// may abort the whole run on it.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, context.DeadlineExceeded)
}
