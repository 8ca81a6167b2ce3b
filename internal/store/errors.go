package store

import "errors"

// Sentinel errors returned by repository methods for well-known failure
// conditions. Callers match them with errors.Is.
var (
	// ErrEmailAlreadyExists is returned when registering a user whose email
	// is already taken (unique constraint on users.email).
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a user lookup matches nothing.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrVaultItemNotFound is returned when a vault item query or update
	// targets a record that does not exist for the given owner.
	ErrVaultItemNotFound = errors.New("vault item was not found")

	// ErrTokenNotFound is returned when no unused disclosure token matches
	// the requested token string and owner.
	ErrTokenNotFound = errors.New("disclosure token was not found")

	// ErrTokenAlreadyUsed is returned by the mark-used compare-and-swap when
	// the token row exists but used is already true: a concurrent redeemer
	// won the race. The single-use guarantee rests on this error.
	ErrTokenAlreadyUsed = errors.New("disclosure token is already used")
)

// Low-level database errors, wrapped around the driver error.
var (
	// ErrBuildingSQLQuery is returned when the query builder fails to render
	// a statement.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a read query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when a DML statement fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when row iteration fails mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
