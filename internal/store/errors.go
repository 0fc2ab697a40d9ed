package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when registering an email that is
	// already taken.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match one user
	// matches none.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrItemNotFound is returned when no item with the given uuid exists
	// for the owner.
	ErrItemNotFound = errors.New("item was not found")

	// ErrItemAlreadyExists is returned when inserting an item whose uuid is
	// already used by the owner.
	ErrItemAlreadyExists = errors.New("item already exists")
)

// Low-level database operation errors. These wrap the driver error and are
// surfaced to clients as internal failures.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing fails. The
	// transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrLockingOwner is returned when the per-owner database lock cannot
	// be taken.
	ErrLockingOwner = errors.New("failed to lock owner")

	// ErrScanningRow is returned when scanning a single row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a result set fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
