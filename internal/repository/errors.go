// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values let handlers distinguish between
// failure scenarios without inspecting driver error strings: a screening
// conflict maps to HTTP 409, a duplicate rating to a distinct 422 message,
// missing rows to 404.
package repository

import "errors"

// ErrScreeningConflict is returned when a screening's (date, time, room)
// triple collides with an existing screening.  Handlers translate this into
// an HTTP 409 response.
var ErrScreeningConflict = errors.New("screening conflict")

// ErrDuplicateRating is returned when a jury member has already rated the
// screening.  The existing rating is never overwritten.
var ErrDuplicateRating = errors.New("duplicate rating")

// Not-found sentinels, one per entity, returned in place of sql.ErrNoRows.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrDocumentaryNotFound = errors.New("documentary not found")
	ErrScreeningNotFound   = errors.New("screening not found")
	ErrJuryMemberNotFound  = errors.New("jury member not found")
	ErrRatingNotFound      = errors.New("rating not found")
)

// ErrRefreshInvalid is returned when a presented refresh token hash has no
// matching row, is revoked, or has expired.  The auth handler maps all three
// onto the same 401 so a caller cannot probe which case applied.
var ErrRefreshInvalid = errors.New("refresh token invalid")

// ErrEmailExists is returned when inserting or updating a row whose email
// collides with an existing one (users and jury members carry unique
// emails).
var ErrEmailExists = errors.New("email already exists")

// ErrCodeExists is returned when a documentary, director or producer code
// collides with an existing one.
var ErrCodeExists = errors.New("code already exists")
