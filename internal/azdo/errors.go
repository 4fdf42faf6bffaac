package azdo

import "errors"

var (
	// ErrNotFound indicates the work item does not exist or is not visible
	// to the authenticated user.
	ErrNotFound = errors.New("work item not found")

	// ErrUnauthorized indicates the personal access token was rejected.
	ErrUnauthorized = errors.New("azure devops credentials rejected")

	// ErrUnavailable indicates the Azure DevOps API is unreachable.
	ErrUnavailable = errors.New("azure devops api unavailable")
)
