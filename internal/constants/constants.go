package constants

// ContextKeyUserID is the gin context key under which the authenticated
// user's ID is stored by the auth middleware.
const ContextKeyUserID = "user_id"

// Pagination limits.
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// MinPasswordLength is the minimum accepted password length at signup.
const MinPasswordLength = 8

// APIKeySecretSuffixLen is how many trailing characters of an API key
// secret are kept visible when the key is listed.
const APIKeySecretSuffixLen = 4
