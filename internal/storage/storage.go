// Package storage implements the durable client-side key/value store that
// survives process restarts: the auth token, the serialized user profile, the
// selected language, and the theme preference. It is backed by a local SQLite
// file via GORM (pure Go driver), with an in-memory implementation for tests.
package storage

// Durable storage keys. Each key is written by exactly one state slice, so no
// two writers ever contend for the same entry.
const (
	KeyAuthToken = "auth_token" // bearer token string
	KeyAuthUser  = "auth_user"  // JSON-serialized domain.User
	KeyLanguage  = "app_language"
	KeyDarkMode  = "dark_mode" // "true" | "false"
)

// KV is the minimal contract the rest of the client depends on. Get reports
// presence explicitly so an empty stored value is distinguishable from an
// absent key.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}
