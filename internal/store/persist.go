package store

import (
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/tbourn/go-news-client/internal/storage"
)

// persistence returns the subscriber that mirrors selected state transitions
// into durable storage. Keeping the writes out of the reducers preserves
// reducer purity; running subscribers synchronously inside Dispatch keeps
// the durable token and the auth slice in step, which matters because other
// processes read storage directly at startup.
//
// Key ownership (one writer per key):
//   - auth transitions  → auth_token, auth_user
//   - LanguageSet       → app_language
//   - DarkModeToggled   → dark_mode
//
// Write failures are logged and otherwise ignored: the in-memory state is
// authoritative for the rest of the session.
func persistence(kv storage.KV, lg zerolog.Logger) Subscriber {
	warn := func(key string, err error) {
		if err != nil {
			lg.Warn().Err(err).Str("key", key).Msg("durable write failed")
		}
	}

	return func(prev, next AppState, a Action) {
		switch act := a.(type) {
		case LoginSucceeded:
			if act.Token != "" {
				warn(storage.KeyAuthToken, kv.Set(storage.KeyAuthToken, act.Token))
			}
			if next.Auth.User != nil {
				if b, err := json.Marshal(next.Auth.User); err == nil {
					warn(storage.KeyAuthUser, kv.Set(storage.KeyAuthUser, string(b)))
				}
			}

		case UserUpdated:
			if b, err := json.Marshal(act.User); err == nil {
				warn(storage.KeyAuthUser, kv.Set(storage.KeyAuthUser, string(b)))
			}

		case LoggedOut:
			warn(storage.KeyAuthToken, kv.Delete(storage.KeyAuthToken))
			warn(storage.KeyAuthUser, kv.Delete(storage.KeyAuthUser))

		case LanguageSet:
			warn(storage.KeyLanguage, kv.Set(storage.KeyLanguage, act.Code))

		case DarkModeToggled:
			warn(storage.KeyDarkMode, kv.Set(storage.KeyDarkMode, strconv.FormatBool(next.UI.DarkMode)))
		}
	}
}
