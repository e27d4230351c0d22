package storage

// TokenSource exposes the persisted bearer token to the HTTP adapter.
// Invalidate is called by the adapter on a 401 so that the durable token can
// never outlive its rejection by the server.
type TokenSource struct {
	KV KV
}

// Token returns the stored bearer token, or "" when none is persisted.
func (t TokenSource) Token() string {
	v, ok, err := t.KV.Get(KeyAuthToken)
	if err != nil || !ok {
		return ""
	}
	return v
}

// Invalidate removes the persisted token and user. Errors are swallowed:
// the caller is already on an unauthorized path and a best-effort cleanup
// is all the adapter can do.
func (t TokenSource) Invalidate() {
	_ = t.KV.Delete(KeyAuthToken)
	_ = t.KV.Delete(KeyAuthUser)
}
