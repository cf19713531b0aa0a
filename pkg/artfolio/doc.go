// Package artfolio is a client for the artist portfolio backend.
//
// A single Client holds the backend address, the request timeout and the
// CredentialStore. PublicClient and AdminClient are thin wrappers around it:
//
//	store := artfolio.NewMemoryStore()
//	core, err := artfolio.New("http://localhost:8001", store)
//	if err != nil {
//		return err
//	}
//	public := artfolio.NewPublicClient(core)
//	admin := artfolio.NewAdminClient(core, nav)
//
// Requests to paths under /api/admin/ carry the stored credentials as basic
// auth. Callers put the route they act for into the context with WithRoute;
// a 401 received while that route is an admin view clears the store and
// sends the Navigator to RouteAdminLogin.
//
// Every failure is an *Error whose Kind can be matched with errors.Is against
// ErrNetwork, ErrAuth, ErrNotFound, ErrValidation, ErrServer and ErrDecode.
// Nothing is retried or cached.
package artfolio
