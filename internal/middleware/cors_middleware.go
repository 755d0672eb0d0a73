package middleware

// OriginAllowed returns the allow-list predicate for cross-origin requests.
// Exactly one configured origin is accepted; responses to any other origin
// carry no CORS headers, so browsers refuse to expose them. The predicate is
// plugged into the Fiber CORS middleware via AllowOriginsFunc.
func OriginAllowed(allowed string) func(origin string) bool {
	return func(origin string) bool {
		return origin == allowed
	}
}
