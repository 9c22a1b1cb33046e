package middleware

import "net/http"

// RequireRoles es el gate de autorización por recurso: sin claims => 401,
// claims sin ninguno de los roles pedidos => 403. El handler detrás puede
// asumir un caller autorizado.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok || claims.Username == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if !claims.HasAnyRole(roles...) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
