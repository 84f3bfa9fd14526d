package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/cdlmock/accountapi/internal/auth"
)

// TenantHeader carries the caller's tenant id.
const TenantHeader = "X-Cdl-Tenant-Id"

// TenantGate returns a Gate that admits only requests carrying exactly one tenant
// header equal to accepted. Repeated headers are denied.
func TenantGate(accepted string) Gate {
	want := []byte(accepted)
	return GateFunc(func(r *http.Request) (*http.Request, error) {
		vals := r.Header.Values(TenantHeader)
		if len(vals) != 1 || vals[0] == "" || subtle.ConstantTimeCompare([]byte(vals[0]), want) != 1 {
			return nil, auth.NewError(auth.KindForbiddenTenant, nil)
		}
		return r, nil
	})
}
