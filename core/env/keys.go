package env

// Well-known environment keys. The strings are an external compatibility
// surface shared with every host publishing the same convention; do not
// change them.
const (
	KeyResponseStatusCode = "owin.ResponseStatusCode"
	KeyResponseHeaders    = "owin.ResponseHeaders"
	KeyResponseBody       = "owin.ResponseBody"

	KeyRequestMethod      = "owin.RequestMethod"
	KeyRequestPath        = "owin.RequestPath"
	KeyRequestPathBase    = "owin.RequestPathBase"
	KeyRequestQueryString = "owin.RequestQueryString"
	KeyRequestScheme      = "owin.RequestScheme"
	KeyRequestProtocol    = "owin.RequestProtocol"
	KeyRequestHeaders     = "owin.RequestHeaders"
	KeyRequestBody        = "owin.RequestBody"

	KeyCallCancelled = "owin.CallCancelled"
	KeyVersion       = "owin.Version"

	// KeyServerRequest holds the originating *http.Request.
	KeyServerRequest = "server.Request"
	// KeyServerServices holds the request-scoped handler.ServiceResolver.
	KeyServerServices = "server.Services"

	// KeyUpgradeAccept holds an upgrade.AcceptFunc (callback shape).
	// Absent when the connection cannot be upgraded.
	KeyUpgradeAccept = "websocket.Accept"
	// KeyUpgradeAcceptFuture holds an upgrade.AcceptFutureFunc (future shape).
	// Absent when the connection cannot be upgraded.
	KeyUpgradeAcceptFuture = "websocket.AcceptAlt"

	// KeyContext holds the owning handler.Context. It is published under the
	// full name of the context type.
	KeyContext = "github.com/dmitrymomot/pipebridge/core/handler.Context"
)

// Version is the value published under KeyVersion.
const Version = "1.0.0"

// requestKeys are synthesized from the request when one is available.
var requestKeys = []string{
	KeyRequestMethod,
	KeyRequestPath,
	KeyRequestPathBase,
	KeyRequestQueryString,
	KeyRequestScheme,
	KeyRequestProtocol,
	KeyRequestHeaders,
	KeyRequestBody,
	KeyServerRequest,
}

var reserved = map[string]struct{}{
	KeyResponseStatusCode:  {},
	KeyResponseHeaders:     {},
	KeyResponseBody:        {},
	KeyCallCancelled:       {},
	KeyVersion:             {},
	KeyUpgradeAccept:       {},
	KeyUpgradeAcceptFuture: {},
	KeyContext:             {},
	KeyServerServices:      {},
}

func init() {
	for _, k := range requestKeys {
		reserved[k] = struct{}{}
	}
}

// IsReserved reports whether key is a well-known key synthesized from the
// context rather than stored in its extension bag.
func IsReserved(key string) bool {
	_, ok := reserved[key]
	return ok
}
