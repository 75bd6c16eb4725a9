// Package client is the data-synchronization layer used by admin and site
// frontends. It keeps locally cached resource collections consistent with
// the REST backend: a typed Client issues the requests, a Cache holds
// fetched values addressed by query key with subscription-based
// invalidation, a Coordinator invalidates cached kinds after successful
// mutations, and a SessionStore carries the bearer token across restarts.
//
// Nothing in this package is a singleton; construct instances explicitly
// and pass them to whatever renders the data.
package client
