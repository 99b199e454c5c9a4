// Package resilience groups the fault tolerance helpers used by the catalog
// API client.
//
//   - circuitbreaker stops calling an upstream that keeps failing
//   - retry re-runs transient failures with exponential backoff and jitter
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.CatalogAPIConfig("dummyjson"))
//	err := retry.WithBackoff(ctx, retry.DefaultConfig(), func() error {
//	    page, err = circuitbreaker.Do(cb, func() (browse.Page, error) {
//	        return fetch(ctx)
//	    })
//	    return err
//	})
package resilience
