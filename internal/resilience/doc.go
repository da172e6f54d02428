// Package resilience groups the fault-tolerance helpers used by the HTTP page client.
//
//   - circuitbreaker: fail fast while the records API is down
//   - retry: bounded exponential backoff with jitter for transient failures
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.PageClientConfig())
//	page, err := circuitbreaker.Do(cb, func() (entity.FetchResult, error) {
//	    var res entity.FetchResult
//	    err := retry.WithBackoff(ctx, retry.PageClientConfig(), func() error {
//	        var err error
//	        res, err = fetchOnce(ctx)
//	        return err
//	    })
//	    return res, err
//	})
package resilience
