// Package health reports whether the catalog's collaborators are usable.
//
// Checkers cover the statistics cache (fresh, stale or failing), store
// reachability and the store circuit breaker. An Aggregator runs them under
// one deadline and folds the results into a Report whose overall status is
// the worst individual status.
package health
