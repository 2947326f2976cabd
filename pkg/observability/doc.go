/*
Package observability turns lifecycle events into metrics and log lines.

Both Metrics.Hooks and LoggingHooks return domain.LifecycleHooks, so they can
be merged and handed to the theme store, contact sessions and notification
queues:

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	hooks := metrics.Hooks().Merge(observability.LoggingHooks(logger))
*/
package observability
