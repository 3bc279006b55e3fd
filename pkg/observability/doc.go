/*
Package observability turns engine lifecycle hooks into Prometheus metrics and
structured log records.

	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	eng := automata.New(automata.WithLifecycleHooks(
		observability.Chain(m.Hooks(), observability.LogHooks(logger)),
	))
*/
package observability
