/*
Package observability provides Prometheus instrumentation for the generator.

Metrics are registered on a dedicated registry so that several builders (for
instance in tests) never collide on the global default registry. The registry
can be served over HTTP or written to a node_exporter textfile at the end of a
run.
*/
package observability
