package cfg

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'gocfg'. Only the CNF pipeline and the CFG×DFA
// intersection builder call it: both run once per grammar transformation,
// never per membership query, so the core recognizer stays free of I/O as
// required by spec §5.
func tracer() tracing.Trace {
	return tracing.Select("gocfg")
}
