package instrumentation

// Cardinality helpers reduce label and log values that would otherwise be
// unbounded. Use them whenever a request path or form identifier ends up in
// a metric label or a general-purpose log line.

// Known HTTP paths. Everything else is reported as PathOther.
const (
	PathMCP     = "/mcp"
	PathHealthz = "/healthz"
	PathReadyz  = "/readyz"
	PathMetrics = "/metrics"
	PathOther   = "other"
)

// NormalizePath maps a request path onto a fixed set of label values.
//
//	NormalizePath("/mcp")         // "/mcp"
//	NormalizePath("/mcp/")        // "/mcp"
//	NormalizePath("/wp-login.php") // "other"
func NormalizePath(path string) string {
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	switch path {
	case PathMCP, PathHealthz, PathReadyz, PathMetrics:
		return path
	default:
		return PathOther
	}
}

// RedactID shortens an identifier to its first six characters so log lines
// stay correlatable without exposing the full form ID.
//
//	RedactID("1FAIpQLSfD2k")  // "1FAIpQ..."
//	RedactID("abc")           // "abc"
//	RedactID("")              // "unknown"
func RedactID(id string) string {
	const keep = 6
	if id == "" {
		return "unknown"
	}
	if len(id) <= keep {
		return id
	}
	return id[:keep] + "..."
}
