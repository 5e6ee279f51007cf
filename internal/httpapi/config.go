package httpapi

// maxBodyBytes controls the maximum allowed request body size for JSON
// endpoints. Default is 1 MiB.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// maxBatchPairs limits the number of pairs accepted by /batch_predict.
// Zero means unlimited (body size still bounds the practical maximum).
var maxBatchPairs = 0

// SetMaxBatchPairs sets the batch size limit (0 disables).
func SetMaxBatchPairs(n int) {
	if n < 0 {
		n = 0
	}
	maxBatchPairs = n
}

// predictTimeout bounds how long a predict call may run before the boundary
// cancels it. Zero means no additional timeout beyond server/connection
// timeouts; the engine itself never enforces one.
var predictTimeout = int64(0) // seconds

// SetPredictTimeoutSeconds sets the predict timeout in seconds (0 disables).
func SetPredictTimeoutSeconds(sec int64) {
	if sec < 0 {
		sec = 0
	}
	predictTimeout = sec
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}
