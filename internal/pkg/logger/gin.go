package logger

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// SetupGin installs the JSON access log and panic recovery.
func SetupGin(r *gin.Engine, index, token string) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		SkipPaths: []string{"/api/ping"},
		Formatter: accessLogFormatter(index, token),
	}))
	r.Use(gin.Recovery())
}

func accessLogFormatter(index, token string) gin.LogFormatter {
	return func(p gin.LogFormatterParams) string {
		var traceID string
		if p.Keys != nil {
			if id, ok := p.Keys[TraceIDKey].(string); ok {
				traceID = id
			}
		}
		if traceID == "" && p.Request != nil {
			traceID = TraceID(p.Request.Context())
		}

		return fmt.Sprintf(
			`{"time":"%s","level":"INFO","msg":"GIN_ACCESS","trace_id":"%s","log_token":"%s","target_index":"%s","method":"%s","path":"%s","query":%q,"status":%d,"latency":"%v"}`+"\n",
			p.TimeStamp.Format(time.RFC3339),
			traceID,
			token,
			index,
			p.Method,
			p.Path,
			queryOf(p),
			p.StatusCode,
			p.Latency,
		)
	}
}

func queryOf(p gin.LogFormatterParams) string {
	if p.Request == nil || p.Request.URL == nil {
		return ""
	}
	return p.Request.URL.RawQuery
}
