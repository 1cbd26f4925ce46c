package ctxutil

import "context"

type traceKey struct{}

// TraceData carries the correlation ids of the current request.
type TraceData struct {
	TraceID   string
	RequestID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	td, _ := ctx.Value(traceKey{}).(*TraceData)
	return td
}

// LogFields returns key/value pairs for whichever correlation ids are set.
func LogFields(ctx context.Context) []interface{} {
	td := GetTraceData(ctx)
	if td == nil {
		return nil
	}
	var fields []interface{}
	for _, kv := range [...]struct{ k, v string }{{"trace_id", td.TraceID}, {"request_id", td.RequestID}} {
		if kv.v != "" {
			fields = append(fields, kv.k, kv.v)
		}
	}
	return fields
}
