package record

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for record events.
var (
	SignalResolved            = capitan.NewSignal("record.descriptor.resolved", "Descriptor built and cached")
	SignalSerializeStart      = capitan.NewSignal("record.serialize.start", "Serialize operation beginning")
	SignalSerializeComplete   = capitan.NewSignal("record.serialize.complete", "Serialize operation finished")
	SignalDeserializeStart    = capitan.NewSignal("record.deserialize.start", "Deserialize operation beginning")
	SignalDeserializeComplete = capitan.NewSignal("record.deserialize.complete", "Deserialize operation finished")
)

// Keys for typed event data.
var (
	KeyTypeName    = capitan.NewStringKey("type_name")
	KeyFieldCount  = capitan.NewIntKey("field_count")
	KeyContentType = capitan.NewStringKey("content_type")
	KeySize        = capitan.NewIntKey("size")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

// emitResolved emits an event when a descriptor is built.
func emitResolved(ctx context.Context, typeName string, fields int) {
	capitan.Emit(ctx, SignalResolved,
		KeyTypeName.Field(typeName),
		KeyFieldCount.Field(fields),
	)
}

// emitSerializeStart emits an event when serialize begins.
func emitSerializeStart(ctx context.Context, typeName string) {
	capitan.Emit(ctx, SignalSerializeStart,
		KeyTypeName.Field(typeName),
	)
}

// emitSerializeComplete emits an event when serialize finishes.
// contentType and size are set only when the result was wire-encoded.
func emitSerializeComplete(ctx context.Context, typeName, contentType string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
	}
	if contentType != "" {
		fields = append(fields, KeyContentType.Field(contentType), KeySize.Field(size))
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalSerializeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalSerializeComplete, fields...)
	}
}

// emitDeserializeStart emits an event when deserialize begins.
func emitDeserializeStart(ctx context.Context, typeName string) {
	capitan.Emit(ctx, SignalDeserializeStart,
		KeyTypeName.Field(typeName),
	)
}

// emitDeserializeComplete emits an event when deserialize finishes.
func emitDeserializeComplete(ctx context.Context, typeName, contentType string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
	}
	if contentType != "" {
		fields = append(fields, KeyContentType.Field(contentType), KeySize.Field(size))
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDeserializeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDeserializeComplete, fields...)
	}
}
