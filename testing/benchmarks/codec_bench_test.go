package benchmarks

import (
	"context"
	"testing"

	"github.com/zoobzio/record"
	"github.com/zoobzio/record/json"
	"github.com/zoobzio/record/msgpack"
	"github.com/zoobzio/record/store"
	rtesting "github.com/zoobzio/record/testing"
)

func BenchmarkResolve_Cached(b *testing.B) {
	_, _ = record.Resolve[rtesting.Reading]()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = record.Resolve[rtesting.Reading]()
	}
}

func BenchmarkCodec_Serialize(b *testing.B) {
	c := rtesting.Codec[rtesting.Reading](b)
	r := rtesting.SampleReading()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Serialize(ctx, r)
	}
}

func BenchmarkCodec_Deserialize_Exact(b *testing.B) {
	c := rtesting.Codec[rtesting.Reading](b)
	ctx := context.Background()
	props, _ := c.Serialize(ctx, rtesting.SampleReading())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Deserialize(ctx, props)
	}
}

func BenchmarkCodec_Deserialize_Coerced(b *testing.B) {
	c := rtesting.Codec[rtesting.Reading](b)
	ctx := context.Background()
	props, _ := c.Serialize(ctx, rtesting.SampleReading())
	widened, _ := store.NormalizeProperties(props)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Deserialize(ctx, widened)
	}
}

func BenchmarkCodec_Deserialize_Parser(b *testing.B) {
	record.Reset()
	rtesting.RegisterSKUParser()
	c := rtesting.Codec[rtesting.LineItem](b)
	props := record.Properties{"sku": "AB-12", "quantity": int64(4)}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Deserialize(ctx, props)
	}
}

func BenchmarkCodec_Marshal_JSON(b *testing.B) {
	c := rtesting.Codec[rtesting.Reading](b)
	w := json.New()
	r := rtesting.SampleReading()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Marshal(ctx, w, r)
	}
}

func BenchmarkCodec_Unmarshal_MessagePack(b *testing.B) {
	c := rtesting.Codec[rtesting.Reading](b)
	w := msgpack.New()
	ctx := context.Background()
	data, _ := c.Marshal(ctx, w, rtesting.SampleReading())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Unmarshal(ctx, w, data)
	}
}
