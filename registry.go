package record

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"github.com/zoobzio/sentinel"
	"golang.org/x/sync/singleflight"
)

var (
	registry   = make(map[reflect.Type]*Descriptor)
	registryMu sync.RWMutex
	builds     singleflight.Group

	// generation changes whenever cached descriptors are invalidated.
	// Builds started under an older generation do not cache their result.
	generation uint64
)

// Resolve returns the cached descriptor for T or builds a new one.
// T must be a struct type with at least one exported field.
func Resolve[T any]() (*Descriptor, error) {
	rt := reflect.TypeFor[T]()
	return resolve(rt, func() sentinel.Metadata {
		return sentinel.Scan[T]()
	})
}

// ResolveType is Resolve for a type known only at runtime.
func ResolveType(rt reflect.Type) (*Descriptor, error) {
	if rt == nil {
		return nil, newTypeError(ErrMetadataUnavailable, "<nil>", nil)
	}
	return resolve(rt, func() sentinel.Metadata {
		return scanType(rt)
	})
}

func resolve(rt reflect.Type, scan func() sentinel.Metadata) (*Descriptor, error) {
	// Fast path: read-lock cache check
	registryMu.RLock()
	if d, ok := registry[rt]; ok {
		registryMu.RUnlock()
		return d, nil
	}
	gen := generation
	registryMu.RUnlock()

	if rt.Kind() != reflect.Struct {
		return nil, newTypeError(ErrMetadataUnavailable, qualifiedName(rt),
			fmt.Errorf("kind %s is not a struct", rt.Kind()))
	}

	// Slow path: concurrent callers for the same type share one build.
	v, err, _ := builds.Do(buildKey(rt, gen), func() (any, error) {
		registryMu.RLock()
		if d, ok := registry[rt]; ok {
			registryMu.RUnlock()
			return d, nil
		}
		registryMu.RUnlock()

		d, err := buildDescriptor(rt, scan())
		if err != nil {
			return nil, err
		}

		registryMu.Lock()
		if generation == gen {
			registry[rt] = d
		}
		registryMu.Unlock()

		emitResolved(context.Background(), d.typeName, len(d.fields))
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Descriptor), nil
}

// buildKey identifies rt for singleflight; String alone is ambiguous across
// packages. The generation keeps callers from joining a stale build.
func buildKey(rt reflect.Type, gen uint64) string {
	return rt.PkgPath() + "|" + rt.String() + "|" + strconv.FormatUint(gen, 10)
}

// forget drops a cached descriptor so the next Resolve rebuilds it.
func forget(rt reflect.Type) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, rt)
	generation++
}

// Reset clears cached descriptors, registered constructors and parsers.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	registry = make(map[reflect.Type]*Descriptor)
	generation++
	registryMu.Unlock()

	constructorsMu.Lock()
	constructors = make(map[reflect.Type]reflect.Value)
	constructorsMu.Unlock()

	parsersMu.Lock()
	parsers = make(map[reflect.Type]parseFunc)
	parsersMu.Unlock()
}
