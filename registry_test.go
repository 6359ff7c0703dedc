package record_test

import (
	"errors"
	"testing"

	"github.com/zoobzio/record"
)

type CacheTestUser struct {
	Name string `prop:"name"`
}

func TestResolve_Caching(t *testing.T) {
	record.Reset() // Clear cache

	d1, err := record.Resolve[CacheTestUser]()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	d2, err := record.Resolve[CacheTestUser]()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if d1 != d2 {
		t.Error("Resolve() should return cached descriptor")
	}
}

func TestNew_SharesDescriptor(t *testing.T) {
	record.Reset()

	c1, _ := record.New[CacheTestUser]()
	c2, _ := record.New[CacheTestUser](record.WithRequireMarker())

	if c1.Descriptor() != c2.Descriptor() {
		t.Error("codecs for the same type should share one descriptor")
	}
}

func TestNew_PropagatesResolveError(t *testing.T) {
	c, err := record.New[string]()
	if !errors.Is(err, record.ErrMetadataUnavailable) {
		t.Errorf("New[string]() error = %v, want ErrMetadataUnavailable", err)
	}
	if c != nil {
		t.Error("New() should return nil codec on error")
	}
}

func TestReset(t *testing.T) {
	d1, _ := record.Resolve[CacheTestUser]()

	record.Reset()

	d2, _ := record.Resolve[CacheTestUser]()

	if d1 == d2 {
		t.Error("Reset() should clear cache, new descriptor expected")
	}
}

func TestRegisterConstructor_InvalidatesCache(t *testing.T) {
	record.Reset()

	before, _ := record.Resolve[CacheTestUser]()
	if before.HasConstructor() {
		t.Fatal("no constructor expected before registration")
	}

	err := record.RegisterConstructor[CacheTestUser](func(name string) CacheTestUser {
		return CacheTestUser{Name: name}
	})
	if err != nil {
		t.Fatalf("RegisterConstructor() error: %v", err)
	}

	after, _ := record.Resolve[CacheTestUser]()
	if !after.HasConstructor() {
		t.Error("descriptor should be rebuilt with the constructor")
	}
}
