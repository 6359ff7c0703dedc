package cli

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/zoobzio/record"
	bsonwire "github.com/zoobzio/record/bson"
	jsonwire "github.com/zoobzio/record/json"
	msgpackwire "github.com/zoobzio/record/msgpack"
	tomlwire "github.com/zoobzio/record/toml"
	yamlwire "github.com/zoobzio/record/yaml"
)

// formats maps --from, --to and --format values to wire encodings.
var formats = map[string]func() record.Wire{
	"bson":    bsonwire.New,
	"json":    jsonwire.New,
	"msgpack": msgpackwire.New,
	"toml":    tomlwire.New,
	"yaml":    yamlwire.New,
}

// textFormats get a trailing newline when written to a terminal.
var textFormats = map[string]bool{"json": true, "toml": true, "yaml": true}

var errEmptyDocument = errors.New("document holds no properties")

func wireFor(name string) (record.Wire, error) {
	newWire, ok := formats[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (want one of %s)", name, strings.Join(formatNames(), ", "))
	}
	return newWire(), nil
}

func formatNames() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// decodeProperties decodes one property map document.
func decodeProperties(w record.Wire, data []byte) (record.Properties, error) {
	var m map[string]any
	if err := w.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", w.ContentType(), err)
	}
	if len(m) == 0 {
		return nil, errEmptyDocument
	}
	return record.Properties(m), nil
}

// encodeProperties encodes p with the named format.
func encodeProperties(format string, p record.Properties) ([]byte, error) {
	w, err := wireFor(format)
	if err != nil {
		return nil, err
	}
	data, err := w.Marshal(map[string]any(p))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", w.ContentType(), err)
	}
	if textFormats[format] && !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	return data, nil
}
