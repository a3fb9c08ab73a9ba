// Package jsoncodec provides a configurable JSON encoding/decoding layer for
// the record serialization surface (scipaper's ToJSON/FromJSON).
// It defaults to encoding/json but can be swapped for a faster implementation
// such as github.com/goccy/go-json or github.com/bytedance/sonic without
// touching the record serialization code.
//
// Usage:
//
//	import "github.com/antflydb/scipaper/jsoncodec"
//
//	data, err := jsoncodec.Marshal(v)
//	err = jsoncodec.Unmarshal(data, &v)
//
// To use a different JSON library:
//
//	import (
//		"github.com/antflydb/scipaper/jsoncodec"
//		gojson "github.com/goccy/go-json"
//	)
//
//	func init() {
//		jsoncodec.SetConfig(jsoncodec.Config{
//			Marshal:   gojson.Marshal,
//			Unmarshal: gojson.Unmarshal,
//		})
//	}
package jsoncodec

import (
	stdjson "encoding/json"
)

// Config holds the JSON encoding/decoding functions used by the record
// serialization surface.
type Config struct {
	Marshal   func(v any) ([]byte, error)
	Unmarshal func(data []byte, v any) error
}

// DefaultConfig returns the default configuration using encoding/json.
func DefaultConfig() Config {
	return Config{
		Marshal:   stdjson.Marshal,
		Unmarshal: stdjson.Unmarshal,
	}
}

var config = DefaultConfig()

// SetConfig sets the global JSON configuration. Call before using any
// serialization functions to switch JSON libraries.
func SetConfig(c Config) {
	config = c
}

// GetConfig returns the current JSON configuration.
func GetConfig() Config {
	return config
}

// Marshal returns the JSON encoding of v.
func Marshal(v any) ([]byte, error) {
	return config.Marshal(v)
}

// Unmarshal parses the JSON-encoded data and stores the result in v.
func Unmarshal(data []byte, v any) error {
	return config.Unmarshal(data, v)
}

// RawMessage is a raw encoded JSON value, usable to delay decoding.
type RawMessage = stdjson.RawMessage
