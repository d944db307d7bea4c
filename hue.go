// Package hue is a small client for the v1 REST API of a Philips Hue bridge.
//
// It covers listing lights, reading one light's attributes, changing its
// state and renaming it. Light state is sparse: every field is a pointer
// and only the fields that are set go on the wire.
//
//	c := hue.New("192.168.1.10", "newdeveloper")
//	status, ok := c.SetState(ctx, "1", hue.State{On: hue.Bool(true), Bri: hue.Uint8(100)})
//
// Requests never return errors. A failed call yields the zero value and
// false, and the cause is logged at debug level.
package hue

import (
	"context"
	"errors"
	"fmt"

	"hue-rest-client/internal/adapters/output/bridge"
	"hue-rest-client/internal/adapters/output/persistence"
	"hue-rest-client/internal/config"
	"hue-rest-client/internal/domain/codec"
	"hue-rest-client/internal/domain/model"
	"hue-rest-client/internal/domain/translator"
	"hue-rest-client/internal/logging"
	"hue-rest-client/internal/ports"
)

type (
	State       = model.State
	XY          = model.XY
	ColorMode   = model.ColorMode
	Alert       = model.Alert
	Effect      = model.Effect
	Attributes  = model.Attributes
	PointSymbol = model.PointSymbol
	Status      = model.Status
	LightEntry  = model.LightEntry
	Credentials = model.Credentials
	DecodeError = model.DecodeError

	Client = bridge.Client
	Option = bridge.Option
	Stage  = bridge.Stage

	Lights                = ports.Lights
	CredentialsRepository = ports.CredentialsRepository

	Config       = config.Config
	BridgeConfig = config.BridgeConfig
	LogConfig    = config.LogConfig
	Duration     = config.Duration

	Value  = codec.Value
	Object = codec.Object
)

const (
	ColorModeHueSat           = model.ColorModeHueSat
	ColorModeCieXY            = model.ColorModeCieXY
	ColorModeColorTemperature = model.ColorModeColorTemperature

	AlertNone    = model.AlertNone
	AlertSelect  = model.AlertSelect
	AlertLSelect = model.AlertLSelect

	EffectNone      = model.EffectNone
	EffectColorLoop = model.EffectColorLoop

	DefaultTimeout = bridge.DefaultTimeout
)

var (
	New                 = bridge.New
	WithTimeout         = bridge.WithTimeout
	WithHTTPClient      = bridge.WithHTTPClient
	WithLogger          = bridge.WithLogger
	WithStateValidation = bridge.WithStateValidation

	Bool         = model.Bool
	Uint8        = model.Uint8
	Uint16       = model.Uint16
	NewXY        = model.NewXY
	AlertPtr     = model.AlertPtr
	EffectPtr    = model.EffectPtr
	ColorModePtr = model.ColorModePtr

	ParseColorMode = model.ParseColorMode
	ParseAlert     = model.ParseAlert
	ParseEffect    = model.ParseEffect
	ValidateState  = model.ValidateState

	DecodeState      = model.DecodeState
	DecodeAttributes = model.DecodeAttributes
	DecodeStatus     = model.DecodeStatus
	DecodeLights     = model.DecodeLights

	Parse       = codec.Parse
	LoadConfig  = config.Load
	ParseConfig = config.Parse
	Null        = codec.Null
	StringValue = codec.StringValue
	BoolValue   = codec.BoolValue
	UintValue   = codec.UintValue
	ObjectValue = codec.ObjectValue

	StateToHuego        = translator.StateToHuego
	StateFromHuego      = translator.StateFromHuego
	AttributesFromHuego = translator.AttributesFromHuego
)

// ErrNoCredentials is returned when a repository holds no usable
// credentials.
var ErrNoCredentials = errors.New("hue: no bridge credentials")

// Get issues a GET for any path under the credential, such as "/config".
func Get[T any](ctx context.Context, c *Client, path string, decode func(Value) (T, bool)) (T, bool) {
	return bridge.Get[T](ctx, c, path, decode)
}

func Put[T any](ctx context.Context, c *Client, path string, body Value, decode func(Value) (T, bool)) (T, bool) {
	return bridge.Put[T](ctx, c, path, body, decode)
}

func Post[T any](ctx context.Context, c *Client, path string, body Value, decode func(Value) (T, bool)) (T, bool) {
	return bridge.Post[T](ctx, c, path, body, decode)
}

// NewFromConfig validates cfg and builds a client from its bridge section.
// A zero timeout means DefaultTimeout. Options given here are applied after
// the configured ones.
func NewFromConfig(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("hue: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("hue: invalid config: %w", err)
	}
	base := []Option{
		WithTimeout(cfg.Bridge.Timeout.Duration()),
		WithStateValidation(cfg.Bridge.ValidateState),
	}
	return New(cfg.Bridge.Host, cfg.Bridge.Credential, append(base, opts...)...), nil
}

// SetupLogging configures the global zerolog logger from the log section.
func SetupLogging(cfg LogConfig) {
	logging.Setup(cfg.Level, cfg.JSON, cfg.Colors)
}

// NewCredentialsRepository stores credentials as JSON at path.
func NewCredentialsRepository(path string) CredentialsRepository {
	return persistence.NewJSONCredentialsRepository(path)
}

// NewFromCredentials builds a client from stored credentials.
func NewFromCredentials(ctx context.Context, repo CredentialsRepository, opts ...Option) (*Client, error) {
	creds, err := repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("hue: load credentials: %w", err)
	}
	if creds == nil || creds.IsZero() {
		return nil, ErrNoCredentials
	}
	return New(creds.Host, creds.Credential, opts...), nil
}
