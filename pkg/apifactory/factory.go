package apifactory

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/fivetwenty-io/luminesce-sdk/pkg/api"
	"github.com/fivetwenty-io/luminesce-sdk/pkg/sdk"
)

// Provider hands out API clients by type. *Factory implements it.
type Provider interface {
	Lookup(t reflect.Type) (sdk.APIAccessor, error)
}

// Factory holds one instance of every registered API client.
type Factory struct {
	config *sdk.Configuration
	apis   map[reflect.Type]sdk.APIAccessor
}

type options struct {
	descriptors []sdk.Descriptor
	overridden  bool
	concurrency int
	logger      sdk.Logger
}

// Option configures New.
type Option func(*options)

// WithDescriptors replaces the bundled clients with descs. With no descs the
// factory is empty.
func WithDescriptors(descs ...sdk.Descriptor) Option {
	return func(o *options) {
		o.descriptors = descs
		o.overridden = true
	}
}

// WithConcurrency constructs up to n clients at once. The default is 1.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = max(n, 1)
	}
}

// WithLogger sets the logger used while building the factory.
func WithLogger(logger sdk.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New builds every client from config. config is used as given and is shared
// by all clients for the lifetime of the factory.
func New(config *sdk.Configuration, opts ...Option) (*Factory, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: configuration is required", sdk.ErrInvalidConfiguration)
	}

	o := &options{concurrency: 1}
	for _, opt := range opts {
		opt(o)
	}

	if !o.overridden {
		o.descriptors = api.Descriptors()
	}

	apis, err := build(config, o)
	if err != nil {
		return nil, err
	}

	return &Factory{config: config, apis: apis}, nil
}

// NewFromAPIConfiguration derives a configuration from apiConfig (see
// NewConfiguration) and builds a factory from it.
func NewFromAPIConfiguration(apiConfig *sdk.APIConfiguration, opts ...Option) (*Factory, error) {
	config, err := NewConfiguration(apiConfig)
	if err != nil {
		return nil, err
	}

	return New(config, opts...)
}

func build(config *sdk.Configuration, o *options) (map[reflect.Type]sdk.APIAccessor, error) {
	apis := make(map[reflect.Type]sdk.APIAccessor, 2*len(o.descriptors))

	var mutex sync.Mutex

	group, ctx := errgroup.WithContext(context.Background())
	group.SetLimit(o.concurrency)

	for _, desc := range o.descriptors {
		group.Go(func() error {
			// Another client already failed.
			if ctx.Err() != nil {
				return ctx.Err()
			}

			instance, err := construct(config, desc)
			if err != nil {
				return err
			}

			mutex.Lock()
			defer mutex.Unlock()

			for _, key := range []reflect.Type{desc.Concrete, desc.Interface} {
				if _, exists := apis[key]; exists {
					return fmt.Errorf("%w: %s: %w", sdk.ErrConstructionFailure, key, sdk.ErrDuplicateRegistration)
				}
			}

			apis[desc.Concrete] = instance
			apis[desc.Interface] = instance

			if o.logger != nil {
				o.logger.Debug("Registered API", map[string]interface{}{
					"type":      desc.Concrete.String(),
					"interface": desc.Interface.String(),
				})
			}

			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		if o.logger != nil {
			o.logger.Error("Failed to build API factory", map[string]interface{}{"error": err.Error()})
		}

		return nil, err
	}

	return apis, nil
}

// construct builds the client described by desc and checks it has the declared type.
func construct(config *sdk.Configuration, desc sdk.Descriptor) (sdk.APIAccessor, error) {
	err := desc.Validate()
	if err != nil {
		return nil, err
	}

	instance, err := desc.New(config)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", sdk.ErrConstructionFailure, desc.Concrete, err)
	}

	if isNil(instance) {
		return nil, fmt.Errorf("%w: %s: constructor returned nil", sdk.ErrConstructionFailure, desc.Concrete)
	}

	if actual := reflect.TypeOf(instance); actual != desc.Concrete {
		return nil, fmt.Errorf("%w: %s: constructor returned %s", sdk.ErrConstructionFailure, desc.Concrete, actual)
	}

	return instance, nil
}

func isNil(instance sdk.APIAccessor) bool {
	if instance == nil {
		return true
	}

	value := reflect.ValueOf(instance)

	switch value.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return value.IsNil()
	default:
		return false
	}
}

// Lookup implements Provider.
func (f *Factory) Lookup(t reflect.Type) (sdk.APIAccessor, error) {
	instance, ok := f.apis[t]
	if !ok {
		return nil, fmt.Errorf("%w: %v", sdk.ErrAPINotFound, t)
	}

	return instance, nil
}

// Configuration returns the configuration shared by every client.
func (f *Factory) Configuration() *sdk.Configuration {
	return f.config
}

// Keys returns every registered type, concrete types and interfaces alike, in
// no particular order.
func (f *Factory) Keys() []reflect.Type {
	return slices.Collect(maps.Keys(f.apis))
}

// Len returns the number of registered keys.
func (f *Factory) Len() int {
	return len(f.apis)
}

// API returns the client registered under T, which is either a capability
// interface such as api.SQLExecutionAPI or a concrete type such as
// *api.SQLExecutionClient.
func API[T any](p Provider) (T, error) {
	var zero T

	key := reflect.TypeFor[T]()

	instance, err := p.Lookup(key)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %T is not %v", sdk.ErrTypeMismatch, instance, key)
	}

	return typed, nil
}

// MustAPI is like API but panics on error. It is intended for wiring at start-up.
func MustAPI[T any](p Provider) T {
	instance, err := API[T](p)
	if err != nil {
		panic(err)
	}

	return instance
}
