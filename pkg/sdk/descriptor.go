package sdk

import (
	"fmt"
	"reflect"
)

// Descriptor registers one concrete client type. It replaces scanning the
// program for APIAccessor implementations: the client library lists one
// Descriptor per client.
type Descriptor struct {
	// Concrete is the dynamic type of the instances New returns.
	Concrete reflect.Type
	// Interface is the domain capability interface the client is looked up by.
	Interface reflect.Type
	// New builds a client from the shared configuration.
	New func(*Configuration) (APIAccessor, error)
}

// Describe returns the Descriptor of the client built by newFn, looked up by
// both its concrete type T and the capability interface I.
func Describe[I APIAccessor, T APIAccessor](newFn func(*Configuration) (T, error)) Descriptor {
	desc := DescribeConcrete(newFn)
	desc.Interface = reflect.TypeFor[I]()

	return desc
}

// DescribeConcrete returns a Descriptor without a capability interface. An API
// factory refuses such a descriptor.
func DescribeConcrete[T APIAccessor](newFn func(*Configuration) (T, error)) Descriptor {
	return Descriptor{
		Concrete: reflect.TypeFor[T](),
		New: func(config *Configuration) (APIAccessor, error) {
			api, err := newFn(config)
			if err != nil {
				return nil, err
			}

			return api, nil
		},
	}
}

// AccessorType is the reflect.Type of APIAccessor.
func AccessorType() reflect.Type {
	return reflect.TypeFor[APIAccessor]()
}

// Validate checks that the descriptor names a constructor, a concrete type and
// a domain capability interface implemented by that type.
func (d Descriptor) Validate() error {
	if d.Concrete == nil || d.New == nil {
		return fmt.Errorf("%w: incomplete descriptor %s", ErrConstructionFailure, d)
	}

	if d.Concrete.Kind() == reflect.Interface {
		return fmt.Errorf("%w: %s is not a concrete type", ErrConstructionFailure, d.Concrete)
	}

	if d.Interface == nil {
		return fmt.Errorf("%w: %s: %w", ErrConstructionFailure, d.Concrete, ErrNoCapabilityInterface)
	}

	accessor := AccessorType()

	if d.Interface.Kind() != reflect.Interface || d.Interface == accessor || !d.Interface.Implements(accessor) {
		return fmt.Errorf("%w: %s: %s is not a capability interface: %w",
			ErrConstructionFailure, d.Concrete, d.Interface, ErrNoCapabilityInterface)
	}

	if !d.Concrete.Implements(d.Interface) {
		return fmt.Errorf("%w: %s does not implement %s", ErrConstructionFailure, d.Concrete, d.Interface)
	}

	return nil
}

// String implements fmt.Stringer.
func (d Descriptor) String() string {
	if d.Interface == nil {
		return fmt.Sprintf("%v", d.Concrete)
	}

	return fmt.Sprintf("%v (%v)", d.Concrete, d.Interface)
}
