package sdk_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/luminesce-sdk/pkg/sdk"
)

var errConstructor = errors.New("constructor failed")

type QueriesAPI interface {
	sdk.APIAccessor
	Run(sql string) string
}

type OtherAPI interface {
	sdk.APIAccessor
	Other()
}

// plainInterface does not embed APIAccessor.
type plainInterface interface {
	Run(sql string) string
}

type queriesClient struct {
	config *sdk.Configuration
}

func (c *queriesClient) Configuration() *sdk.Configuration { return c.config }
func (c *queriesClient) BasePath() string                  { return c.config.BasePath }
func (c *queriesClient) Run(sql string) string             { return sql }

func newQueriesClient(config *sdk.Configuration) (*queriesClient, error) {
	return &queriesClient{config: config}, nil
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	desc := sdk.Describe[QueriesAPI](newQueriesClient)
	assert.Equal(t, reflect.TypeFor[*queriesClient](), desc.Concrete)
	assert.Equal(t, reflect.TypeFor[QueriesAPI](), desc.Interface)
	assert.Equal(t, "*sdk_test.queriesClient (sdk_test.QueriesAPI)", desc.String())
	require.NoError(t, desc.Validate())

	config := sdk.NewConfiguration("https://example.lusid.com/honeycomb", nil)

	instance, err := desc.New(config)
	require.NoError(t, err)
	assert.Same(t, config, instance.Configuration())
	assert.IsType(t, &queriesClient{}, instance)
}

func TestDescribe_ConstructorError(t *testing.T) {
	t.Parallel()

	desc := sdk.Describe[QueriesAPI](func(*sdk.Configuration) (*queriesClient, error) {
		return nil, errConstructor
	})

	instance, err := desc.New(nil)
	require.ErrorIs(t, err, errConstructor)
	assert.Nil(t, instance)
}

func TestDescribeConcrete(t *testing.T) {
	t.Parallel()

	desc := sdk.DescribeConcrete(newQueriesClient)
	assert.Nil(t, desc.Interface)
	assert.Equal(t, "*sdk_test.queriesClient", desc.String())

	err := desc.Validate()
	require.ErrorIs(t, err, sdk.ErrConstructionFailure)
	require.ErrorIs(t, err, sdk.ErrNoCapabilityInterface)
}

func TestDescriptor_Validate(t *testing.T) {
	t.Parallel()

	newFn := sdk.Describe[QueriesAPI](newQueriesClient).New

	tests := []struct {
		name        string
		desc        sdk.Descriptor
		wantNoIface bool
	}{
		{
			name: "missing constructor",
			desc: sdk.Descriptor{Concrete: reflect.TypeFor[*queriesClient](), Interface: reflect.TypeFor[QueriesAPI]()},
		},
		{
			name: "missing concrete type",
			desc: sdk.Descriptor{Interface: reflect.TypeFor[QueriesAPI](), New: newFn},
		},
		{
			name: "interface as concrete type",
			desc: sdk.Descriptor{Concrete: reflect.TypeFor[QueriesAPI](), Interface: reflect.TypeFor[QueriesAPI](), New: newFn},
		},
		{
			name:        "accessor as capability",
			desc:        sdk.Descriptor{Concrete: reflect.TypeFor[*queriesClient](), Interface: sdk.AccessorType(), New: newFn},
			wantNoIface: true,
		},
		{
			name:        "interface without accessor",
			desc:        sdk.Descriptor{Concrete: reflect.TypeFor[*queriesClient](), Interface: reflect.TypeFor[plainInterface](), New: newFn},
			wantNoIface: true,
		},
		{
			name:        "struct as capability",
			desc:        sdk.Descriptor{Concrete: reflect.TypeFor[*queriesClient](), Interface: reflect.TypeFor[queriesClient](), New: newFn},
			wantNoIface: true,
		},
		{
			name: "capability not implemented",
			desc: sdk.Descriptor{Concrete: reflect.TypeFor[*queriesClient](), Interface: reflect.TypeFor[OtherAPI](), New: newFn},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.desc.Validate()
			require.ErrorIs(t, err, sdk.ErrConstructionFailure)
			assert.Equal(t, tt.wantNoIface, errors.Is(err, sdk.ErrNoCapabilityInterface))
		})
	}
}
