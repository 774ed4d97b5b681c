package projection

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMappingTarget_RejectsEmpty(t *testing.T) {
	_, err := NewMappingTarget(false)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewMappingTarget(true, "  ")
	require.ErrorIs(t, err, ErrInvalidArgument)

	target, err := NewMappingTarget(true, "FirstName", "LastName")
	require.NoError(t, err)
	assert.Equal(t, []string{"FirstName", "LastName"}, target.InternalFields)
	assert.True(t, target.Reverse)
}

func TestPropertyMapping_LookupIgnoresCase(t *testing.T) {
	m, err := NewPropertyMapping(map[string]MappingTarget{
		"FullName": Target("FirstName", "LastName"),
	})
	require.NoError(t, err)

	for _, name := range []string{"FullName", "fullname", "FULLNAME", " fullName "} {
		target, ok := m.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, []string{"FirstName", "LastName"}, target.InternalFields)
	}
	_, ok := m.Lookup("Name")
	assert.False(t, ok)
}

func TestPropertyMapping_RejectsBadEntries(t *testing.T) {
	_, err := NewPropertyMapping(map[string]MappingTarget{"name": {}})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewPropertyMapping(map[string]MappingTarget{"Name": Target("Name"), "name": Target("Name")})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPropertyMapping_CopiesTargets(t *testing.T) {
	fields := []string{"Name"}
	m, err := NewPropertyMapping(map[string]MappingTarget{"name": {InternalFields: fields}})
	require.NoError(t, err)

	fields[0] = "Changed"
	target, _ := m.Lookup("name")
	assert.Equal(t, []string{"Name"}, target.InternalFields)
}

func TestRegistry_LookupByTypePair(t *testing.T) {
	r := NewRegistry()
	m, err := NewPropertyMapping(map[string]MappingTarget{"name": Target("Name")})
	require.NoError(t, err)
	require.NoError(t, RegisterMapping[testDto, testEntity](r, m))

	got, err := LookupMapping[testDto, testEntity](r)
	require.NoError(t, err)
	assert.Same(t, m, got)

	// the pair is ordered
	_, err = LookupMapping[testEntity, testDto](r)
	require.ErrorIs(t, err, ErrMappingNotFound)

	_, err = r.Lookup(reflect.TypeOf(testDto{}), reflect.TypeOf(0))
	require.ErrorIs(t, err, ErrMappingNotFound)
}

func TestRegistry_RegisterValidates(t *testing.T) {
	r := NewRegistry()
	require.ErrorIs(t, RegisterMapping[testDto, testEntity](r, nil), ErrInvalidArgument)
	require.ErrorIs(t, r.Register(nil, reflect.TypeOf(0), &PropertyMapping{}), ErrInvalidArgument)
}

func TestRegistry_ConcurrentLookups(t *testing.T) {
	r := NewRegistry()
	m, err := NewPropertyMapping(map[string]MappingTarget{"name": Target("Name")})
	require.NoError(t, err)
	require.NoError(t, RegisterMapping[testDto, testEntity](r, m))

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := LookupMapping[testDto, testEntity](r); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func TestValidateOrderBy(t *testing.T) {
	m, err := NewPropertyMapping(map[string]MappingTarget{
		"id":   Target("Id"),
		"name": Target("Name"),
	})
	require.NoError(t, err)

	assert.NoError(t, ValidateOrderBy(m, ""))
	assert.NoError(t, ValidateOrderBy(m, "name desc, ID"))

	err = ValidateOrderBy(m, "name, age desc")
	require.ErrorIs(t, err, ErrUnknownSortField)
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "age", fe.Field)

	assert.ErrorIs(t, ValidateOrderBy(nil, "name"), ErrInvalidArgument)
}
