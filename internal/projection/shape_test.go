package projection

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shapeSource = testDto{ID: 1, Name: "Test", Description: "Description"}

func TestShapeData_AllFields(t *testing.T) {
	rec, err := ShapeData(testDtoFields, &shapeSource, "", "")
	require.NoError(t, err)
	assert.Equal(t, 3, rec.Len())
	assert.Equal(t, []string{"id", "name", "description"}, rec.Names())

	v, ok := rec.Get("description")
	require.True(t, ok)
	assert.Equal(t, "Description", v)
}

func TestShapeData_SelectedFields(t *testing.T) {
	rec, err := ShapeData(testDtoFields, &shapeSource, "id,name", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, rec.Names())
}

func TestShapeData_SelectionOrderAndCase(t *testing.T) {
	rec, err := ShapeData(testDtoFields, &shapeSource, " NAME , Id ", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "id"}, rec.Names())
	v, _ := rec.Get("id")
	assert.Equal(t, 1, v)
}

func TestShapeData_RequiredFieldAppended(t *testing.T) {
	rec, err := ShapeData(testDtoFields, &shapeSource, "id", "name")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, rec.Names())

	rec, err = ShapeData(testDtoFields, &shapeSource, "name", "ID")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "id"}, rec.Names())

	// already selected, not duplicated
	rec, err = ShapeData(testDtoFields, &shapeSource, "name,id", "id")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "id"}, rec.Names())

	rec, err = ShapeData(testDtoFields, &shapeSource, "", "id")
	require.NoError(t, err)
	assert.Equal(t, 3, rec.Len())
}

func TestShapeData_UnknownField(t *testing.T) {
	_, err := ShapeData(testDtoFields, &shapeSource, "doesNotExist", "")
	require.ErrorIs(t, err, ErrUnknownField)

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "doesNotExist", fe.Field)
}

func TestShapeData_UnknownRequiredFieldIsConfigurationError(t *testing.T) {
	_, err := ShapeData(testDtoFields, &shapeSource, "id", "missing")
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.NotErrorIs(t, err, ErrUnknownField)
}

func TestShapeData_NilSource(t *testing.T) {
	_, err := ShapeData[testDto](testDtoFields, nil, "", "")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestShapeData_JSONKeepsOrder(t *testing.T) {
	rec, err := ShapeData(testDtoFields, &shapeSource, "description,id", "")
	require.NoError(t, err)

	b, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"description":"Description","id":1}`, string(b))
}

func TestShapeDataMany_Lazy(t *testing.T) {
	sources := []testDto{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}, {ID: 3, Name: "c"}}
	pulled := 0
	seq, err := ShapeDataMany(testDtoFields, func(yield func(testDto) bool) {
		for _, s := range sources {
			pulled++
			if !yield(s) {
				return
			}
		}
	}, "name", "id")
	require.NoError(t, err)
	assert.Equal(t, 0, pulled)

	for rec, err := range seq {
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "id"}, rec.Names())
		break
	}
	assert.Equal(t, 1, pulled)
}

func TestShapeDataMany_Restartable(t *testing.T) {
	sources := []testDto{{ID: 1}, {ID: 2}}
	seq, err := ShapeDataMany(testDtoFields, slices.Values(sources), "id", "")
	require.NoError(t, err)

	for range 2 {
		var got []any
		for rec, err := range seq {
			require.NoError(t, err)
			v, _ := rec.Get("id")
			got = append(got, v)
		}
		assert.Equal(t, []any{1, 2}, got)
	}
}

func TestShapeDataMany_Errors(t *testing.T) {
	_, err := ShapeDataMany[testDto](testDtoFields, nil, "", "")
	require.ErrorIs(t, err, ErrInvalidArgument)

	seq, err := ShapeDataMany(testDtoFields, slices.Values([]testDto{{ID: 1}}), "nope", "")
	require.NoError(t, err)
	for _, err := range seq {
		assert.ErrorIs(t, err, ErrUnknownField)
	}
}

func TestShapeSlice(t *testing.T) {
	recs, err := ShapeSlice(testDtoFields, []testDto{{ID: 1}, {ID: 2}}, "id", "")
	require.NoError(t, err)
	require.Len(t, recs, 2)

	_, err = ShapeSlice[testDto](testDtoFields, nil, "", "")
	require.ErrorIs(t, err, ErrInvalidArgument)

	recs, err = ShapeSlice(testDtoFields, []testDto{}, "id", "")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestHasFields(t *testing.T) {
	assert.True(t, HasFields(testDtoFields, ""))
	assert.True(t, HasFields(testDtoFields, "ID, Name"))
	assert.False(t, HasFields(testDtoFields, "id,age"))
	assert.False(t, HasFields(testDtoFields, "id,"))
}

func TestCheckFields_NamesOffender(t *testing.T) {
	require.NoError(t, CheckFields(testDtoFields, "id"))

	err := CheckFields(testDtoFields, "id, colour")
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "colour", fe.Field)
	assert.ErrorIs(t, err, ErrUnknownField)
}
