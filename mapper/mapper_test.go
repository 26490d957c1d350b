package mapper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlforge/sqlforge/mapper"
	"github.com/sqlforge/sqlforge/sqlerr"
)

type order struct {
	ID       int
	Customer *customer
	Lines    []*lineItem
}

type customer struct {
	ID   int
	Name string
}

type lineItem struct {
	ID  int
	SKU string
}

func orderMapper(customerRequired bool) *mapper.Mapper {
	return &mapper.Mapper{
		Root: mapper.Entity{
			Name:      "order",
			KeyColumn: "order_id",
			Build: func(row mapper.Row) (any, error) {
				return &order{ID: row["order_id"].(int)}, nil
			},
			Relations: []mapper.Relation{
				{
					Name:     "Customer",
					Entity:   "customer",
					LocalKey: "customer_id",
					Required: customerRequired,
					Mapper: &mapper.Mapper{
						Root: mapper.Entity{
							Name:      "customer",
							KeyColumn: "customer_id",
							Build: func(row mapper.Row) (any, error) {
								return &customer{ID: row["customer_id"].(int), Name: row["customer_name"].(string)}, nil
							},
						},
					},
				},
				{
					Name:     "Lines",
					Entity:   "lineItem",
					LocalKey: "line_id",
					Required: false,
					Mapper: &mapper.Mapper{
						Root: mapper.Entity{
							Name:      "lineItem",
							KeyColumn: "line_id",
							Build: func(row mapper.Row) (any, error) {
								return &lineItem{ID: row["line_id"].(int), SKU: row["sku"].(string)}, nil
							},
						},
					},
				},
			},
		},
	}
}

func TestMapper_MissingRootKeyColumn(t *testing.T) {
	m := orderMapper(false)
	_, err := m.MapRows([]mapper.Row{{"customer_id": 1}})
	require.Error(t, err)
	var missing *sqlerr.MissingKeyColumn
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "order_id", missing.Column)
}

func TestMapper_RequiredRelationMissingColumn(t *testing.T) {
	m := orderMapper(true)
	_, err := m.MapRows([]mapper.Row{{"order_id": 1}})
	require.Error(t, err)
	var missing *sqlerr.MissingLocalKeyColumn
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "customer_id", missing.Column)
	assert.Equal(t, "Customer", missing.Relation)
}

func TestMapper_RequiredRelationNullKey(t *testing.T) {
	m := orderMapper(true)
	_, err := m.MapRows([]mapper.Row{{"order_id": 1, "customer_id": nil}})
	require.Error(t, err)
	var null *sqlerr.NullLocalKey
	require.ErrorAs(t, err, &null)
	assert.Equal(t, "customer_id", null.Column)
	assert.Equal(t, "customer", null.Entity)
}

func TestMapper_OptionalRelationOmittedOnNullKey(t *testing.T) {
	m := orderMapper(false)
	rows := []mapper.Row{
		{"order_id": 1, "customer_id": nil, "line_id": nil},
	}
	objs, err := m.MapRows(rows)
	require.NoError(t, err)
	require.Len(t, objs, 1)
	o := objs[0].(*order)
	assert.Nil(t, o.Customer)
	assert.Nil(t, o.Lines)
}

func TestMapper_ZeroValuedKeyStillHydrates(t *testing.T) {
	m := orderMapper(false)
	rows := []mapper.Row{
		{"order_id": 1, "customer_id": 0, "customer_name": "Walk-in", "line_id": 0, "sku": "N/A"},
	}
	objs, err := m.MapRows(rows)
	require.NoError(t, err)
	require.Len(t, objs, 1)
	o := objs[0].(*order)
	require.NotNil(t, o.Customer, "a zero-valued key is not null and must still hydrate")
	assert.Equal(t, 0, o.Customer.ID)
}

func TestMapper_IdentityDedupPerInvocation(t *testing.T) {
	m := orderMapper(true)
	rows := []mapper.Row{
		{"order_id": 1, "customer_id": 5, "customer_name": "Ada", "line_id": 10, "sku": "A"},
		{"order_id": 1, "customer_id": 5, "customer_name": "Ada", "line_id": 11, "sku": "B"},
	}
	objs, err := m.MapRows(rows)
	require.NoError(t, err)
	require.Len(t, objs, 1, "both rows share order_id 1 and must collapse to one object")

	first, err := m.MapRows(rows[:1])
	require.NoError(t, err)
	second, err := m.MapRows(rows[:1])
	require.NoError(t, err)
	assert.NotSame(t, first[0], second[0], "dedup state must not leak across separate MapRows calls")
}

func TestMapper_CircularEntityMappingDetected(t *testing.T) {
	a := &mapper.Mapper{}
	b := &mapper.Mapper{}
	a.Root = mapper.Entity{
		Name:      "a",
		KeyColumn: "a_id",
		Build:     func(row mapper.Row) (any, error) { return &struct{ B any }{}, nil },
		Relations: []mapper.Relation{{Name: "B", Entity: "b", LocalKey: "b_id", Required: true, Mapper: b}},
	}
	b.Root = mapper.Entity{
		Name:      "b",
		KeyColumn: "b_id",
		Build:     func(row mapper.Row) (any, error) { return &struct{ A any }{}, nil },
		Relations: []mapper.Relation{{Name: "A", Entity: "a", LocalKey: "a_id", Required: true, Mapper: a}},
	}

	_, err := a.MapRows([]mapper.Row{{"a_id": 1, "b_id": 2}})
	require.Error(t, err)
	var cyc *sqlerr.CircularEntityMapping
	require.ErrorAs(t, err, &cyc)
	assert.Contains(t, cyc.Path, "a:1")
}

func TestCoerce_NumericBooleanAndDateStrings(t *testing.T) {
	assert.InEpsilon(t, 42.0, mapper.Coerce("42", true).(float64), 0.0001)
	assert.Equal(t, true, mapper.Coerce("true", true))
	assert.Equal(t, false, mapper.Coerce("false", true))
	assert.Equal(t, "hello", mapper.Coerce("hello", true))
	assert.Equal(t, "untouched", mapper.Coerce("untouched", false))
}
