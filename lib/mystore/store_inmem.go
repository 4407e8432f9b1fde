package mystore

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"sync"
)

type InMemoryStore[T any] struct {
	sync.Mutex
	Items map[string]T
}

func NewInMemoryStore[T any](c context.Context) (*InMemoryStore[T], func(), error) {
	return &InMemoryStore[T]{
		Items: make(map[string]T),
	}, func() {}, nil
}

func (s *InMemoryStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	s.Lock()
	defer s.Unlock()

	// Within this block everything is transactional: the store mutex is
	// held, nested Put/Get calls must not lock again.
	ctx := context.WithValue(c, ctxTransactionKey{}, true)

	return f(ctx)
}

func (s *InMemoryStore[T]) Put(c context.Context, uid string, value T) error {
	nonTransactional := c.Value(ctxTransactionKey{}) == nil

	if nonTransactional {
		s.Lock()
		defer s.Unlock()
	}

	s.Items[uid] = value

	return nil
}

func (s *InMemoryStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	nonTransactional := c.Value(ctxTransactionKey{}) == nil

	if nonTransactional {
		s.Lock()
		defer s.Unlock()
	}

	result, exists := s.Items[uid]

	return result, exists, nil
}

func (s *InMemoryStore[T]) Delete(c context.Context, uid string) error {
	nonTransactional := c.Value(ctxTransactionKey{}) == nil

	if nonTransactional {
		s.Lock()
		defer s.Unlock()
	}

	delete(s.Items, uid)

	return nil
}

func (s *InMemoryStore[T]) List(c context.Context) ([]T, error) {
	nonTransactional := c.Value(ctxTransactionKey{}) == nil

	if nonTransactional {
		s.Lock()
		defer s.Unlock()
	}

	result := make([]T, 0, len(s.Items))
	for _, v := range s.Items {
		result = append(result, v)
	}

	return result, nil
}

func (s *InMemoryStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	all, err := s.List(c)
	if err != nil {
		return nil, err
	}

	result := make([]T, 0, len(all))
	for _, item := range all {
		if matchesFilters(item, filters) {
			result = append(result, item)
		}
	}

	sortByField(result, orderByField)

	return result, nil
}

// matchesFilters supports only equality, which is all the services use.
func matchesFilters[T any](item T, filters []Filter) bool {
	for _, f := range filters {
		if f.Compare != "=" {
			continue
		}
		field := reflect.ValueOf(item).FieldByName(f.Field)
		if !field.IsValid() {
			return false
		}
		if !reflect.DeepEqual(field.Interface(), f.Value) {
			return false
		}
	}

	return true
}

// sortByField mimics the datastore order syntax: a leading '-' descends.
func sortByField[T any](items []T, orderByField string) {
	if orderByField == "" {
		return
	}

	descending := strings.HasPrefix(orderByField, "-")
	fieldName := strings.TrimPrefix(orderByField, "-")

	sort.SliceStable(items, func(i, j int) bool {
		less := fieldLess(reflect.ValueOf(items[i]).FieldByName(fieldName),
			reflect.ValueOf(items[j]).FieldByName(fieldName))
		if descending {
			return !less
		}
		return less
	})
}

func fieldLess(a, b reflect.Value) bool {
	if !a.IsValid() || !b.IsValid() {
		return false
	}

	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() < b.Int()
	case reflect.String:
		return a.String() < b.String()
	case reflect.Struct:
		// covers time.Time
		at, aIsTime := a.Interface().(interface{ UnixNano() int64 })
		bt, bIsTime := b.Interface().(interface{ UnixNano() int64 })
		if aIsTime && bIsTime {
			return at.UnixNano() < bt.UnixNano()
		}
	}

	return false
}
