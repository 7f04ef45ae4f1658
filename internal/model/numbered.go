package model

import "strconv"

// Result is a record that can be listed: items and containers.
type Result interface {
	GetID() string
	GetKind() string
	GetContent() string
	GetLocation() string
}

// Row is one numbered line of a listing. Numbers start at 1 so the user can
// refer back to a row by what was printed.
type Row[T Result] struct {
	Num  int `json:"num" yaml:"num"`
	Item T   `json:"item" yaml:"item"`
}

func (r Row[T]) GetNum() int { return r.Num }
func (r Row[T]) GetID() string { return r.Item.GetID() }
func (r Row[T]) GetKind() string { return r.Item.GetKind() }
func (r Row[T]) GetContent() string { return r.Item.GetContent() }
func (r Row[T]) GetLocation() string { return r.Item.GetLocation() }

// NumberedList numbers records in the order given.
func NumberedList[T Result](records []T) []Row[T] {
	rows := make([]Row[T], 0, len(records))
	for _, rec := range records {
		rows = append(rows, Row[T]{Num: len(rows) + 1, Item: rec})
	}
	return rows
}

// NumWidth is the digit count of the largest row number for n rows.
func NumWidth(n int) int {
	return len(strconv.Itoa(max(n, 1)))
}
