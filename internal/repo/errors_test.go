package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error // sentinel expected via errors.Is; nil means passthrough
	}{
		{"nil", nil, nil},
		{"locked", errors.New("database is locked (5) (SQLITE_BUSY)"), ErrBusy},
		{"sqlite locked variant", errors.New("SQLITE_LOCKED: table locked"), ErrBusy},
		{"missing table", errors.New("no such table: orders"), ErrSchemaMissing},
		{"unrelated", errors.New("constraint failed"), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.in)
			if tc.in == nil {
				if got != nil {
					t.Fatalf("Classify(nil) = %v", got)
				}
				return
			}
			if tc.want == nil {
				if got != tc.in {
					t.Fatalf("expected passthrough, got %v", got)
				}
				return
			}
			if !errors.Is(got, tc.want) {
				t.Fatalf("Classify(%v) = %v, want sentinel %v", tc.in, got, tc.want)
			}
			// The original text must survive for logs.
			if got.Error() == tc.want.Error() {
				t.Fatalf("classification dropped original error text: %v", got)
			}
		})
	}
}

func TestClassify_AlreadyClassified(t *testing.T) {
	wrapped := fmt.Errorf("%w: database is locked", ErrBusy)
	if got := Classify(wrapped); got != wrapped {
		t.Fatalf("re-classification changed error: %v", got)
	}
}

func TestClassify_SchemaMissingFromQuery(t *testing.T) {
	db := newRepoDB(t /* no migrations */)
	_, err := ListSettings(context.Background(), db, 1)
	if !errors.Is(err, ErrSchemaMissing) {
		t.Fatalf("query against missing table: got %v, want ErrSchemaMissing", err)
	}
}
