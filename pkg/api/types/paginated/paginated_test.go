package paginated_test

import (
	"testing"

	"github.com/opst/smsctl/pkg/api/types/paginated"
	"github.com/opst/smsctl/pkg/utils/pointer"
)

func TestPage(t *testing.T) {
	type then struct {
		next    int
		hasNext bool
		prev    int
		hasPrev bool
	}
	theory := func(when paginated.Page[int], then then) func(*testing.T) {
		return func(t *testing.T) {
			next, hasNext := when.NextPage()
			if next != then.next || hasNext != then.hasNext {
				t.Errorf("NextPage: (actual, expected) = (%d %v, %d %v)", next, hasNext, then.next, then.hasNext)
			}
			prev, hasPrev := when.PreviousPage()
			if prev != then.prev || hasPrev != then.hasPrev {
				t.Errorf("PreviousPage: (actual, expected) = (%d %v, %d %v)", prev, hasPrev, then.prev, then.hasPrev)
			}
		}
	}

	t.Run("single page", theory(
		paginated.Page[int]{Count: 1, Results: []int{1}},
		then{},
	))

	t.Run("first of many pages", theory(
		paginated.Page[int]{
			Count: 45,
			Next:  pointer.Ref("http://localhost:8000/api/v1/students/?page=2&search=kim"),
		},
		then{next: 2, hasNext: true},
	))

	t.Run("second page links the first page without page query", theory(
		paginated.Page[int]{
			Count:    45,
			Next:     pointer.Ref("http://localhost:8000/api/v1/students/?page=3"),
			Previous: pointer.Ref("http://localhost:8000/api/v1/students/"),
		},
		then{next: 3, hasNext: true, prev: 1, hasPrev: true},
	))

	t.Run("last page", theory(
		paginated.Page[int]{
			Count:    45,
			Previous: pointer.Ref("http://localhost:8000/api/v1/students/?page=2"),
		},
		then{prev: 2, hasPrev: true},
	))
}
