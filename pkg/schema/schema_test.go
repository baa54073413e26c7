package schema_test

import (
	"testing"

	"github.com/opst/smsctl/pkg/api/types/enrollments"
	"github.com/opst/smsctl/pkg/api/types/grades"
	"github.com/opst/smsctl/pkg/api/types/paginated"
	"github.com/opst/smsctl/pkg/api/types/students"
	"github.com/opst/smsctl/pkg/cmp"
	"github.com/opst/smsctl/pkg/schema"
	"github.com/opst/smsctl/pkg/utils/pointer"
)

func TestCheck(t *testing.T) {
	theory := func(v any, valid bool) func(*testing.T) {
		return func(t *testing.T) {
			err := schema.Check(v)
			if valid && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !valid && err == nil {
				t.Error("expected error does not occur")
			}
		}
	}

	t.Run("a complete spec is valid", theory(
		students.Spec{StudentId: "2024001", FirstName: "Minsu", LastName: "Kim", Email: "minsu@example.com"},
		true,
	))
	t.Run("a spec missing fields is invalid", theory(
		students.Spec{StudentId: "2024001"},
		false,
	))
	t.Run("a page of valid items is valid", theory(
		paginated.Page[students.Summary]{Count: 1, Results: []students.Summary{{Id: 1, StudentId: "S1"}}},
		true,
	))
	t.Run("a page with an item without id is invalid", theory(
		&paginated.Page[students.Summary]{Count: 1, Results: []students.Summary{{StudentId: "S1"}}},
		false,
	))
	t.Run("an unknown enum is invalid", theory(
		[]enrollments.Detail{{Id: 1, Status: "graduated"}},
		false,
	))
	t.Run("a zero score is valid", theory(
		grades.Spec{Student: 1, Course: 2, Score: pointer.Ref(0.0), GradeType: grades.Quiz, Semester: "2024-1"},
		true,
	))
	t.Run("a non-struct value is valid", theory(42, true))
}

func TestFields(t *testing.T) {
	err := schema.Check(grades.Spec{Student: 1, GradeType: "essay"})
	p, ok := schema.Fields(err)
	if !ok {
		t.Fatalf("not a validation error: %v", err)
	}

	names := []string{}
	for _, f := range p.Fields {
		names = append(names, f.Name)
	}
	if expected := []string{"course", "score", "grade_type", "semester"}; !cmp.SliceEq(names, expected) {
		t.Errorf("unmatch fields: (actual, expected) = (%v, %v)", names, expected)
	}
	if msgs := p.Messages("course"); len(msgs) != 1 || msgs[0] != "This field is required." {
		t.Errorf("unexpected messages: %v", msgs)
	}
}
