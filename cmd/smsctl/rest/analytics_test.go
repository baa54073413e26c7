package rest_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/pkg/utils/try"
)

func TestClient_Analytics(t *testing.T) {
	ctx := context.Background()

	t.Run("student_id echoed back as string is accepted", func(t *testing.T) {
		p, reqs := serve(t, http.StatusOK, `{"student_id": "3", "grades": [], "average_percentage": 0}`)
		client := try.To(rest.NewClient(p, token("A"))).OrFatal(t)

		report := try.To(client.GetStudentPerformance(ctx, 3)).OrFatal(t)
		if report.StudentId != 3 {
			t.Errorf("student id = %d", report.StudentId)
		}
		if q := reqs()[0].query["student_id"]; len(q) != 1 || q[0] != "3" {
			t.Errorf("query: %v", reqs()[0].query)
		}
	})

	t.Run("items without id are numbered not to collide with ids of others", func(t *testing.T) {
		p, _ := serve(t, http.StatusOK, `[
			{"course_code": "CS101", "course_name": "Programming"},
			{"id": 2, "course_code": "CS102", "course_name": "Data Structures"},
			{"course_code": "CS103", "course_name": "Algorithms"}
		]`)
		client := try.To(rest.NewClient(p, token("A"))).OrFatal(t)

		items := try.To(client.ListCourseAnalytics(ctx)).OrFatal(t)
		got := []int{}
		for _, i := range items {
			got = append(got, i.Id)
		}
		expected := []int{3, 2, 5}
		if len(got) != len(expected) || got[0] != expected[0] || got[1] != expected[1] || got[2] != expected[2] {
			t.Errorf("ids: (actual, expected) = (%v, %v)", got, expected)
		}
	})

	t.Run("without any id, items are numbered from 1", func(t *testing.T) {
		p, _ := serve(t, http.StatusOK, `[
			{"student_id": "S001", "student_name": "Minji Kim"},
			{"student_id": "S002", "student_name": "Jisoo Park"}
		]`)
		client := try.To(rest.NewClient(p, token("A"))).OrFatal(t)

		items := try.To(client.ListStudentPerformances(ctx)).OrFatal(t)
		if len(items) != 2 || items[0].Id != 1 || items[1].Id != 2 {
			t.Errorf("items: %+v", items)
		}
	})
}
