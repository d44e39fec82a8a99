package handlers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

// formControls returns the markup of the form posting to action, so a test
// can look at one row's buttons in isolation.
func formControls(t *testing.T, body, action string) string {
	t.Helper()
	marker := `action="` + action + `"`
	i := strings.Index(body, marker)
	if i < 0 {
		t.Fatalf("no form posting to %s", action)
	}
	rest := body[i:]
	j := strings.Index(rest, "</form>")
	if j < 0 {
		t.Fatalf("unterminated form for %s", action)
	}
	return rest[:j]
}

func TestBorrowingControlsDisabledUnlessPending(t *testing.T) {
	backend := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"id":1,"status":"pending","quantity":2,"due_date":"2025-03-10","user":{"username":"andi"},"item":{"name":"Projector"}},
			{"id":2,"status":"approved","quantity":1,"due_date":"2025-03-12","user":{"username":"budi"},"item":{"name":"Tripod"}}
		]}`))
	})

	store := newMemStore()
	store.Save(context.Background(), "sid-1", "tok-1")
	app := newTestApp(backend.srv.URL, store)

	resp := getPage(t, app, "/dashboard/borrowings", "sid-1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := readBody(t, resp)

	for _, action := range []string{"approve", "reject"} {
		pending := formControls(t, body, "/dashboard/borrowings/1/"+action)
		if strings.Contains(pending, "disabled") {
			t.Errorf("%s control disabled on a pending borrowing", action)
		}
		handled := formControls(t, body, "/dashboard/borrowings/2/"+action)
		if !strings.Contains(handled, "disabled") {
			t.Errorf("%s control enabled on an approved borrowing", action)
		}
	}
}

func TestReturnControlsDisabledOnceHandled(t *testing.T) {
	backend := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"id":1,"borrow_id":3,"returned_quantity":1,"handled_by":null,"created_at":"2025-03-01","borrowing":{"user":{"username":"andi"},"item":{"name":"Projector"}}},
			{"id":2,"borrow_id":4,"returned_quantity":2,"handled_by":9,"created_at":"2025-03-02","borrowing":{"user":{"username":"budi"},"item":{"name":"Tripod"}}}
		]}`))
	})

	store := newMemStore()
	store.Save(context.Background(), "sid-1", "tok-1")
	app := newTestApp(backend.srv.URL, store)

	resp := getPage(t, app, "/dashboard/returns", "sid-1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := readBody(t, resp)

	for _, action := range []string{"approve", "reject"} {
		open := formControls(t, body, "/dashboard/returns/1/"+action)
		if strings.Contains(open, "disabled") {
			t.Errorf("%s control disabled on an unhandled return", action)
		}
		closed := formControls(t, body, "/dashboard/returns/2/"+action)
		if !strings.Contains(closed, "disabled") {
			t.Errorf("%s control enabled on a handled return", action)
		}
	}

	// The derived resolution shows up as the status badge.
	if !strings.Contains(body, `badge pending`) || !strings.Contains(body, `badge handled`) {
		t.Fatal("resolution badges missing")
	}
}
