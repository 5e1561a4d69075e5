package web_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ardanlabs/learnchain/foundation/web"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

type payload struct {
	Name string `json:"name"`
}

func (p payload) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func Test_Handle(t *testing.T) {
	t.Log("Given the need to route requests through the app.")
	{
		var (
			param   string
			traceID string
			decoded payload
			decErr  error
		)

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			param = web.Param(r, "id")
			traceID = web.GetTraceID(ctx)
			decoded = payload{}
			decErr = web.Decode(r, &decoded)
			return web.Respond(ctx, w, nil, http.StatusNoContent)
		}

		app := web.NewApp(nil)
		app.Handle(http.MethodPost, "v1", "/items/:id", h)

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/items/42", strings.NewReader(`{"name":"go"}`)))

		if w.Code != http.StatusNoContent {
			t.Fatalf("\t%s\tShould get status 204, got %d.", failed, w.Code)
		}
		t.Logf("\t%s\tShould get status 204.", success)

		if param != "42" {
			t.Fatalf("\t%s\tShould get the route parameter, got %q.", failed, param)
		}
		t.Logf("\t%s\tShould get the route parameter.", success)

		if traceID == "" || traceID == "00000000-0000-0000-0000-000000000000" {
			t.Fatalf("\t%s\tShould get a trace id, got %q.", failed, traceID)
		}
		t.Logf("\t%s\tShould get a trace id.", success)

		if decErr != nil || decoded.Name != "go" {
			t.Fatalf("\t%s\tShould decode the body: %v %+v", failed, decErr, decoded)
		}
		t.Logf("\t%s\tShould decode the body.", success)

		w = httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/items/42", strings.NewReader(`{}`)))

		if decErr == nil {
			t.Fatalf("\t%s\tShould run the model validation.", failed)
		}
		t.Logf("\t%s\tShould run the model validation.", success)
	}
}
