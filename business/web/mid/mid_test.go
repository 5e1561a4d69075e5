package mid_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ardanlabs/learnchain/business/web/errs"
	"github.com/ardanlabs/learnchain/business/web/mid"
	"github.com/ardanlabs/learnchain/foundation/web"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Errors(t *testing.T) {
	type table struct {
		name    string
		handler web.Handler
		status  int
		error   string
	}

	tt := []table{
		{
			name: "trusted",
			handler: func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
				return errs.NewTrusted(errors.New("user not registered"), http.StatusBadRequest)
			},
			status: http.StatusBadRequest,
			error:  "user not registered",
		},
		{
			name: "untrusted",
			handler: func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
				return errors.New("disk on fire")
			},
			status: http.StatusInternalServerError,
			error:  http.StatusText(http.StatusInternalServerError),
		},
		{
			name: "panic",
			handler: func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
				panic("boom")
			},
			status: http.StatusInternalServerError,
			error:  http.StatusText(http.StatusInternalServerError),
		},
	}

	t.Log("Given the need to respond to errors in a uniform way.")
	{
		log := zap.NewNop().Sugar()

		for testID, tst := range tt {
			f := func(t *testing.T) {
				app := web.NewApp(make(chan os.Signal, 1), mid.Logger(log), mid.Errors(log), mid.Metrics(), mid.Panics())
				app.Handle(http.MethodGet, "v1", "/test", tst.handler)

				w := httptest.NewRecorder()
				app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/test", nil))

				if w.Code != tst.status {
					t.Fatalf("\t%s\tTest %d:\tShould get status %d, got %d.", failed, testID, tst.status, w.Code)
				}
				t.Logf("\t%s\tTest %d:\tShould get status %d.", success, testID, tst.status)

				var resp errs.Response
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to decode the response: %v", failed, testID, err)
				}
				if resp.Error != tst.error {
					t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, resp.Error)
					t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.error)
					t.Fatalf("\t%s\tTest %d:\tShould get back the error message.", failed, testID)
				}
				t.Logf("\t%s\tTest %d:\tShould get back the error message.", success, testID)
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_Cors(t *testing.T) {
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return nil
	}

	tt := []struct {
		name    string
		origins []string
		origin  string
		allow   string
		vary    string
	}{
		{"listed", []string{"http://localhost:3000", "https://learn.example"}, "https://learn.example", "https://learn.example", "Origin"},
		{"unlisted", []string{"http://localhost:3000"}, "https://evil.example", "", ""},
		{"wildcard", []string{"*"}, "https://learn.example", "*", ""},
		{"unset", nil, "", "*", ""},
	}

	t.Log("Given the need to allow browser clients.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				app := web.NewApp(nil)
				app.Handle(http.MethodOptions, "", "/*", h, mid.Cors(tst.origins...))

				r := httptest.NewRequest(http.MethodOptions, "/v1/register", nil)
				if tst.origin != "" {
					r.Header.Set("Origin", tst.origin)
				}

				w := httptest.NewRecorder()
				app.ServeHTTP(w, r)

				if got := w.Header().Get("Access-Control-Allow-Origin"); got != tst.allow {
					t.Fatalf("\t%s\tTest %d:\tShould set the allowed origin to %q, got %q.", failed, testID, tst.allow, got)
				}
				t.Logf("\t%s\tTest %d:\tShould set the allowed origin to %q.", success, testID, tst.allow)

				if got := w.Header().Get("Vary"); got != tst.vary {
					t.Fatalf("\t%s\tTest %d:\tShould vary on %q, got %q.", failed, testID, tst.vary, got)
				}
				t.Logf("\t%s\tTest %d:\tShould vary on %q.", success, testID, tst.vary)

				methods := w.Header().Get("Access-Control-Allow-Methods")
				if tst.allow != "" && methods != "GET, POST, OPTIONS" {
					t.Fatalf("\t%s\tTest %d:\tShould allow only the relay methods, got %q.", failed, testID, methods)
				}
				t.Logf("\t%s\tTest %d:\tShould allow only the relay methods.", success, testID)
			}

			t.Run(tst.name, f)
		}
	}
}
