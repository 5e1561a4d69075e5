package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ardanlabs/learnchain/business/web/auth"
	"github.com/ethereum/go-ethereum/crypto"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Submit(t *testing.T) {
	t.Log("Given the need to submit signed operations to the relay.")
	{
		accountPath = t.TempDir()
		accountName = "alice"

		privateKey, err := crypto.GenerateKey()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to generate a key: %v", failed, err)
		}
		if err := crypto.SaveECDSA(getPrivateKeyPath(), privateKey); err != nil {
			t.Fatalf("\t%s\tShould be able to save the key: %v", failed, err)
		}

		var (
			path   string
			caller string
			body   map[string]any
		)
		h := func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			json.NewDecoder(r.Body).Decode(&body)

			msg, _ := body["message"].(string)
			sig, _ := body["signature"].(string)
			addr, _ := body["address"].(string)

			signer, err := auth.Authenticate(addr, msg, sig)
			if err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"invalid signature"}`))
				return
			}
			caller = string(signer)

			w.Write([]byte(`{"success":true}`))
		}

		srv := httptest.NewServer(http.HandlerFunc(h))
		defer srv.Close()
		relayURL = srv.URL

		if err := submit("steps/complete", map[string]any{"stepId": "step-1", "courseId": "course-1"}); err != nil {
			t.Fatalf("\t%s\tShould be accepted by the relay: %v", failed, err)
		}
		t.Logf("\t%s\tShould be accepted by the relay.", success)

		if path != "/v1/steps/complete" {
			t.Fatalf("\t%s\tShould post to the route, got %s.", failed, path)
		}
		t.Logf("\t%s\tShould post to the route.", success)

		self, err := selfOr("")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the wallet address: %v", failed, err)
		}
		if caller != self {
			t.Fatalf("\t%s\tShould be signed by the wallet, got %s exp %s.", failed, caller, self)
		}
		t.Logf("\t%s\tShould be signed by the wallet.", success)

		if body["stepId"] != "step-1" || body["courseId"] != "course-1" {
			t.Fatalf("\t%s\tShould carry the operation fields: %v", failed, body)
		}
		t.Logf("\t%s\tShould carry the operation fields.", success)
	}
}

func Test_Query(t *testing.T) {
	t.Log("Given the need to query routes built from user supplied ids.")
	{
		var path string
		h := func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.EscapedPath()
			w.Write([]byte(`{"isCompleted":false}`))
		}

		srv := httptest.NewServer(http.HandlerFunc(h))
		defer srv.Close()
		relayURL = srv.URL

		const addr = "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4"

		if err := query(escapeRoute("courses", addr, "intro/go?x#1")); err != nil {
			t.Fatalf("\t%s\tShould be accepted by the relay: %v", failed, err)
		}
		t.Logf("\t%s\tShould be accepted by the relay.", success)

		exp := "/v1/courses/" + addr + "/intro%2Fgo%3Fx%231"
		if path != exp {
			t.Logf("\t%s\tgot: %s", failed, path)
			t.Logf("\t%s\texp: %s", failed, exp)
			t.Fatalf("\t%s\tShould keep the course id a single path segment.", failed)
		}
		t.Logf("\t%s\tShould keep the course id a single path segment.", success)

		if got := escapeRoute("progress", addr); got != "progress/"+addr {
			t.Fatalf("\t%s\tShould leave plain segments unchanged, got %s.", failed, got)
		}
		t.Logf("\t%s\tShould leave plain segments unchanged.", success)
	}
}
