package api

import (
	"net/http"
	"strconv"
	"testing"
)

// Lookups on ids that do not resolve to an accessible record must answer
// with a clean JSON error, whatever the reason the lookup failed.
func TestResourceLookupRejectionsAreCleanErrors(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	cookie, _ := registerOwner(t, app, "owner@lookup.test", "Lookup BV")

	cases := []struct {
		name   string
		method string
		path   string
		status int
		errMsg string
	}{
		{"ticket unknown id", http.MethodGet, "/api/tickets/9999", http.StatusForbidden, "forbidden"},
		{"ticket malformed id", http.MethodGet, "/api/tickets/abc", http.StatusBadRequest, "invalid ticket id"},
		{"ticket close unknown id", http.MethodPost, "/api/tickets/9999/close", http.StatusForbidden, "forbidden"},
		{"ticket delete malformed id", http.MethodDelete, "/api/tickets/zero", http.StatusBadRequest, "invalid ticket id"},
		{"schedule unknown id", http.MethodDelete, "/api/schedules/9999", http.StatusForbidden, "forbidden"},
		{"schedule malformed id", http.MethodPost, "/api/schedules/abc/finalize", http.StatusBadRequest, "invalid schedule id"},
		{"schedule negative id", http.MethodDelete, "/api/schedules/-1", http.StatusBadRequest, "invalid schedule id"},
		{"training unknown id", http.MethodGet, "/api/trainings/9999", http.StatusForbidden, "forbidden"},
		{"training malformed id", http.MethodGet, "/api/trainings/abc", http.StatusBadRequest, "invalid training id"},
		{"training start unknown id", http.MethodPost, "/api/trainings/9999/start", http.StatusForbidden, "forbidden"},
		{"training delete unknown id", http.MethodDelete, "/api/trainings/9999", http.StatusForbidden, "forbidden"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := doJSON(t, app, tc.method, tc.path, nil, cookie, tc.status)
			if body["error"] != tc.errMsg {
				t.Fatalf("expected error %q, got %v", tc.errMsg, body)
			}
		})
	}
}

// A record that belongs to another company is answered exactly like one
// that does not exist, so ids cannot be enumerated across tenants.
func TestCrossTenantLookupMatchesUnknownID(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	ownerCookie, _ := registerOwner(t, app, "owner@tenant-a.test", "Tenant A")
	intruderCookie, _ := registerOwner(t, app, "owner@tenant-b.test", "Tenant B")

	created := doJSON(t, app, http.MethodPost, "/api/trainings", hygieneTrainingPayload(), ownerCookie, http.StatusCreated)
	trainingID, ok := created["id"].(float64)
	if !ok {
		t.Fatalf("training response missing id: %v", created)
	}

	foreign := doJSON(t, app, http.MethodGet, "/api/trainings/"+strconv.Itoa(int(trainingID)), nil, intruderCookie, http.StatusForbidden)
	unknown := doJSON(t, app, http.MethodGet, "/api/trainings/424242", nil, intruderCookie, http.StatusForbidden)
	if foreign["error"] != unknown["error"] {
		t.Fatalf("foreign and unknown lookups must be indistinguishable: %v vs %v", foreign, unknown)
	}
}
