package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customerapi/pkg/customer"
	"customerapi/pkg/customer/memory"
	"customerapi/pkg/logger"
)

func newTestRouter(t *testing.T, seed ...customer.Customer) http.Handler {
	t.Helper()

	repo := memory.New()
	for _, c := range seed {
		if err := repo.Create(context.Background(), c); err != nil {
			t.Fatalf("seed %s: %v", c.GUID, err)
		}
	}
	log := logger.New(io.Discard, logger.LevelInfo, "test", nil)

	return NewServer(repo, log, nil).Routes()
}

func doRequest(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestListEmptyReturnsArray(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(h, http.MethodGet, "/customers", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListPreservesSeedOrder(t *testing.T) {
	h := newTestRouter(t,
		customer.Customer{GUID: "c"},
		customer.Customer{GUID: "a"},
		customer.Customer{GUID: "b"},
	)

	rec := doRequest(h, http.MethodGet, "/customers", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []customer.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].GUID)
	assert.Equal(t, "a", list[1].GUID)
	assert.Equal(t, "b", list[2].GUID)
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	h := newTestRouter(t)

	c := customer.Customer{
		GUID:      "a",
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane.doe@example.com",
		Address:   "123 Main St",
	}
	body, err := json.Marshal(c)
	require.NoError(t, err)

	rec := doRequest(h, http.MethodPost, "/customers", string(body))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(h, http.MethodGet, "/customers/a", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got customer.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, c, got)
}

func TestCreateDuplicateLeavesStoreUnchanged(t *testing.T) {
	h := newTestRouter(t, customer.Customer{GUID: "a", FirstName: "Jane"})

	rec := doRequest(h, http.MethodPost, "/customers", `{"guid":"a","first_name":"Impostor"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(h, http.MethodGet, "/customers", "")
	var list []customer.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Jane", list[0].FirstName)
}

func TestUpdateReplacesWholeRecord(t *testing.T) {
	h := newTestRouter(t, customer.Customer{
		GUID: "a", FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Address: "123 Main St",
	})

	rec := doRequest(h, http.MethodPut, "/customers/a", `{"guid":"a","first_name":"Janet"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(h, http.MethodGet, "/customers/a", "")
	var got customer.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, customer.Customer{GUID: "a", FirstName: "Janet"}, got)
}

func TestUpdateMatchesBodyGUID(t *testing.T) {
	h := newTestRouter(t, customer.Customer{GUID: "a", FirstName: "Jane"})

	// The path names a guid that does not exist; the body names one that
	// does. The body wins.
	rec := doRequest(h, http.MethodPut, "/customers/does-not-exist", `{"guid":"a","first_name":"Janet"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(h, http.MethodGet, "/customers/a", "")
	var got customer.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Janet", got.FirstName)

	// And the reverse: an existing path guid cannot rescue a missing body
	// guid.
	rec = doRequest(h, http.MethodPut, "/customers/a", `{"guid":"missing","first_name":"Nobody"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteFlow(t *testing.T) {
	h := newTestRouter(t, customer.Customer{GUID: "a", FirstName: "Jane"})

	rec := doRequest(h, http.MethodDelete, "/customers/a", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = doRequest(h, http.MethodGet, "/customers/a", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(h, http.MethodGet, "/customers", "")
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = doRequest(h, http.MethodDelete, "/customers/a", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouteStatuses(t *testing.T) {
	h := newTestRouter(t, customer.Customer{GUID: "a", FirstName: "Jane"})

	// Cases run against one router in order; later expectations account for
	// earlier mutations.
	tests := []struct {
		desc   string
		method string
		path   string
		body   string
		status int
	}{
		{"list customers", http.MethodGet, "/customers", "", http.StatusOK},
		{"create customer", http.MethodPost, "/customers", `{"guid":"new"}`, http.StatusCreated},
		{"create duplicate guid", http.MethodPost, "/customers", `{"guid":"a"}`, http.StatusBadRequest},
		{"create malformed body", http.MethodPost, "/customers", `{"guid":`, http.StatusBadRequest},
		{"get existing", http.MethodGet, "/customers/a", "", http.StatusOK},
		{"get missing", http.MethodGet, "/customers/nope", "", http.StatusNotFound},
		{"update existing", http.MethodPut, "/customers/a", `{"guid":"a","first_name":"Janet"}`, http.StatusOK},
		{"update missing", http.MethodPut, "/customers/nope", `{"guid":"nope"}`, http.StatusNotFound},
		{"update malformed body", http.MethodPut, "/customers/a", `not json`, http.StatusBadRequest},
		{"delete missing", http.MethodDelete, "/customers/nope", "", http.StatusNotFound},
		{"delete existing", http.MethodDelete, "/customers/a", "", http.StatusNoContent},
		{"health", http.MethodGet, "/health", "", http.StatusOK},
	}

	for i, tc := range tests {
		rec := doRequest(h, tc.method, tc.path, tc.body)

		assert.Equal(t, tc.status, rec.Code, "TEST[%d], Failed.\n%s", i, tc.desc)
	}
}

func TestBodyLimit(t *testing.T) {
	h := newTestRouter(t)

	big := `{"guid":"big","address":"` + strings.Repeat("x", maxBodyBytes) + `"}`

	rec := doRequest(h, http.MethodPost, "/customers", big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = doRequest(h, http.MethodPut, "/customers/big", big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = doRequest(h, http.MethodGet, "/customers", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRequestIDHeader(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(h, http.MethodGet, "/customers", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	req.Header.Set("X-Request-Id", "fixed-id")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-Id"))
}

func TestHealthBody(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(h, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t)

	doRequest(h, http.MethodGet, "/customers", "")

	rec := doRequest(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "customerapi_http_response")
}
