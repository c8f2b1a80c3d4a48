package http_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shiptrack/cmd"
	"shiptrack/internal/adapters/out/postgres/pgtest"
	"shiptrack/internal/adapters/out/redis"
	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/domain/model/admin"
	"shiptrack/internal/pkg/auth"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "s3cret-admin"
)

type api struct {
	t *testing.T
	e *echo.Echo
}

func newAPI(t *testing.T) *api {
	t.Helper()

	db, release, err := pgtest.SQLite(t.Context())
	require.NoError(t, err)
	t.Cleanup(release)

	root := cmd.NewCompositionRoot(cmd.Config{
		CacheTTL:             time.Minute,
		SessionSecret:        "test-secret",
		SessionTTL:           time.Hour,
		SessionPurgeSchedule: "@every 1h",
		PasswordCost:         bcrypt.MinCost,
	}, db, redis.NoopCache{}, zap.NewNop())

	createAdmin, err := commands.NewCreateAdminCommand(admin.Profile{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     adminEmail,
		Phone:     "555-0100",
	}, adminPassword)
	require.NoError(t, err)
	handler := root.CreateCreateAdminCommandHandler()
	require.NoError(t, handler.Handle(t.Context(), createAdmin))

	e, err := root.NewHTTPServer(t.Context())
	require.NoError(t, err)
	return &api{t: t, e: e}
}

func (a *api) do(method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *api) login(role, email, password string) *http.Cookie {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/v1/auth/"+role+"/login",
		map[string]string{"email": email, "password": password}, nil)
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookie {
			assert.True(a.t, c.HttpOnly)
			return c
		}
	}
	a.t.Fatal("no session cookie")
	return nil
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func customerBody(email string) map[string]string {
	return map[string]string{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      email,
		"phone":      "555-0100",
		"address":    "1 Main St",
		"city":       "Springfield",
	}
}

func TestHealth(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodGet, "/health", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestGate(t *testing.T) {
	a := newAPI(t)

	t.Run("anonymous admin route goes to admin login", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/admin/dashboard", nil, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "/api/v1/auth/admin/login", rec.Header().Get(echo.HeaderLocation))
		assert.Equal(t, "/api/v1/auth/admin/login", decode[map[string]string](t, rec)["redirect"])
	})

	t.Run("anonymous courier route goes to courier login", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/courier/dashboard", nil, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "/api/v1/auth/courier/login", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("forged cookie is anonymous", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/admin/dashboard", nil,
			&http.Cookie{Name: auth.SessionCookie, Value: "not-a-token"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("admin on courier route goes home", func(t *testing.T) {
		cookie := a.login("admin", adminEmail, adminPassword)

		rec := a.do(http.MethodGet, "/api/v1/courier/dashboard", nil, cookie)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "/api/v1/admin/dashboard", decode[map[string]string](t, rec)["redirect"])
	})

	t.Run("admin credentials do not open the courier login", func(t *testing.T) {
		rec := a.do(http.MethodPost, "/api/v1/auth/courier/login",
			map[string]string{"email": adminEmail, "password": adminPassword}, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := a.do(http.MethodPost, "/api/v1/auth/admin/login",
			map[string]string{"email": adminEmail, "password": "nope"}, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	})
}

func TestLogout_RevokesSession(t *testing.T) {
	a := newAPI(t)
	cookie := a.login("admin", adminEmail, adminPassword)
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/v1/admin/dashboard", nil, cookie).Code)

	rec := a.do(http.MethodPost, "/api/v1/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/api/v1/auth/admin/login", decode[map[string]string](t, rec)["redirect"])

	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/api/v1/admin/dashboard", nil, cookie).Code)
}

func TestCustomers_ErrorMapping(t *testing.T) {
	a := newAPI(t)
	cookie := a.login("admin", adminEmail, adminPassword)

	rec := a.do(http.MethodPost, "/api/v1/admin/customers", customerBody("ada@example.com"), cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decode[map[string]string](t, rec)["id"]

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		rec := a.do(http.MethodPost, "/api/v1/admin/customers", customerBody(" ADA@example.com "), cookie)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("missing field is rejected", func(t *testing.T) {
		body := customerBody("other@example.com")
		delete(body, "city")
		rec := a.do(http.MethodPost, "/api/v1/admin/customers", body, cookie)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[map[string]string](t, rec)["error"], "city")
	})

	t.Run("blank field is rejected", func(t *testing.T) {
		body := customerBody("other@example.com")
		body["first_name"] = "   "
		rec := a.do(http.MethodPost, "/api/v1/admin/customers", body, cookie)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("read back", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/admin/customers/"+id, nil, cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ada@example.com", decode[map[string]any](t, rec)["email"])
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/admin/customers/6f1c1f1e-8c1d-4a39-9d4f-0d6a1b5f0c11", nil, cookie)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/admin/customers/not-a-uuid", nil, cookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, a.do(http.MethodDelete, "/api/v1/admin/customers/"+id, nil, cookie).Code)
		assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/api/v1/admin/customers/"+id, nil, cookie).Code)
	})
}

func TestShipmentFlow(t *testing.T) {
	a := newAPI(t)
	adminCookie := a.login("admin", adminEmail, adminPassword)

	rec := a.do(http.MethodPost, "/api/v1/admin/customers", customerBody("ada@example.com"), adminCookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	customerID := decode[map[string]string](t, rec)["id"]

	rec = a.do(http.MethodPost, "/api/v1/admin/couriers", map[string]string{
		"first_name": "Mara",
		"last_name":  "Quinn",
		"email":      "mara@example.com",
		"phone":      "555-0141",
		"region":     "North",
		"hire_date":  "2024-02-29",
	}, adminCookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]string](t, rec)
	courierID := created["id"]
	require.Len(t, created["temp_password"], 8)

	rec = a.do(http.MethodPost, "/api/v1/admin/shipments", map[string]any{
		"customer_id":      customerID,
		"sender_address":   "1 Warehouse Way",
		"receiver_address": "1 Main St",
		"city":             "Springfield",
		"requested_date":   "2025-01-15",
		"courier_id":       courierID,
	}, adminCookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	shipment := decode[map[string]string](t, rec)
	shipmentID, trackingNumber := shipment["id"], shipment["tracking_number"]

	rec = a.do(http.MethodPost, "/api/v1/admin/shipments", map[string]any{
		"customer_id":      customerID,
		"sender_address":   "2 Dock Rd",
		"receiver_address": "1 Main St",
		"courier_id":       nil,
	}, adminCookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	t.Run("unknown customer is a validation error", func(t *testing.T) {
		rec := a.do(http.MethodPost, "/api/v1/admin/shipments", map[string]any{
			"customer_id":      "6f1c1f1e-8c1d-4a39-9d4f-0d6a1b5f0c11",
			"sender_address":   "x",
			"receiver_address": "y",
		}, adminCookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad requested date", func(t *testing.T) {
		rec := a.do(http.MethodPost, "/api/v1/admin/shipments", map[string]any{
			"customer_id":      customerID,
			"sender_address":   "x",
			"receiver_address": "y",
			"requested_date":   "15/01/2025",
		}, adminCookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	courierCookie := a.login("courier", "mara@example.com", created["temp_password"])

	t.Run("courier dashboard lists the assignment", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/courier/dashboard", nil, courierCookie)
		require.Equal(t, http.StatusOK, rec.Code)
		items := decode[[]map[string]any](t, rec)
		require.Len(t, items, 1)
		assert.Equal(t, trackingNumber, items[0]["tracking_number"])
		assert.Equal(t, "Assigned", items[0]["status"])
	})

	t.Run("receipt needs a delivery", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/courier/shipments/"+shipmentID+"/receipt", nil, courierCookie)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("event without location is rejected", func(t *testing.T) {
		rec := a.do(http.MethodPost, "/api/v1/courier/shipments/"+shipmentID+"/events",
			map[string]string{"status": "In Transit"}, courierCookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	rec = a.do(http.MethodPost, "/api/v1/courier/shipments/"+shipmentID+"/events", map[string]string{
		"status":   "Delivered",
		"location": "Front door",
		"notes":    "Signed by Ada",
	}, courierCookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	t.Run("receipt after delivery", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/courier/shipments/"+shipmentID+"/receipt", nil, courierCookie)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
		assert.Equal(t, "attachment; filename="+trackingNumber+"-receipt.pdf",
			rec.Header().Get(echo.HeaderContentDisposition))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
	})

	t.Run("admin print", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/admin/shipments/"+shipmentID+"/print", nil, adminCookie)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "attachment; filename="+trackingNumber+".pdf",
			rec.Header().Get(echo.HeaderContentDisposition))
	})

	t.Run("public tracking", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/track?tracking_number="+trackingNumber, nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		view := decode[map[string]any](t, rec)
		assert.Equal(t, "Delivered", view["status"])
		timeline, ok := view["timeline"].([]any)
		require.True(t, ok)
		assert.Len(t, timeline, 3)

		rec = a.do(http.MethodGet, "/api/v1/track?tracking_number="+strings.ToLower(trackingNumber), nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = a.do(http.MethodGet, "/api/v1/track", nil, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("csv export", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/admin/shipments?export=csv", nil, adminCookie)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "attachment; filename=shipments.csv", rec.Header().Get(echo.HeaderContentDisposition))

		records, err := csv.NewReader(rec.Body).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, []string{"Tracking", "Customer", "Courier", "Status", "Requested"}, records[0])

		var delivered, unassigned []string
		for _, r := range records[1:] {
			if r[0] == trackingNumber {
				delivered = r
			} else {
				unassigned = r
			}
		}
		assert.Equal(t, []string{trackingNumber, "Ada Lovelace", "Mara Quinn", "Delivered", "2025-01-15"}, delivered)
		assert.Equal(t, "Unassigned", unassigned[2])
	})

	t.Run("status filter", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/admin/shipments?status=Delivered", nil, adminCookie)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]map[string]any](t, rec), 1)
	})

	t.Run("report", func(t *testing.T) {
		rec := a.do(http.MethodGet,
			"/api/v1/admin/reports?start_date=2025-01-15&end_date=2025-01-15&courier_id="+courierID, nil, adminCookie)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		report := decode[map[string]any](t, rec)
		assert.Len(t, report["shipments"], 1)
		assert.EqualValues(t, 1, report["delivered_shipments"])
		assert.EqualValues(t, 2, report["total_shipments"])

		rec = a.do(http.MethodGet, "/api/v1/admin/reports?start_date=January", nil, adminCookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("other couriers cannot see the shipment", func(t *testing.T) {
		rec := a.do(http.MethodPost, "/api/v1/admin/couriers", map[string]string{
			"first_name": "Tomas",
			"last_name":  "Reyes",
			"email":      "tomas@example.com",
			"phone":      "555-0142",
			"region":     "South",
		}, adminCookie)
		require.Equal(t, http.StatusCreated, rec.Code)
		other := a.login("courier", "tomas@example.com", decode[map[string]string](t, rec)["temp_password"])

		assert.Equal(t, http.StatusNotFound,
			a.do(http.MethodGet, "/api/v1/courier/shipments/"+shipmentID, nil, other).Code)
		assert.Equal(t, http.StatusNotFound,
			a.do(http.MethodPost, "/api/v1/courier/shipments/"+shipmentID+"/events",
				map[string]string{"status": "Lost", "location": "Nowhere"}, other).Code)
		assert.Equal(t, http.StatusNotFound,
			a.do(http.MethodGet, "/api/v1/courier/shipments/"+shipmentID+"/print", nil, other).Code)
		assert.Equal(t, http.StatusNotFound,
			a.do(http.MethodGet, "/api/v1/courier/shipments/"+shipmentID+"/receipt", nil, other).Code)
	})

	t.Run("receipt is withdrawn once returned to sender", func(t *testing.T) {
		rec := a.do(http.MethodPost, "/api/v1/courier/shipments/"+shipmentID+"/events", map[string]string{
			"status":   "Returned to sender",
			"location": "Central Depot",
		}, courierCookie)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		assert.Equal(t, http.StatusNotFound,
			a.do(http.MethodGet, "/api/v1/courier/shipments/"+shipmentID+"/receipt", nil, courierCookie).Code)
		assert.Equal(t, http.StatusOK,
			a.do(http.MethodGet, "/api/v1/courier/shipments/"+shipmentID+"/print", nil, courierCookie).Code)
	})
}

func TestSupportTickets(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodPost, "/api/v1/support/tickets", map[string]string{
		"name":        "Ada",
		"email":       "ada@example.com",
		"role":        "customer",
		"subject":     "Where is my parcel?",
		"description": "It has been a week.",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ticketID := decode[map[string]string](t, rec)["id"]

	rec = a.do(http.MethodPost, "/api/v1/support/tickets", map[string]string{
		"name":        "Ada",
		"email":       "ada@example.com",
		"role":        "admin",
		"subject":     "x",
		"description": "y",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	cookie := a.login("admin", adminEmail, adminPassword)

	rec = a.do(http.MethodPost, "/api/v1/admin/support/tickets/"+ticketID,
		map[string]string{"action": "comment", "body": "Looking into it"}, cookie)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = a.do(http.MethodPost, "/api/v1/admin/support/tickets/"+ticketID,
		map[string]string{"action": "status", "status": "Resolved", "admin_notes": "Found it"}, cookie)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = a.do(http.MethodPost, "/api/v1/admin/support/tickets/"+ticketID,
		map[string]string{"action": "escalate"}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodGet, "/api/v1/admin/support/tickets/"+ticketID, nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	ticket := decode[map[string]any](t, rec)
	assert.Equal(t, "Resolved", ticket["status"])
	assert.Equal(t, "Found it", ticket["admin_notes"])
	comments, ok := ticket["comments"].([]any)
	require.True(t, ok)
	require.Len(t, comments, 1)
	assert.Equal(t, "Grace Hopper", comments[0].(map[string]any)["author"])

	rec = a.do(http.MethodGet, "/api/v1/admin/support/tickets?status=Open", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]map[string]any](t, rec))
}
