package courierapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/swiftship/courier-web/courierapi"
)

func TestTrack(t *testing.T) {
	t.Run("found shipment needs no token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/shipments/track/TRK-001", r.URL.Path)
			require.Empty(t, r.Header.Get("Authorization"))
			writeEnvelope(w, http.StatusOK, "", map[string]any{
				"id":             "ship-1",
				"trackingNumber": "TRK-001",
				"status":         "in_transit",
				"packageWeight":  2.5,
			})
		}))
		defer server.Close()

		shipment, err := newTestClient(server).Track(context.Background(), "TRK-001")
		require.NoError(t, err)
		require.Equal(t, "TRK-001", shipment.TrackingNumber)
		require.Equal(t, courierapi.StatusInTransit, shipment.Status)
	})

	t.Run("unknown tracking number is an APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusNotFound, "Shipment not found", nil)
		}))
		defer server.Close()

		_, err := newTestClient(server).Track(context.Background(), "TRK-MISSING")
		var apiErr *courierapi.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})

	t.Run("tracking number is path escaped", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/shipments/track/TRK%2F..%2Fadmin", r.URL.EscapedPath())
			writeEnvelope(w, http.StatusNotFound, "Shipment not found", nil)
		}))
		defer server.Close()

		_, err := newTestClient(server).Track(context.Background(), "TRK/../admin")
		require.Error(t, err)
	})
}

func TestMyShipments(t *testing.T) {
	t.Run("passes paging through", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/shipments/my-shipments", r.URL.Path)
			require.Equal(t, "3", r.URL.Query().Get("page"))
			require.Equal(t, "25", r.URL.Query().Get("pageSize"))
			writeEnvelope(w, http.StatusOK, "", []map[string]any{
				{"id": "ship-1", "trackingNumber": "TRK-001", "status": "pending"},
			})
		}))
		defer server.Close()

		shipments, err := newTestClient(server).MyShipments(context.Background(), &fakeTokenSource{token: "tok"}, 3, 25)
		require.NoError(t, err)
		require.Len(t, shipments, 1)
	})

	t.Run("defaults invalid paging", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "1", r.URL.Query().Get("page"))
			require.Equal(t, "10", r.URL.Query().Get("pageSize"))
			writeEnvelope(w, http.StatusOK, "", []map[string]any{})
		}))
		defer server.Close()

		shipments, err := newTestClient(server).MyShipments(context.Background(), &fakeTokenSource{token: "tok"}, 0, -5)
		require.NoError(t, err)
		require.Empty(t, shipments)
	})
}

func TestShipmentsForbidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusForbidden, "Admin access required", nil)
	}))
	defer server.Close()

	_, err := newTestClient(server).Shipments(context.Background(), &fakeTokenSource{token: "client-token"})
	require.True(t, courierapi.IsForbidden(err))
}

func TestCreateShipment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/shipments", r.URL.Path)

		var req courierapi.CreateShipmentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, 2.5, req.PackageWeight)

		writeEnvelope(w, http.StatusCreated, "Shipment created", map[string]any{
			"id":             "ship-9",
			"trackingNumber": "TRK-009",
			"status":         "pending",
		})
	}))
	defer server.Close()

	created, err := newTestClient(server).CreateShipment(context.Background(), &fakeTokenSource{token: "tok"}, courierapi.CreateShipmentRequest{
		SenderName:    "Jane Doe",
		ReceiverName:  "John Smith",
		PackageWeight: 2.5,
		PackageType:   "box",
	})
	require.NoError(t, err)
	require.Equal(t, "TRK-009", created.TrackingNumber)
	require.Equal(t, courierapi.StatusPending, created.Status)
}

func TestUpdateShipmentStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/shipments/ship-9/status", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "delivered", req["status"])

		writeEnvelope(w, http.StatusOK, "", map[string]any{"id": "ship-9", "status": "delivered"})
	}))
	defer server.Close()

	updated, err := newTestClient(server).UpdateShipmentStatus(context.Background(), &fakeTokenSource{token: "tok"}, "ship-9", courierapi.StatusDelivered)
	require.NoError(t, err)
	require.Equal(t, courierapi.StatusDelivered, updated.Status)
}

func TestDeleteShipment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/shipments/ship-9", r.URL.Path)
		writeEnvelope(w, http.StatusOK, "Shipment deleted", nil)
	}))
	defer server.Close()

	require.NoError(t, newTestClient(server).DeleteShipment(context.Background(), &fakeTokenSource{token: "tok"}, "ship-9"))
}

func TestShipmentStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/shipments/stats", r.URL.Path)
		writeEnvelope(w, http.StatusOK, "", map[string]int{
			"total": 12, "pending": 3, "inTransit": 4, "outForDelivery": 1, "delivered": 3, "cancelled": 1,
		})
	}))
	defer server.Close()

	stats, err := newTestClient(server).ShipmentStats(context.Background(), &fakeTokenSource{token: "tok"})
	require.NoError(t, err)
	require.Equal(t, 12, stats.Total)
	require.Equal(t, 4, stats.InTransit)
}
