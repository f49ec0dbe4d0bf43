package courierapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

const (
	shipmentsPath     = "/api/shipments"
	myShipmentsPath   = "/api/shipments/my-shipments"
	shipmentStatsPath = "/api/shipments/stats"
	trackPath         = "/api/shipments/track/"
)

// CreateShipment registers a new shipment for the authenticated user.
func (c *Client) CreateShipment(ctx context.Context, ts TokenSource, req CreateShipmentRequest) (*Shipment, error) {
	resp, err := c.DoAuthed(ctx, http.MethodPost, shipmentsPath, RequestOptions{Body: req}, ts)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.CreateShipment]")
	}
	var shipment Shipment
	if err := decode(resp, &shipment); err != nil {
		return nil, err
	}
	return &shipment, nil
}

// Shipments lists every shipment in the system. Admin-only on the remote
// side; a client token gets a 403 back through the APIError path.
func (c *Client) Shipments(ctx context.Context, ts TokenSource) ([]Shipment, error) {
	resp, err := c.DoAuthed(ctx, http.MethodGet, shipmentsPath, RequestOptions{}, ts)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Shipments]")
	}
	var shipments []Shipment
	if err := decode(resp, &shipments); err != nil {
		return nil, err
	}
	return shipments, nil
}

// MyShipments lists the authenticated user's shipments, paged.
func (c *Client) MyShipments(ctx context.Context, ts TokenSource, page, pageSize int) ([]Shipment, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	path := fmt.Sprintf("%s?page=%d&pageSize=%d", myShipmentsPath, page, pageSize)
	resp, err := c.DoAuthed(ctx, http.MethodGet, path, RequestOptions{}, ts)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.MyShipments]")
	}
	var shipments []Shipment
	if err := decode(resp, &shipments); err != nil {
		return nil, err
	}
	return shipments, nil
}

func (c *Client) ShipmentStats(ctx context.Context, ts TokenSource) (*ShipmentStats, error) {
	resp, err := c.DoAuthed(ctx, http.MethodGet, shipmentStatsPath, RequestOptions{}, ts)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.ShipmentStats]")
	}
	var stats ShipmentStats
	if err := decode(resp, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Track looks up a shipment by tracking number. Public, no token.
func (c *Client) Track(ctx context.Context, trackingNumber string) (*Shipment, error) {
	resp, err := c.Do(ctx, http.MethodGet, trackPath+url.PathEscape(trackingNumber), RequestOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Track]")
	}
	var shipment Shipment
	if err := decode(resp, &shipment); err != nil {
		return nil, err
	}
	return &shipment, nil
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateShipmentStatus transitions a shipment's status. Admin-only.
func (c *Client) UpdateShipmentStatus(ctx context.Context, ts TokenSource, shipmentID, status string) (*Shipment, error) {
	path := shipmentsPath + "/" + url.PathEscape(shipmentID) + "/status"
	resp, err := c.DoAuthed(ctx, http.MethodPatch, path, RequestOptions{Body: updateStatusRequest{Status: status}}, ts)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.UpdateShipmentStatus]")
	}
	var shipment Shipment
	if err := decode(resp, &shipment); err != nil {
		return nil, err
	}
	return &shipment, nil
}

func (c *Client) DeleteShipment(ctx context.Context, ts TokenSource, shipmentID string) error {
	path := shipmentsPath + "/" + url.PathEscape(shipmentID)
	resp, err := c.DoAuthed(ctx, http.MethodDelete, path, RequestOptions{}, ts)
	if err != nil {
		return errors.Wrap(err, "[Client.DeleteShipment]")
	}
	return decode(resp, nil)
}
