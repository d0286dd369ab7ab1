package service

import (
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID string) ([]byte, error)
}

// DefaultQRGenerator encodes a link to the order tracking page.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(orderID string) ([]byte, error) {
	return qrcode.Encode(g.TrackingURL(orderID), qrcode.Medium, 256)
}

func (g DefaultQRGenerator) TrackingURL(orderID string) string {
	return strings.TrimRight(g.BaseURL, "/") + "/orders/" + orderID
}

func QRLink(orderID string) string {
	return "/api/orders/" + orderID + "/qrcode"
}
