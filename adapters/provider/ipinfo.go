package provider

import (
	"context"
	"net"
	"net/url"

	"github.com/satriahrh/gerch/domain"
)

// IPInfo geolocates addresses through ipinfo.io.
type IPInfo struct {
	base
}

func NewIPInfo(opts ...Option) *IPInfo {
	return &IPInfo{base: newBase("https://ipinfo.io", opts)}
}

type ipInfoResponse struct {
	IP      string `json:"ip"`
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
	Org     string `json:"org"`
	Bogon   bool   `json:"bogon"`
}

func (i *IPInfo) LookupIP(ctx context.Context, ip string) (domain.IPInfo, error) {
	path := "/json"
	if ip != "" {
		if net.ParseIP(ip) == nil {
			return domain.IPInfo{}, domain.ErrInvalidInput
		}
		path = "/" + url.PathEscape(ip) + "/json"
	}

	var resp ipInfoResponse
	if err := i.getJSON(ctx, path, nil, &resp); err != nil {
		return domain.IPInfo{}, err
	}
	if resp.Bogon || resp.IP == "" {
		return domain.IPInfo{}, domain.ErrNotFound
	}
	return domain.IPInfo{
		IP:      resp.IP,
		City:    resp.City,
		Region:  resp.Region,
		Country: resp.Country,
		Org:     resp.Org,
	}, nil
}
