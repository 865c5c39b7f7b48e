// Package geo resolves visitor IPs to a best-effort country. Lookups
// never fail loudly: a miss, a timeout or a bad upstream response all
// come back as an empty Country so visit recording is never blocked.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/basalt-io/basalt-cms/pkg/ipaddr"
	"github.com/sirupsen/logrus"
)

const (
	defaultEndpoint = "http://ip-api.com/json"
	lookupTimeout   = 5 * time.Second
)

// Country is the resolved pair. Both fields are set or both are empty,
// never one without the other.
type Country struct {
	Code string
	Name string
}

func (c Country) IsZero() bool {
	return c.Code == "" && c.Name == ""
}

type Resolver interface {
	// ResolveCountry returns the country for a public IP, or the zero
	// Country when the address is not routable or the lookup fails.
	ResolveCountry(ctx context.Context, ip string) Country
}

type ipAPIResolver struct {
	endpoint string
	client   *http.Client
}

// NewResolver returns a Resolver backed by the ip-api.com JSON API.
func NewResolver() Resolver {
	return &ipAPIResolver{
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: lookupTimeout},
	}
}

// NewResolverWithEndpoint is used by tests to point at a fake upstream.
func NewResolverWithEndpoint(endpoint string) Resolver {
	return &ipAPIResolver{
		endpoint: endpoint,
		client:   &http.Client{Timeout: lookupTimeout},
	}
}

type ipAPIResponse struct {
	Status      string `json:"status"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
}

func (r *ipAPIResolver) ResolveCountry(ctx context.Context, ip string) Country {
	if !ipaddr.IsRoutable(ip) {
		return Country{}
	}

	// The lookup carries its own deadline so an aborted caller context
	// cannot leave it hanging, and a slow upstream cannot stall us.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lookupTimeout)
	defer cancel()

	u := fmt.Sprintf("%s/%s?fields=status,country,countryCode", r.endpoint, url.PathEscape(ip))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		logrus.WithError(err).Debug("geo: building lookup request")
		return Country{}
	}

	resp, err := r.client.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("ip", ipaddr.Mask(ip)).Debug("geo: lookup failed")
		return Country{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.WithField("status", resp.StatusCode).Debug("geo: lookup non-200")
		return Country{}
	}

	var body ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logrus.WithError(err).Debug("geo: decoding lookup response")
		return Country{}
	}

	if body.Status != "success" || body.CountryCode == "" {
		return Country{}
	}

	return Country{Code: body.CountryCode, Name: body.Country}
}
