// Copyright 2025 Quadrant Analytics
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package barcode

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/crypto/pkcs12"
)

// DefaultEndpoint is the production lookup endpoint.
const DefaultEndpoint = "https://oamsapi.gasopsiq.com/api/GetData/GetDataUsingBarcodeandValidate"

// Client calls the barcode validation API over mutual TLS.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient builds a client from a .pfx certificate file. The certificate
// password may be empty.
func NewClient(endpoint, pfxPath, pfxPassword string) (*Client, error) {
	pfxData, err := os.ReadFile(pfxPath)
	if err != nil {
		return nil, fmt.Errorf("read certificate: %w", err)
	}
	return NewClientFromPFX(endpoint, pfxData, pfxPassword)
}

// NewClientFromPFX builds a client from raw PKCS#12 certificate bytes.
func NewClientFromPFX(endpoint string, pfxData []byte, password string) (*Client, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	key, cert, err := pkcs12.Decode(pfxData, password)
	if err != nil {
		return nil, fmt.Errorf("decode certificate: %w", err)
	}

	tlsCert := tls.Certificate{
		Certificate: [][]byte{cert.Raw},
		PrivateKey:  key,
		Leaf:        cert,
	}

	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					Certificates: []tls.Certificate{tlsCert},
				},
			},
		},
	}, nil
}

// Lookup queries the validation API for one barcode and returns the raw
// response body. The token travels in the auth-token header, as the API
// expects.
func (c *Client) Lookup(ctx context.Context, barcodeValue, token string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("Barcode", barcodeValue)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("auth-token", token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("barcode api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("barcode api response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("barcode api status %d: %s", resp.StatusCode, body)
	}
	return string(body), nil
}
