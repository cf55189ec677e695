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

// Package tenant resolves the caller's database from a request token.
//
// The token is base64 over five ampersand-delimited claims:
// issued timestamp, login master ID, database name, expiry timestamp, and
// organization ID. A token that fails to decode yields no tenant context
// rather than an error; the pipeline then answers without database access.
package tenant

import (
	"encoding/base64"
	"log/slog"
	"strings"

	"github.com/quadrantai/woqa/core"
)

// Decoder extracts a tenant context from a request token. The boolean is
// false when the token is missing or malformed.
type Decoder interface {
	Decode(token string) (core.TenantContext, bool)
}

// claimCount is the number of ampersand-delimited fields in a token.
const claimCount = 5

// TokenDecoder is the production Decoder for the OAMS token format.
type TokenDecoder struct {
	logger *slog.Logger
}

// NewTokenDecoder creates a decoder for the standard token format.
func NewTokenDecoder() *TokenDecoder {
	return &TokenDecoder{
		logger: slog.Default().With("component", "tenant-decoder"),
	}
}

// Decode parses "issued&loginID&database&expires&org" out of the base64
// token. Any shape mismatch is logged and reported as no tenant context.
func (d *TokenDecoder) Decode(token string) (core.TenantContext, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return core.TenantContext{}, false
	}

	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		d.logger.Warn("token is not valid base64", "err", err)
		return core.TenantContext{}, false
	}

	claims := strings.Split(string(raw), "&")
	if len(claims) != claimCount {
		d.logger.Warn("token has wrong claim count", "claims", len(claims))
		return core.TenantContext{}, false
	}

	database := strings.TrimSpace(claims[2])
	if database == "" {
		d.logger.Warn("token carries no database name")
		return core.TenantContext{}, false
	}

	return core.TenantContext{
		DatabaseName:  database,
		LoginMasterID: strings.TrimSpace(claims[1]),
		OrgID:         strings.TrimSpace(claims[4]),
	}, true
}
