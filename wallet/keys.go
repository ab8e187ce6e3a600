// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallet

import (
	"crypto/ed25519"
	"encoding/json"
	"os"
	"strings"

	"github.com/33cn/splitsteal/types"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const keyTypeED25519 = "ed25519:"

// ParsePrivateKey accepts "ed25519:<base58>" with either the 64 byte
// expanded key or the 32 byte seed. The prefix is optional.
func ParsePrivateKey(s string) (ed25519.PrivateKey, error) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, ":"); i >= 0 {
		if s[:i+1] != keyTypeED25519 {
			return nil, errors.WithMessagef(types.ErrPrivateKey, "unsupported key type %q", s[:i])
		}
		s = s[i+1:]
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return nil, errors.WithMessage(types.ErrPrivateKey, err.Error())
	}
	switch len(raw) {
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(raw), nil
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(raw), nil
	}
	return nil, errors.WithMessagef(types.ErrPrivateKey, "key has %d bytes", len(raw))
}

// FormatPublicKey renders a public key the way the node expects it
func FormatPublicKey(pub ed25519.PublicKey) string {
	return keyTypeED25519 + base58.Encode(pub)
}

// FormatPrivateKey renders the 64 byte key in the credentials file format
func FormatPrivateKey(priv ed25519.PrivateKey) string {
	return keyTypeED25519 + base58.Encode(priv)
}

// Credentials the key file layout written by near-cli
type Credentials struct {
	AccountID  string `json:"account_id"`
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

// LoadCredentials reads a credentials file. When the file names a public key
// it has to match the private key.
func LoadCredentials(path string) (*Credentials, ed25519.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read credentials %s", path)
	}
	var cred Credentials
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, nil, errors.WithMessagef(types.ErrPrivateKey, "credentials %s: %v", path, err)
	}
	priv, err := ParsePrivateKey(cred.PrivateKey)
	if err != nil {
		return nil, nil, err
	}
	pub := FormatPublicKey(priv.Public().(ed25519.PublicKey))
	if cred.PublicKey != "" && cred.PublicKey != pub {
		return nil, nil, errors.WithMessagef(types.ErrPrivateKey, "public key %s does not match private key", cred.PublicKey)
	}
	return &cred, priv, nil
}
