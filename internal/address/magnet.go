// Package address derives the content address of a profile: a magnet URI
// whose btih component is the SHA-256 of the profile's canonical bytes.
package address

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"snartnet/internal/domain"
)

const (
	magnetPrefix = "magnet:?xt=urn:btih:"
	namePrefix   = "&dn=profile_"
	hashHexLen   = sha256.Size * 2
)

// ProfileHash returns the lowercase hex SHA-256 of p's canonical bytes with
// MagnetURI treated as null, so an address stored inside a profile can be
// recomputed from it.
func ProfileHash(p domain.Profile) (string, error) {
	p.MagnetURI = nil
	b, err := p.CanonicalBytes()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// MagnetURI formats the content address of p.
func MagnetURI(p domain.Profile) (string, error) {
	h, err := ProfileHash(p)
	if err != nil {
		return "", err
	}
	return magnetPrefix + h + namePrefix + p.Username, nil
}

// Matches reports whether uri is the current address of p.
func Matches(p domain.Profile, uri string) bool {
	want, err := MagnetURI(p)
	return err == nil && want == uri
}

// ParseMagnetURI splits a profile magnet URI into its hash and username.
func ParseMagnetURI(uri string) (hash, username string, err error) {
	rest, ok := strings.CutPrefix(uri, magnetPrefix)
	if !ok {
		return "", "", fmt.Errorf("%w: magnet uri: missing %q prefix", domain.ErrInvalidInput, magnetPrefix)
	}
	hash, username, ok = strings.Cut(rest, namePrefix)
	if !ok {
		return "", "", fmt.Errorf("%w: magnet uri: missing profile name", domain.ErrInvalidInput)
	}
	if len(hash) != hashHexLen || strings.ToLower(hash) != hash {
		return "", "", fmt.Errorf("%w: magnet uri: hash must be %d lowercase hex digits", domain.ErrInvalidInput, hashHexLen)
	}
	if _, err := hex.DecodeString(hash); err != nil {
		return "", "", fmt.Errorf("%w: magnet uri: %v", domain.ErrInvalidInput, err)
	}
	return hash, username, nil
}
