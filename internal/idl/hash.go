package idl

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainProgram = "bindgen/program/v1"
	DomainOptions = "bindgen/options/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ProgramHash computes the content-addressed identity of a program.
// Equal environments, actors and docs always hash equally regardless of
// map iteration order.
func ProgramHash(p *Program) (string, error) {
	canonical, err := MarshalCanonical(EncodeProgram(p))
	if err != nil {
		return "", fmt.Errorf("ProgramHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainProgram, canonical), nil
}

// OptionsHash computes the identity of a set of generation options.
func OptionsHash(opts map[string]any) (string, error) {
	canonical, err := MarshalCanonical(opts)
	if err != nil {
		return "", fmt.Errorf("OptionsHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainOptions, canonical), nil
}
