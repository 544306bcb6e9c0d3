package redact

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// anonPrefix is hashed together with the identifier so anonymous IDs never
// collide with hashes of the raw value computed elsewhere.
const anonPrefix = "anon_"

// anonymousIDLength is the number of hex characters kept from the digest.
const anonymousIDLength = 8

// defaultAnonymizationKey keys the hash when the caller provides none.
// The hash is display-only de-identification, not a security boundary;
// deployments wanting unlinkable IDs across installations override the key.
var defaultAnonymizationKey = []byte("guardkit-anonymous-id")

// anonymousID derives the deterministic display identifier replacing a
// record id for low tiers: the first 8 hex characters of a keyed
// BLAKE2b-256 digest of "anon_"+id.
func anonymousID(key []byte, id any) string {
	h, err := blake2b.New256(key)
	if err != nil {
		// Only reachable with a key longer than 64 bytes, which the
		// engine constructor rejects.
		panic(fmt.Sprintf("redact: anonymization hash init: %v", err))
	}
	h.Write([]byte(anonPrefix))
	h.Write([]byte(fmt.Sprint(id)))
	return hex.EncodeToString(h.Sum(nil))[:anonymousIDLength]
}
