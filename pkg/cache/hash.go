package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 digest of data. Document hashes and file cache
// paths both use it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// versionedKey returns "<kind>:<keyVersion>:<digest>". The digest covers the
// document hash and the JSON form of opts, separated by a NUL byte so a
// document hash can never run into the options.
func versionedKey(kind, docHash string, opts any) string {
	h := sha256.New()
	h.Write([]byte(docHash))
	h.Write([]byte{0})
	// Key option structs contain only strings, ints and bools.
	_ = json.NewEncoder(h).Encode(opts)
	return kind + ":" + keyVersion + ":" + hex.EncodeToString(h.Sum(nil))
}
