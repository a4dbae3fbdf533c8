package main

import (
	"crypto/sha1"
	"encoding/hex"
)

// computeETag hashes the stored PNG bytes, not the packed buffer. The device
// keeps the bare 40 character hex digest.
func computeETag(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

func isUnmodified(etag, clientETag string) bool {
	return clientETag != "" && etag == clientETag
}
