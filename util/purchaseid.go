// Package util provides small helpers shared across the storefront.
package util

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// PurchaseID returns a unique, time-derived purchase identifier: the
// millisecond epoch followed by a short random suffix so two checkouts in
// the same millisecond cannot collide.
func PurchaseID() string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + hex.EncodeToString(b[:])
}
