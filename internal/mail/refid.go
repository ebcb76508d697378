package mail

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewRefID returns a unique reference for the X-Entity-Ref-ID header so
// providers thread each message separately.
func NewRefID() string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), hex.EncodeToString(buf))
}
