//go:build ignore

// Generate a base64-encoded AES-256 master key for campaign secret
// encryption.
//
// Run: go run scripts/generate-master-key.go
//
// Export the output as CUSTODY_MASTER_KEY (or whatever
// wallet.master_key_env names) before starting the server.

package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
)

func main() {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate key: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(base64.StdEncoding.EncodeToString(key))
}
