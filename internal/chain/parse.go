package chain

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// ParsePublicKey converts a base-58 address into a solana.PublicKey.
func ParsePublicKey(input string) (solana.PublicKey, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return solana.PublicKey{}, fmt.Errorf("address is empty")
	}
	key, err := solana.PublicKeyFromBase58(input)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid address %s: %w", input, err)
	}
	return key, nil
}
