package layout

import (
	"crypto/sha256"

	"github.com/mr-tron/base58"
)

// DiscriminatorLength is the width of an Anchor account discriminator.
const DiscriminatorLength = 8

// AnchorDiscriminator returns the first eight bytes of sha256("account:<name>").
func AnchorDiscriminator(account string) [DiscriminatorLength]byte {
	sum := sha256.Sum256([]byte("account:" + account))
	var out [DiscriminatorLength]byte
	copy(out[:], sum[:DiscriminatorLength])
	return out
}

// EncodeBase58 encodes raw bytes the way memcmp filters expect them.
func EncodeBase58(data []byte) string {
	return base58.Encode(data)
}
