package middleware

import (
	"crypto/sha512"
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// HeaderAPIKey is the request header carrying the shared secret.
const HeaderAPIKey = "x-api-key"

// APIKeyAuth rejects any request that does not carry the configured
// shared secret in the x-api-key header. Both sides are reduced to
// SHA-512 digests and the digests are compared in constant time, so
// the comparison never branches on a prefix of the plaintext secret.
// Every request is checked independently; no session state exists.
func APIKeyAuth(secret string) fiber.Handler {
	secretDigest := sha512.Sum512([]byte(secret))

	return func(ctx *fiber.Ctx) error {
		presented := ctx.Get(HeaderAPIKey)
		if presented == "" {
			return ctx.Status(fiber.StatusUnauthorized).SendString("API Key is missing")
		}

		presentedDigest := sha512.Sum512([]byte(presented))
		if subtle.ConstantTimeCompare(presentedDigest[:], secretDigest[:]) != 1 {
			return ctx.Status(fiber.StatusUnauthorized).SendString("Invalid API key")
		}

		return ctx.Next()
	}
}
