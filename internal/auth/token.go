package auth

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fivetwenty-io/bshengine-client/internal/constants"
)

// segmentParser only decodes segments; signatures are never verified here.
var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// ExpiresAt reads the exp claim of a JWT without verifying it. The boolean
// is false when the token carries no exp claim.
func ExpiresAt(token string) (time.Time, bool, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return time.Time{}, false, constants.ErrInvalidJWTFormat
	}

	payload, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return time.Time{}, false, fmt.Errorf("decoding token payload: %w", err)
	}

	var claims jwt.MapClaims

	err = json.Unmarshal(payload, &claims)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing token claims: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("reading exp claim: %w", err)
	}

	if exp == nil {
		return time.Time{}, false, nil
	}

	return exp.Time, true, nil
}

// IsFresh reports whether token has an exp claim that is still in the
// future at now, compared in milliseconds. Malformed tokens are not fresh.
func IsFresh(token string, now time.Time) bool {
	exp, ok, err := ExpiresAt(token)
	if err != nil || !ok {
		return false
	}

	return now.UnixMilli() < exp.UnixMilli()
}
