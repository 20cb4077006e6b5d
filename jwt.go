package restlite

import (
	"time"

	"github.com/MKhiriev/go-rest-lite/internal/utils"
)

// BearerJWT returns a predicate accepting requests whose Authorization
// header carries an HS256 token signed with signKey and issued by issuer.
// The token subject is stored on the request under [SubjectKey].
func BearerJWT(signKey, issuer string) Predicate {
	return func(req *Request) bool {
		raw, err := utils.ParseBearerToken(req.Header.Get("Authorization"))
		if err != nil {
			return false
		}

		token, err := utils.ValidateAndParseJWTToken(raw, signKey, issuer)
		if err != nil {
			return false
		}

		req.Set(SubjectKey, token.Subject)
		return true
	}
}

// IssueJWT signs a token BearerJWT accepts.
func IssueJWT(signKey, issuer, subject string, ttl time.Duration) (string, error) {
	token, err := utils.GenerateJWTToken(issuer, subject, ttl, signKey)
	if err != nil {
		return "", err
	}
	return token.SignedString, nil
}
