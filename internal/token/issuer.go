// Package token builds and signs the two credentials this core hands out: a
// vote-scoped token asserting eligibility for one campaign year, and a
// general user session token. Both are ES256 JWTs verifiable with the
// issuer's public key.
package token

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"votegate/internal/voter/models"
	dErrors "votegate/pkg/domain-errors"
)

// Audience values. A verifier must reject anything else.
const (
	AudienceVote      = "vote"
	AudienceUserspace = "userspace"
)

// Claims carries the voter correlation id. For vote tokens VoteID is the
// eligibility id; for session tokens it is the voter identifier.
type Claims struct {
	VoteID string `json:"vote_id"`
	jwt.RegisteredClaims
}

// Metrics counts issued tokens. Satisfied by *metrics.Metrics.
type Metrics interface {
	TokenIssued(audience string)
}

// Issuer signs tokens with a process-wide ECDSA P-256 key. The private key
// is loaded once at startup and never surfaces in errors or logs.
type Issuer struct {
	key *ecdsa.PrivateKey

	serviceTag    string
	campaignStart time.Time
	ttl           time.Duration

	metrics Metrics
	now     func() time.Time
}

// Option configures an Issuer.
type Option func(*Issuer)

func WithMetrics(m Metrics) Option {
	return func(i *Issuer) {
		i.metrics = m
	}
}

// WithClock substitutes the time source for tests.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

// New constructs an Issuer. campaignStart floors the vote-token validity
// window; it is campaign-specific configuration, not derived from the vote
// year.
func New(key *ecdsa.PrivateKey, serviceTag string, campaignStart time.Time, ttl time.Duration, opts ...Option) (*Issuer, error) {
	if key == nil {
		return nil, fmt.Errorf("signing key is required")
	}
	if serviceTag == "" {
		return nil, fmt.Errorf("service tag is required")
	}

	issuer := &Issuer{
		key:           key,
		serviceTag:    serviceTag,
		campaignStart: campaignStart,
		ttl:           ttl,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(issuer)
	}
	return issuer, nil
}

// ParseKeyPEM loads an ECDSA private key from PEM.
func ParseKeyPEM(pemBytes []byte) (*ecdsa.PrivateKey, error) {
	key, err := jwt.ParseECPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parse signing key: %w", err)
	}
	return key, nil
}

// GenerateKey creates an ephemeral P-256 key for development setups that
// configure none. Tokens die with the process; fine for local use only.
func GenerateKey() (*ecdsa.PrivateKey, error) {
	return ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
}

// EligibilityID derives the deterministic vote correlation id
// "<tag>-<year>-<identifier>". It requires at least one verified contact
// channel.
func (i *Issuer) EligibilityID(voter *models.Voter, voteYear int) (string, error) {
	if !voter.Verified() {
		return "", dErrors.New(dErrors.CodeUserNotVerified, "verify an email or phone before voting")
	}
	return fmt.Sprintf("%s-%d-%s", i.serviceTag, voteYear, voter.ID), nil
}

// IssueVoteToken signs a vote-scoped token for the given campaign year. The
// validity window opens at the configured campaign start and closes ttl
// after issuance.
func (i *Issuer) IssueVoteToken(voter *models.Voter, voteYear int) (string, error) {
	voteID, err := i.EligibilityID(voter, voteYear)
	if err != nil {
		return "", err
	}

	now := i.now()
	signed, err := i.sign(Claims{
		VoteID: voteID,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{AudienceVote},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(i.campaignStart),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})
	if err != nil {
		return "", err
	}

	if i.metrics != nil {
		i.metrics.TokenIssued(AudienceVote)
	}
	return signed, nil
}

// IssueSessionToken signs a userspace token carrying the voter identifier.
// No campaign floor applies.
func (i *Issuer) IssueSessionToken(voter *models.Voter) (string, error) {
	now := i.now()
	signed, err := i.sign(Claims{
		VoteID: voter.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{AudienceUserspace},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})
	if err != nil {
		return "", err
	}

	if i.metrics != nil {
		i.metrics.TokenIssued(AudienceUserspace)
	}
	return signed, nil
}

// Verify parses and validates a token signed by this issuer, enforcing the
// expected audience, and returns its claims.
func (i *Issuer) Verify(tokenString, audience string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return &i.key.PublicKey, nil
	}, jwt.WithAudience(audience), jwt.WithValidMethods([]string{"ES256"}), jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, dErrors.New(dErrors.CodeAuthorizationFailed, "token verification failed")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeAuthorizationFailed, "token verification failed")
	}
	return claims, nil
}

func (i *Issuer) sign(claims Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(i.key)
	if err != nil {
		// The error text stays generic: signing failures must not leak key
		// material.
		return "", dErrors.New(dErrors.CodeUnknown, "token signing failed")
	}
	return signed, nil
}
