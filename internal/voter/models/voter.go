// Package models holds the voter identity record and the value objects the
// verification and issuance services exchange.
package models

import "time"

// Channel names a verification channel.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPhone Channel = "phone"
)

// Voter is the account record this core authenticates. One record per
// principal; mutated only through the voter service; never hard-deleted.
//
// Optional string fields use "" for absence. Exactly one of these holds at
// any time: PasswordHashed with LegacySalt (legacy scheme), PasswordHashed
// alone (modern scheme), or neither (passwordless account).
type Voter struct {
	// ID is assigned at creation and immutable afterwards.
	ID string `json:"id"`

	Phone         string `json:"phone,omitempty"`
	PhoneVerified bool   `json:"phone_verified"`
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified"`

	// PasswordHashed is empty for third-party-only accounts.
	PasswordHashed string `json:"password_hashed,omitempty"`
	// LegacySalt marks the stored hash as legacy-scheme; it is appended to
	// the supplied password before verification and cleared on migration.
	LegacySalt string `json:"legacy_salt,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	Nickname  string    `json:"nickname,omitempty"`
	SignupIP  string    `json:"signup_ip,omitempty"`
	Pfp       string    `json:"pfp,omitempty"`

	// Federated identifiers, at most one per provider.
	THBWikiUID string `json:"thbwiki_uid,omitempty"`
	QQOpenID   string `json:"qq_openid,omitempty"`

	// Removed soft-deletes the record. Contact fields are cleared when set;
	// the row persists for audit.
	Removed bool `json:"removed,omitempty"`
}

// HasPassword reports whether password login is supported for this voter.
func (v *Voter) HasPassword() bool {
	return v.PasswordHashed != ""
}

// Verified reports whether at least one contact channel is verified, the
// precondition for vote-token issuance.
func (v *Voter) Verified() bool {
	return v.PhoneVerified || v.EmailVerified
}

// Projection is the caller-facing view of a voter. It never exposes hashes
// or salts.
type Projection struct {
	Username string `json:"username,omitempty"`
	Pfp      string `json:"pfp,omitempty"`
	Password bool   `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	THBWiki  bool   `json:"thbwiki"`
	QQ       bool   `json:"qq"`
}

// Project builds the caller-facing view.
func (v *Voter) Project() Projection {
	return Projection{
		Username: v.Nickname,
		Pfp:      v.Pfp,
		Password: v.HasPassword(),
		Phone:    v.Phone,
		Email:    v.Email,
		THBWiki:  v.THBWikiUID != "",
		QQ:       v.QQOpenID != "",
	}
}

// LoginSession bridges claims proven by a federated identity provider to a
// voter record that does not exist yet, or is not linked yet. It lives in the
// ephemeral store under a random session id and expires by TTL alone.
type LoginSession struct {
	THBWikiUID string `json:"thbwiki_uid,omitempty"`
	QQOpenID   string `json:"qq_openid,omitempty"`
	SignupIP   string `json:"signup_ip,omitempty"`
}

// RequestMeta carries requester forensics captured by the transport layer.
type RequestMeta struct {
	UserIP                string `json:"user_ip"`
	AdditionalFingerprint string `json:"additional_fingerprint,omitempty"`
}

// LoginResult is the success payload of every login operation.
type LoginResult struct {
	Voter        Projection `json:"user"`
	VoteToken    string     `json:"vote_token"`
	SessionToken string     `json:"session_token"`
}
