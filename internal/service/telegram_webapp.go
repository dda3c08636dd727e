package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// WebAppUser is the Telegram account embedded in WebApp initData.
type WebAppUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	LanguageCode string `json:"language_code"`
	IsPremium    bool   `json:"is_premium"`
}

// WebAppAuthData is a parsed and verified initData payload.
type WebAppAuthData struct {
	User     WebAppUser
	AuthDate time.Time
	Hash     string
}

// VerifyWebAppInitData checks the initData signature against the bot
// token and rejects stale payloads. The signature scheme is the one
// Telegram documents for Mini Apps: the data-check-string is every
// field except hash, sorted, joined with newlines, signed with
// HMAC-SHA256 under a secret derived from the bot token.
func VerifyWebAppInitData(initData, botToken string, maxAge time.Duration) (*WebAppAuthData, error) {
	if strings.TrimSpace(initData) == "" {
		return nil, fmt.Errorf("%w: empty init data", ErrTelegramAuthFailed)
	}
	if strings.TrimSpace(botToken) == "" {
		return nil, fmt.Errorf("%w: bot token not configured", ErrTelegramAuthFailed)
	}

	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed init data: %v", ErrTelegramAuthFailed, err)
	}

	providedHash := values.Get("hash")
	if providedHash == "" {
		return nil, fmt.Errorf("%w: hash missing", ErrTelegramAuthFailed)
	}

	expected := computeInitDataHash(values, botToken)
	if !hmac.Equal([]byte(expected), []byte(providedHash)) {
		return nil, fmt.Errorf("%w: hash mismatch", ErrTelegramAuthFailed)
	}

	authDateRaw := values.Get("auth_date")
	authDateUnix, err := strconv.ParseInt(authDateRaw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad auth_date", ErrTelegramAuthFailed)
	}
	authDate := time.Unix(authDateUnix, 0)
	if maxAge > 0 && time.Since(authDate) > maxAge {
		return nil, fmt.Errorf("%w: auth_date too old", ErrTelegramAuthFailed)
	}

	userRaw := values.Get("user")
	if userRaw == "" {
		return nil, fmt.Errorf("%w: user field missing", ErrTelegramAuthFailed)
	}
	var user WebAppUser
	if err := json.Unmarshal([]byte(userRaw), &user); err != nil {
		return nil, fmt.Errorf("%w: bad user field: %v", ErrTelegramAuthFailed, err)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("%w: user id missing", ErrTelegramAuthFailed)
	}

	return &WebAppAuthData{
		User:     user,
		AuthDate: authDate,
		Hash:     providedHash,
	}, nil
}

func computeInitDataHash(values url.Values, botToken string) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		if key == "hash" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	dataCheckString := strings.Join(pairs, "\n")

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(botToken))
	secret := secretMac.Sum(nil)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(dataCheckString))
	return hex.EncodeToString(mac.Sum(nil))
}
