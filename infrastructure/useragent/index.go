package useragent

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/mileusna/useragent"
)

type UserAgent struct {
	Bot       bool
	OS        string
	OSVersion string
	Device    string
	Name      string
	Version   string
}

func ParseUserAgent(userAgent string) *UserAgent {
	parsed := useragent.Parse(userAgent)
	return &UserAgent{
		Bot:       parsed.Bot,
		OS:        parsed.OS,
		OSVersion: parsed.OSVersion,
		Device:    parsed.Device,
		Name:      parsed.Name,
		Version:   parsed.VersionNoFull(),
	}
}

// Fingerprint is a stable device identifier derived from the parsed agent.
// Patch versions are left out so a browser update keeps the same value.
func (ua *UserAgent) Fingerprint(clientIP string) string {
	sum := sha256.Sum256([]byte(strings.Join([]string{
		ua.Name,
		ua.Version,
		ua.OS,
		ua.OSVersion,
		ua.Device,
		clientIP,
	}, "|")))
	return hex.EncodeToString(sum[:16])
}
