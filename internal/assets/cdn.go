// Package assets builds static asset URLs for the Data Dragon CDN.
package assets

import (
	"net/url"
	"strings"
)

const (
	DefaultBaseURL = "https://ddragon.leagueoflegends.com"
	DefaultVersion = "14.22.1"
)

// CDN resolves champion art for one Data Dragon version.
type CDN struct {
	baseURL string
	version string
}

// New returns a CDN rooted at baseURL. Empty values fall back to the defaults.
func New(baseURL, version string) CDN {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if version == "" {
		version = DefaultVersion
	}
	return CDN{baseURL: baseURL, version: version}
}

// Version is the Data Dragon patch the CDN points at.
func (c CDN) Version() string {
	return c.version
}

// ChampionIconURL returns the square icon for championName. The name is not
// checked against the champion list.
func (c CDN) ChampionIconURL(championName string) string {
	return c.baseURL + "/cdn/" + c.version + "/img/champion/" + url.PathEscape(championName) + ".png"
}
