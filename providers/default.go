package providers

import (
	"net/http"

	"creative-radar/config"
)

// NewDefaultRegistry 는 모든 기본 어댑터를 등록한다. 자격 증명이 없는 어댑터도
// 등록되며 호출 시 soft skip 한다.
func NewDefaultRegistry(cfg config.ProvidersConfig, secrets config.Secrets, httpClient *http.Client) *Registry {
	return NewRegistry(
		NewYouTube(cfg.YouTube, secrets.YouTubeAPIKey, httpClient),
		NewInstagram(cfg.Instagram, secrets.ApifyToken, httpClient),
		NewTikTok(cfg.TikTok, secrets.ApifyToken, httpClient),
		NewPinterest(cfg.Pinterest, secrets.ApifyToken, httpClient),
		NewBehance(cfg.Behance, secrets.ApifyToken, httpClient),
		NewVimeo(cfg.Vimeo, VimeoCredentials{
			ClientID:     secrets.VimeoClientID,
			ClientSecret: secrets.VimeoClientSecret,
			AccessToken:  secrets.VimeoAccessToken,
		}, httpClient),
		NewMetaAds(cfg.MetaAds, secrets.SearchAPIKey, httpClient),
		NewRSS(cfg.RSS, httpClient),
	)
}
