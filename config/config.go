package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Server    ServerConfig    `yaml:"server"`
	LLM       LLMConfig       `yaml:"llm"`
	Search    SearchConfig    `yaml:"search"`
	Storage   StorageConfig   `yaml:"storage"`
	Providers ProvidersConfig `yaml:"providers"`
	Events    EventsConfig    `yaml:"events"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// LLMConfig 는 쿼리 플래닝과 관련도 채점에 사용하는 생성 모델 설정이다.
// API 키는 설정 파일이 아닌 GEMINI_API_KEY 환경변수에서 읽는다.
type LLMConfig struct {
	Provider         string         `yaml:"provider"`
	ModelName        string         `yaml:"model_name"`
	PlannerMaxTokens int32          `yaml:"planner_max_tokens"`
	ScorerMaxTokens  int32          `yaml:"scorer_max_tokens"`
	Quota            LLMQuotaConfig `yaml:"quota"`
}

// LLMQuotaConfig 는 생성 모델 호출 한도다. 0 이하는 제한 없음.
type LLMQuotaConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	RequestsPerDay    int `yaml:"requests_per_day"`
}

// SearchConfig 는 검색 파이프라인의 설계 상수를 정의한다.
type SearchConfig struct {
	// ProviderTimeout 은 프로바이더 1회 호출에 허용되는 최대 시간이다.
	ProviderTimeout time.Duration `yaml:"provider_timeout"`
	// ScoreBatchSize 는 채점 백엔드에 한 번에 보내는 결과 수이다.
	ScoreBatchSize int `yaml:"score_batch_size"`
	// ScoreParallelism 이 1 보다 크면 배치를 병렬로 채점한다.
	ScoreParallelism int `yaml:"score_parallelism"`
	// DefaultPlatforms 는 platforms 가 비어 있거나 "all" 일 때 사용하는 목록이다.
	DefaultPlatforms []string `yaml:"default_platforms"`
}

type StorageConfig struct {
	Driver     string `yaml:"driver"` // sqlite | mongo
	SQLitePath string `yaml:"sqlite_path"`
	MongoURI   string `yaml:"mongo_uri"`
	MongoDB    string `yaml:"mongo_db"`
}

type ProvidersConfig struct {
	YouTube   YouTubeConfig `yaml:"youtube"`
	Instagram ApifyConfig   `yaml:"instagram"`
	TikTok    ApifyConfig   `yaml:"tiktok"`
	Pinterest ApifyConfig   `yaml:"pinterest"`
	Behance   ApifyConfig   `yaml:"behance"`
	Vimeo     VimeoConfig   `yaml:"vimeo"`
	MetaAds   MetaAdsConfig `yaml:"meta_ads"`
	RSS       RSSConfig     `yaml:"rss"`
}

type YouTubeConfig struct {
	BaseURL    string `yaml:"base_url"`
	MaxResults int    `yaml:"max_results"`
}

// ApifyConfig 는 Apify 액터 기반 프로바이더 공통 설정이다.
// MaxItems 는 액터별로 resultsPerPage / maxItems / maxitems 입력으로 매핑된다.
type ApifyConfig struct {
	BaseURL  string `yaml:"base_url"`
	Actor    string `yaml:"actor"`
	MaxItems int    `yaml:"max_items"`
}

type VimeoConfig struct {
	BaseURL string `yaml:"base_url"`
	PerPage int    `yaml:"per_page"`
}

type MetaAdsConfig struct {
	BaseURL string `yaml:"base_url"`
	Country string `yaml:"country"`
}

// RSSConfig 는 영감용 피드 목록이다. 쿼리 토큰이 제목/설명에 포함된 항목만 결과로 사용한다.
type RSSConfig struct {
	Feeds      []string `yaml:"feeds"`
	MaxItems   int      `yaml:"max_items"`
	MaxPreview int      `yaml:"max_preview"`
}

type EventsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Topic   string `yaml:"topic"`
}

// Secrets 는 .env 또는 프로세스 환경변수에서 읽는 자격 증명 모음이다.
type Secrets struct {
	GeminiAPIKey      string
	YouTubeAPIKey     string
	ApifyToken        string
	VimeoClientID     string
	VimeoClientSecret string
	VimeoAccessToken  string
	SearchAPIKey      string
	KafkaBrokers      string
}

var config *AppConfig

func InitApp() {
	if err := Load(GetBasePath()); err != nil {
		panic(err)
	}
}

// Load 는 dir 아래의 .env 와 config.yaml 을 읽어 전역 설정을 교체한다.
// config.yaml 이 없으면 기본값만으로 동작한다.
func Load(dir string) error {
	// load environment variables
	godotenv.Load(filepath.Join(dir, ENV_FILE))

	c := Default()
	data, err := os.ReadFile(filepath.Join(dir, CONFIG_FILE))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &c); err != nil {
			return fmt.Errorf("failed to parse %s: %w", CONFIG_FILE, err)
		}
	}
	c.applyEnv()
	if err := c.Validate(); err != nil {
		return err
	}
	config = &c
	return nil
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

// Default 는 config.yaml 없이도 서버가 기동되도록 하는 기본 설정이다.
func Default() AppConfig {
	return AppConfig{
		Logging: LoggingConfig{Level: "info"},
		Server:  ServerConfig{Addr: ":3000", CORSOrigins: []string{"*"}},
		LLM: LLMConfig{
			Provider:         "google",
			ModelName:        "gemini-2.5-flash",
			PlannerMaxTokens: 1024,
			ScorerMaxTokens:  4096,
		},
		Search: SearchConfig{
			ProviderTimeout:  60 * time.Second,
			ScoreBatchSize:   30,
			ScoreParallelism: 1,
			DefaultPlatforms: []string{"youtube", "instagram", "tiktok", "pinterest", "behance", "vimeo", "meta-ads"},
		},
		Storage: StorageConfig{
			Driver:     "sqlite",
			SQLitePath: "creative-radar.db",
			MongoDB:    "creative_radar",
		},
		Providers: ProvidersConfig{
			YouTube:   YouTubeConfig{MaxResults: 10},
			Instagram: ApifyConfig{Actor: "apidojo/instagram-scraper", MaxItems: 15},
			TikTok:    ApifyConfig{Actor: "apidojo/tiktok-scraper", MaxItems: 15},
			Pinterest: ApifyConfig{Actor: "epctex/pinterest-scraper", MaxItems: 15},
			Behance:   ApifyConfig{Actor: "scrapestorm/behance-images-search-scraper-fast-and-cheap", MaxItems: 15},
			Vimeo:     VimeoConfig{PerPage: 10},
			MetaAds:   MetaAdsConfig{Country: "ALL"},
			RSS:       RSSConfig{MaxItems: 20, MaxPreview: 5},
		},
		Events: EventsConfig{Topic: "creative-radar.search.events"},
	}
}

func (c *AppConfig) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Addr = ":" + v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Storage.MongoURI = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate 는 잘못된 설계 상수를 기동 시점에 거부한다.
func (c AppConfig) Validate() error {
	if c.Search.ProviderTimeout <= 0 {
		return fmt.Errorf("search.provider_timeout must be positive")
	}
	if c.Search.ScoreBatchSize <= 0 {
		return fmt.Errorf("search.score_batch_size must be positive")
	}
	if c.Search.ScoreParallelism < 0 {
		return fmt.Errorf("search.score_parallelism cannot be negative")
	}
	switch c.Storage.Driver {
	case "sqlite", "mongo":
	default:
		return fmt.Errorf("unsupported storage driver: %s", c.Storage.Driver)
	}
	return nil
}

// GetSecrets 는 현재 프로세스 환경변수에서 자격 증명을 읽는다.
func GetSecrets() Secrets {
	return Secrets{
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		YouTubeAPIKey:     os.Getenv("YOUTUBE_API_KEY"),
		ApifyToken:        os.Getenv("APIFY_TOKEN"),
		VimeoClientID:     os.Getenv("VIMEO_CLIENT_ID"),
		VimeoClientSecret: os.Getenv("VIMEO_CLIENT_SECRET"),
		VimeoAccessToken:  os.Getenv("VIMEO_ACCESS_TOKEN"),
		SearchAPIKey:      os.Getenv("SEARCHAPI_KEY"),
		KafkaBrokers:      os.Getenv("KAFKA_BOOTSTRAP_SERVERS"),
	}
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return cwd
}
