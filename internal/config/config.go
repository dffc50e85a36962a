package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션 식별자입니다. 로그 파일명과 기본 설정 파일명에 사용됩니다.
	AppName = "job-dispatcher"

	// DefaultFilename 실행 인자로 경로가 주어지지 않았을 때 읽는 설정 파일입니다.
	DefaultFilename = AppName + ".json"

	// EnvPrefix 설정을 덮어쓰는 환경 변수의 접두사입니다.
	// 이중 언더스코어(__)는 계층 구분자로 변환됩니다. (DISPATCHER_API__LISTEN_PORT → api.listen_port)
	EnvPrefix = "DISPATCHER_"
)

// 기본값
const (
	DefaultMaxRetries    = 3
	DefaultMinRetryDelay = time.Second
	DefaultMaxRetryDelay = 30 * time.Second

	DefaultEchoDelay = time.Second

	DefaultStatusURL     = "https://status.github.com/api/last-message.json"
	DefaultStatusTimeout = 10 * time.Second

	DefaultScrapeTimeout      = 30 * time.Second
	DefaultScrapeMaxBodyBytes = 10 * 1024 * 1024

	DefaultListenPort         = 2443
	DefaultRequestTimeout     = 60 * time.Second
	DefaultRateLimitPerSecond = 20
	DefaultRateLimitBurst     = 40

	DefaultLogDir        = "logs"
	DefaultLogMaxAge     = 30
	DefaultLogMaxSizeMB  = 50
	DefaultLogMaxBackups = 20
)

// AppConfig 애플리케이션 설정의 최상위 구조체입니다.
type AppConfig struct {
	Debug     bool             `json:"debug"`
	Log       LogConfig        `json:"log"`
	HTTPRetry HTTPRetryConfig  `json:"http_retry"`
	Jobs      JobsConfig       `json:"jobs"`
	API       APIConfig        `json:"api"`
	Notifier  NotifierConfig   `json:"notifier"`
	Schedules []ScheduleConfig `json:"schedules" validate:"omitempty,unique=ID,dive"`
}

// LogConfig 로그 파일 출력 설정입니다.
type LogConfig struct {
	Dir        string `json:"dir" validate:"required"`
	Level      string `json:"level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	MaxAge     int    `json:"max_age" validate:"min=0"`
	MaxSizeMB  int    `json:"max_size_mb" validate:"min=1"`
	MaxBackups int    `json:"max_backups" validate:"min=0"`
	Console    bool   `json:"console"`
}

// HTTPRetryConfig 원격 작업이 사용하는 HTTP 요청의 재시도 정책입니다.
type HTTPRetryConfig struct {
	MaxRetries    int           `json:"max_retries" validate:"min=0,max=10"`
	MinRetryDelay time.Duration `json:"min_retry_delay" validate:"min=0"`
	MaxRetryDelay time.Duration `json:"max_retry_delay" validate:"gtefield=MinRetryDelay"`
}

// JobsConfig 작업 종류별 기본 동작을 정의합니다.
type JobsConfig struct {
	Echo         EchoJobConfig         `json:"echo"`
	RemoteStatus RemoteStatusJobConfig `json:"remote_status"`
	Scrape       ScrapeJobConfig       `json:"scrape"`
}

type EchoJobConfig struct {
	DefaultDelay time.Duration `json:"default_delay" validate:"min=0"`
}

type RemoteStatusJobConfig struct {
	URL       string        `json:"url" validate:"required,remote_url"`
	Timeout   time.Duration `json:"timeout" validate:"gt=0"`
	RateLimit float64       `json:"rate_limit" validate:"min=0"`
}

type ScrapeJobConfig struct {
	Timeout      time.Duration `json:"timeout" validate:"gt=0"`
	MaxBodyBytes int64         `json:"max_body_bytes" validate:"gt=0"`
}

// APIConfig 디스패처를 외부에 노출하는 HTTP API 서버 설정입니다.
type APIConfig struct {
	ListenPort         int           `json:"listen_port" validate:"min=1,max=65535"`
	RequestTimeout     time.Duration `json:"request_timeout" validate:"gt=0"`
	AllowOrigins       []string      `json:"allow_origins" validate:"required,min=1,dive,cors_origin"`
	RateLimitPerSecond float64       `json:"rate_limit_per_second" validate:"gt=0"`
	RateLimitBurst     int           `json:"rate_limit_burst" validate:"gt=0"`
	TLSServer          bool          `json:"tls_server"`
	TLSCertFile        string        `json:"tls_cert_file" validate:"required_if=TLSServer true,omitempty,file"`
	TLSKeyFile         string        `json:"tls_key_file" validate:"required_if=TLSServer true,omitempty,file"`
}

// NotifierConfig 예약 실행 결과를 보낼 알림 채널 설정입니다. 비어 있다면 알림을 보내지 않습니다.
type NotifierConfig struct {
	Telegram TelegramConfig `json:"telegram"`
}

type TelegramConfig struct {
	BotToken string `json:"bot_token" validate:"omitempty,telegram_bot_token"`
	ChatID   int64  `json:"chat_id" validate:"required_with=BotToken"`
}

// Enabled 봇 토큰이 설정되어 있는지 여부를 반환합니다.
func (c TelegramConfig) Enabled() bool {
	return c.BotToken != ""
}

// ScheduleConfig cron 표현식에 따라 주기적으로 실행할 작업 묶음입니다.
type ScheduleConfig struct {
	ID       string      `json:"id" validate:"required"`
	TimeSpec string      `json:"time_spec" validate:"required,cron_spec"`
	Jobs     []JobConfig `json:"jobs" validate:"required,min=1,dive"`
	Notify   bool        `json:"notify"`
}

// JobConfig 설정 파일에 기술된 작업 정의입니다. 형식은 {"type": "echo", "args": ["hello", 1000]} 입니다.
type JobConfig struct {
	Type string `json:"type" validate:"required"`
	Args []any  `json:"args"`
}

// validate 구조체 태그 검증 뒤, 태그로 표현할 수 없는 상호 참조 규칙을 검사합니다.
func (c *AppConfig) validate() error {
	if err := checkStruct(c, "설정"); err != nil {
		return err
	}

	if len(c.API.AllowOrigins) > 1 {
		for _, origin := range c.API.AllowOrigins {
			if strings.TrimSpace(origin) == "*" {
				return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다")
			}
		}
	}

	for _, s := range c.Schedules {
		if s.Notify && !c.Notifier.Telegram.Enabled() {
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("Schedule['%s']이 알림을 요청했지만 알림 채널(notifier.telegram)이 설정되지 않았습니다", s.ID))
		}
	}

	return nil
}

// VerifyRecommendations 오류는 아니지만 운영상 주의가 필요한 설정에 대한 경고 메시지를 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.API.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 서버 구동 시 관리자 권한이 필요할 수 있습니다", c.API.ListenPort))
	}
	if len(c.API.AllowOrigins) == 1 && c.API.AllowOrigins[0] == "*" {
		warnings = append(warnings, "CORS가 모든 출처(*)를 허용하도록 설정되었습니다")
	}

	return warnings
}

func newDefaultConfig() AppConfig {
	return AppConfig{
		Debug: true,
		Log: LogConfig{
			Dir:        DefaultLogDir,
			Level:      "info",
			MaxAge:     DefaultLogMaxAge,
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
			Console:    true,
		},
		HTTPRetry: HTTPRetryConfig{
			MaxRetries:    DefaultMaxRetries,
			MinRetryDelay: DefaultMinRetryDelay,
			MaxRetryDelay: DefaultMaxRetryDelay,
		},
		Jobs: JobsConfig{
			Echo: EchoJobConfig{DefaultDelay: DefaultEchoDelay},
			RemoteStatus: RemoteStatusJobConfig{
				URL:     DefaultStatusURL,
				Timeout: DefaultStatusTimeout,
			},
			Scrape: ScrapeJobConfig{
				Timeout:      DefaultScrapeTimeout,
				MaxBodyBytes: DefaultScrapeMaxBodyBytes,
			},
		},
		API: APIConfig{
			ListenPort:         DefaultListenPort,
			RequestTimeout:     DefaultRequestTimeout,
			AllowOrigins:       []string{"*"},
			RateLimitPerSecond: DefaultRateLimitPerSecond,
			RateLimitBurst:     DefaultRateLimitBurst,
		},
	}
}

// normalizeEnvKey DISPATCHER_HTTP_RETRY__MAX_RETRIES → http_retry.max_retries
func normalizeEnvKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

// Load 기본 설정 파일을 읽어 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 기본값, 설정 파일, 환경 변수 순으로 값을 덮어쓴 뒤 검증된 설정을 반환합니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(newDefaultConfig(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
		}
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", normalizeEnvKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	var cfg AppConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			ErrorUnused:      true,
			WeaklyTypedInput: true,
			Result:           &cfg,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	if err := cfg.validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &cfg, nil
}
