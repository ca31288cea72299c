package core

import (
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config carries every knob the front-end core needs. It is loaded once in
// main and passed explicitly; packages never reach for ambient state.
type Config struct {
	Env      string // DEV (default), TEST, QA, PROD
	Debug    bool
	TestMode bool
	AppName  string
	Build    string

	// REST backend
	APIBaseURL     string
	RequestTimeout time.Duration

	// local store (the browser localStorage analogue)
	StorePath string

	// reminder window (local time, hours)
	ReminderWindowStart int
	ReminderWindowEnd   int

	// dev stub server
	SecretKey          string
	JWTExpirationDelta time.Duration
	OTPExpirationDelta time.Duration
	DefaultFromEmail   mail.Address
	SendgridAPIKey     string

	// error reporting
	RollbarToken string

	Server struct {
		Host string
		Port string
	}
}

func (c *Config) ServerAddress() string { return c.Server.Host + ":" + c.Server.Port }

// NewConfig loads defaults, an optional config/.env.<env> file and
// ENV-prefixed environment variables, in increasing order of precedence.
func NewConfig() (Config, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("debug", true)
	v.SetDefault("appName", "TrackQ")
	v.SetDefault("build", "dev")
	v.SetDefault("apiBaseURL", "http://localhost:5217")
	v.SetDefault("requestTimeout", 30*time.Second)
	v.SetDefault("storePath", defaultStorePath())
	v.SetDefault("reminderWindowStart", 9)
	v.SetDefault("reminderWindowEnd", 18)
	v.SetDefault("secretKey", "h2(h!x)#*c2(#yg4h^$cegm2emy-poq5-wer)enb$+57=dz&uox")
	v.SetDefault("jwtExpirationDelta", 24*time.Hour)
	v.SetDefault("otpExpirationDelta", 10*time.Minute)
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("sendgridAPIKey", "")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("serverHost", "")
	v.SetDefault("serverPort", "5217")

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return Config{}, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	v.AutomaticEnv()

	from, err := mail.ParseAddress(v.GetString("defaultFromEmail"))
	if err != nil {
		return Config{}, errors.Wrap(err, "parsing defaultFromEmail")
	}

	conf := Config{
		Env:                 env,
		Debug:               v.GetBool("debug"),
		TestMode:            v.GetBool("testMode"),
		AppName:             v.GetString("appName"),
		Build:               v.GetString("build"),
		APIBaseURL:          v.GetString("apiBaseURL"),
		RequestTimeout:      v.GetDuration("requestTimeout"),
		StorePath:           v.GetString("storePath"),
		ReminderWindowStart: v.GetInt("reminderWindowStart"),
		ReminderWindowEnd:   v.GetInt("reminderWindowEnd"),
		SecretKey:           v.GetString("secretKey"),
		JWTExpirationDelta:  v.GetDuration("jwtExpirationDelta"),
		OTPExpirationDelta:  v.GetDuration("otpExpirationDelta"),
		DefaultFromEmail:    *from,
		SendgridAPIKey:      v.GetString("sendgridAPIKey"),
		RollbarToken:        v.GetString("rollbarToken"),
	}
	conf.Server.Host = v.GetString("serverHost")
	conf.Server.Port = v.GetString("serverPort")
	return conf, nil
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "trackq", "store.json")
}
