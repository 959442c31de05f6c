package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `default:"8080" envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `default:"villa"  envconfig:"NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		Currency string `default:"KES"    envconfig:"CURRENCY"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		Admin struct {
			Secret string `envconfig:"SECRET"`
		} `envconfig:"ADMIN"`
	} `envconfig:"APP"`

	// Nightly rates per season, in whole units of App.Currency. A zero
	// christmas rate falls back to the low season rate. MaxNights caps the
	// length of a quoted or booked stay; zero disables the cap.
	Pricing struct {
		Low       float64 `default:"12000" envconfig:"LOW"`
		Mid       float64 `default:"14500" envconfig:"MID"`
		Peak      float64 `default:"22000" envconfig:"PEAK"`
		Christmas float64 `default:"25000" envconfig:"CHRISTMAS"`
		MaxNights int     `default:"365"   envconfig:"MAX_NIGHTS"`
	} `envconfig:"PRICING"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `default:"300" envconfig:"TTL"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret    string `envconfig:"ACCESS_SECRET"`
		AccessExpireMin int    `default:"120" envconfig:"ACCESS_EXPIRE_MIN"`
	} `envconfig:"JWT"`

	Kafka struct {
		Enable  bool     `envconfig:"ENABLE"`
		Brokers []string `envconfig:"BROKERS"`
		Topic   string   `default:"villa.bookings" envconfig:"TOPIC"`
		SASL    struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
	} `envconfig:"KAFKA"`

	Payment struct {
		TimeoutSeconds int `default:"30" envconfig:"TIMEOUT_SECONDS"`
		Mpesa          struct {
			Env            string `default:"sandbox" envconfig:"ENV"`
			BaseURL        string `envconfig:"BASE_URL"`
			ConsumerKey    string `envconfig:"CONSUMER_KEY"`
			ConsumerSecret string `envconfig:"CONSUMER_SECRET"`
			Shortcode      string `envconfig:"SHORTCODE"`
			Passkey        string `envconfig:"PASSKEY"`
			CallbackURL    string `envconfig:"CALLBACK_URL"`
		} `envconfig:"MPESA"`
		Paystack struct {
			BaseURL     string `default:"https://api.paystack.co" envconfig:"BASE_URL"`
			SecretKey   string `envconfig:"SECRET_KEY"`
			CallbackURL string `envconfig:"CALLBACK_URL"`
		} `envconfig:"PAYSTACK"`
	} `envconfig:"PAYMENT"`

	Mail struct {
		TimeoutSeconds int `default:"30" envconfig:"TIMEOUT_SECONDS"`
		Brevo          struct {
			BaseURL string `default:"https://api.brevo.com/v3" envconfig:"BASE_URL"`
			APIKey  string `envconfig:"API_KEY"`
		} `envconfig:"BREVO"`
		Sender struct {
			Name  string `envconfig:"NAME"`
			Email string `envconfig:"EMAIL"`
		} `envconfig:"SENDER"`
		Operator struct {
			Name    string `envconfig:"NAME"`
			Email   string `envconfig:"EMAIL"`
			CCName  string `envconfig:"CC_NAME"`
			CCEmail string `envconfig:"CC_EMAIL"`
		} `envconfig:"OPERATOR"`
	} `envconfig:"MAIL"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
	}
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
