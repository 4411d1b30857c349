package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config agrupa la configuración del cliente y del backend de desarrollo
// (lectura vía Viper desde env, flags y opcionalmente archivo).
type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Mock    MockConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// APIConfig configuración del cliente REST.
type APIConfig struct {
	BaseURL string        // ej. http://localhost:8080/api
	Timeout time.Duration // 0 = sin timeout (defaults del cliente HTTP)
}

// SessionConfig persistencia de la sesión local.
type SessionConfig struct {
	File      string // archivo donde se guardan las claves token y user
	Ephemeral bool   // true = sesión solo en memoria
}

// JWTConfig configuración de JWT (solo backend de desarrollo).
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP del backend de desarrollo.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MockConfig datos iniciales del backend de desarrollo.
type MockConfig struct {
	SeedFile string // YAML opcional; vacío = datos embebidos
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Si flags no es nil, los flags definidos tienen prioridad sobre env.
// Nombres esperados: APP_ENV, COMEDOR_API_URL, COMEDOR_SESSION_FILE, JWT_SECRET, etc.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	sessionFile, err := defaultSessionFile()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "comedor"),
			LogLevel: getString(v, "LOG_LEVEL", "warn"),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getString(v, "COMEDOR_API_URL", "http://localhost:8080/api"), "/"),
			Timeout: time.Duration(getInt(v, "HTTP_TIMEOUT_SECONDS", 0)) * time.Second,
		},
		Session: SessionConfig{
			File:      getString(v, "COMEDOR_SESSION_FILE", sessionFile),
			Ephemeral: v.GetBool("COMEDOR_EPHEMERAL"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "comedor"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Mock: MockConfig{
			SeedFile: getString(v, "MOCK_SEED_FILE", ""),
		},
	}

	if cfg.API.Timeout < 0 {
		return nil, fmt.Errorf("config: HTTP_TIMEOUT_SECONDS no puede ser negativo")
	}
	return cfg, nil
}

// flagKeys relaciona cada flag del CLI con su variable de entorno.
var flagKeys = map[string]string{
	"api-url":      "COMEDOR_API_URL",
	"session-file": "COMEDOR_SESSION_FILE",
	"ephemeral":    "COMEDOR_EPHEMERAL",
	"log-level":    "LOG_LEVEL",
	"env":          "APP_ENV",
}

// RegisterFlags define en fs los flags globales que Load sabe interpretar.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("api-url", "", "URL base de la API (ej. http://localhost:8080/api)")
	fs.String("session-file", "", "archivo de sesión local")
	fs.Bool("ephemeral", false, "no persistir la sesión en disco")
	fs.String("log-level", "", "nivel de log: trace, debug, info, warn, error")
	fs.String("env", "", "entorno: development o production")
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("config: bind flag %s: %w", name, err)
		}
	}
	return nil
}

func defaultSessionFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		// Sin HOME (contenedores): directorio de trabajo
		return filepath.Join(".", ".comedor-session.json"), nil
	}
	return filepath.Join(dir, "comedor", "session.json"), nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		if s := v.GetString(key); s != "" {
			return s
		}
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
