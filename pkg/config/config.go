package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Modos de origen de datos del catálogo y de envío de facturas.
const (
	ModeRemote    = "remote"
	ModeFixture   = "fixture"
	ModeSimulated = "simulated"
)

// Config agrupa la configuración del portal (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Reciboo RecibooConfig
	Cache   CacheConfig
	Storage StorageConfig
	TUI     TUIConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	Locale   string // BCP 47, usado para formatear montos (ej: es-MX)
}

// HTTPConfig configuración del servidor HTTP local del portal.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RecibooConfig configuración del backend REST de Reciboo.
type RecibooConfig struct {
	BaseURL    string
	Timeout    time.Duration
	Catalog    string // remote | fixture
	SubmitMode string // remote | simulated
	SubmitPath string
}

// CacheConfig ventanas de frescura de los accesores remotos.
type CacheConfig struct {
	ProvidersTTL      time.Duration
	PurchaseOrdersTTL time.Duration
	GoodsReceiptsTTL  time.Duration
}

// StorageConfig ubicación del almacenamiento local de sesión.
// Path vacío = directorio de configuración del usuario.
type StorageConfig struct {
	Path string
}

// TUIConfig opciones de la interfaz de terminal.
type TUIConfig struct {
	LogFile  string // los logs no pueden ir a la terminal mientras corre la TUI
	AcuseDir string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, RECIBOO_API_URL, HTTP_PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "reciboo-portal"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			Locale:   getString(v, "CURRENCY_LOCALE", "es-MX"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 5173),
		},
		Reciboo: RecibooConfig{
			BaseURL:    strings.TrimRight(getString(v, "RECIBOO_API_URL", "http://13.216.21.166/reciboo-api"), "/"),
			Timeout:    time.Duration(getInt(v, "RECIBOO_TIMEOUT_SECONDS", 30)) * time.Second,
			Catalog:    getString(v, "RECIBOO_CATALOG", ModeRemote),
			SubmitMode: getString(v, "RECIBOO_SUBMIT_MODE", ModeRemote),
			SubmitPath: getString(v, "RECIBOO_SUBMIT_PATH", "/factura/orden-compra"),
		},
		Cache: CacheConfig{
			ProvidersTTL:      getDuration(v, "CACHE_PROVIDERS_TTL", 3*time.Minute),
			PurchaseOrdersTTL: getDuration(v, "CACHE_PURCHASE_ORDERS_TTL", 5*time.Minute),
			GoodsReceiptsTTL:  getDuration(v, "CACHE_GOODS_RECEIPTS_TTL", 3*time.Minute),
		},
		Storage: StorageConfig{
			Path: getString(v, "RECIBOO_STORAGE_PATH", ""),
		},
		TUI: TUIConfig{
			LogFile:  getString(v, "TUI_LOG_FILE", "reciboo-tui.log"),
			AcuseDir: getString(v, "TUI_ACUSE_DIR", "."),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Reciboo.BaseURL == "" {
		return fmt.Errorf("config: RECIBOO_API_URL requerido")
	}
	switch c.Reciboo.Catalog {
	case ModeRemote, ModeFixture:
	default:
		return fmt.Errorf("config: RECIBOO_CATALOG inválido %q (remote|fixture)", c.Reciboo.Catalog)
	}
	switch c.Reciboo.SubmitMode {
	case ModeRemote, ModeSimulated:
	default:
		return fmt.Errorf("config: RECIBOO_SUBMIT_MODE inválido %q (remote|simulated)", c.Reciboo.SubmitMode)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
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

// getDuration acepta "5m", "90s" o un número entero de segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}
