package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Бэкенды хранилища сохранений
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config содержит конфигурацию приложения
type Config struct {
	SaveBackend string // Бэкенд сохранений: memory, file, postgres, redis
	SaveFile    string // Путь к файлу сохранений (для file)
	DatabaseURI string // URI подключения к БД (для postgres)
	RedisAddr   string // Адрес Redis (для redis)
	RedisDB     int    // Номер базы Redis
	LogLevel    string // Уровень логирования

	TickInterval time.Duration // Период игрового тика

	// Длительности фаз дня в реальном времени
	NightDuration  time.Duration
	PrepDuration   time.Duration
	OpenDuration   time.Duration
	ClosedDuration time.Duration

	// Экономика
	ClothPrice        int
	ThreadPrice       int
	StartingBalance   int
	FlatPerItemPayout int // 0 отключает поштучную выплату

	// Клиенты
	SpawnInterval    time.Duration
	CustomerPatience time.Duration
	MaxCustomers     int

	TypesPerSlot int // Размер каталога одежды в каждом слоте
}

// Флаги регистрируются один раз на процесс: Load может вызываться
// повторно (например, в тестах), повторная регистрация недопустима
var (
	flagBackend  = flag.String("b", BackendFile, "save backend: memory, file, postgres, redis")
	flagSaveFile = flag.String("f", "mmdress-save.json", "path to save file")
	flagDBURI    = flag.String("d", "", "database URI")
	flagRedis    = flag.String("r", "", "redis address")
)

// Load загружает конфигурацию из переменных окружения и флагов
// Приоритет: env переменные > флаги > дефолтные значения
func Load() (*Config, error) {
	cfg := &Config{
		SaveBackend:      BackendFile,
		LogLevel:         "info",
		TickInterval:     100 * time.Millisecond,
		NightDuration:    30 * time.Second,
		PrepDuration:     90 * time.Second,
		OpenDuration:     3 * time.Minute,
		ClosedDuration:   30 * time.Second,
		ClothPrice:       10,
		ThreadPrice:      5,
		StartingBalance:  200,
		SpawnInterval:    15 * time.Second,
		CustomerPatience: 45 * time.Second,
		MaxCustomers:     3,
		TypesPerSlot:     5,
	}

	if !flag.Parsed() {
		flag.Parse()
	}
	cfg.SaveBackend = *flagBackend
	cfg.SaveFile = *flagSaveFile
	cfg.DatabaseURI = *flagDBURI
	cfg.RedisAddr = *flagRedis

	// Переменные окружения имеют приоритет над флагами
	if envBackend, ok := os.LookupEnv("SAVE_BACKEND"); ok {
		cfg.SaveBackend = envBackend
	}

	if envSaveFile, ok := os.LookupEnv("SAVE_FILE"); ok {
		cfg.SaveFile = envSaveFile
	}

	if envDBURI, ok := os.LookupEnv("DATABASE_URI"); ok {
		cfg.DatabaseURI = envDBURI
	}

	if envRedisAddr, ok := os.LookupEnv("REDIS_ADDR"); ok {
		cfg.RedisAddr = envRedisAddr
	}

	if envRedisDB, ok := os.LookupEnv("REDIS_DB"); ok {
		if db, err := strconv.Atoi(envRedisDB); err == nil && db >= 0 {
			cfg.RedisDB = db
		}
	}

	// Уровень логирования
	if envLogLevel, ok := os.LookupEnv("LOG_LEVEL"); ok {
		cfg.LogLevel = envLogLevel
	}

	// Темп игры
	if envTick, ok := os.LookupEnv("TICK_INTERVAL"); ok {
		if interval, err := time.ParseDuration(envTick); err == nil && interval > 0 {
			cfg.TickInterval = interval
		}
	}

	loadDuration("NIGHT_DURATION", &cfg.NightDuration)
	loadDuration("PREP_DURATION", &cfg.PrepDuration)
	loadDuration("OPEN_DURATION", &cfg.OpenDuration)
	loadDuration("CLOSED_DURATION", &cfg.ClosedDuration)
	loadDuration("SPAWN_INTERVAL", &cfg.SpawnInterval)
	loadDuration("CUSTOMER_PATIENCE", &cfg.CustomerPatience)

	loadInt("CLOTH_PRICE", &cfg.ClothPrice)
	loadInt("THREAD_PRICE", &cfg.ThreadPrice)
	loadInt("STARTING_BALANCE", &cfg.StartingBalance)
	loadInt("FLAT_PER_ITEM_PAYOUT", &cfg.FlatPerItemPayout)
	loadInt("MAX_CUSTOMERS", &cfg.MaxCustomers)
	loadInt("TYPES_PER_SLOT", &cfg.TypesPerSlot)

	// Валидация обязательных параметров выбранного бэкенда
	switch cfg.SaveBackend {
	case BackendMemory:
	case BackendFile:
		if cfg.SaveFile == "" {
			return nil, fmt.Errorf("save file path is required (use -f flag or SAVE_FILE env)")
		}
	case BackendPostgres:
		if cfg.DatabaseURI == "" {
			return nil, fmt.Errorf("database URI is required (use -d flag or DATABASE_URI env)")
		}
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis address is required (use -r flag or REDIS_ADDR env)")
		}
	default:
		return nil, fmt.Errorf("unknown save backend %q", cfg.SaveBackend)
	}

	if cfg.TypesPerSlot <= 0 {
		return nil, fmt.Errorf("types per slot must be positive, got %d", cfg.TypesPerSlot)
	}

	return cfg, nil
}

// loadDuration читает длительность из env, игнорируя невалидные значения
func loadDuration(key string, dst *time.Duration) {
	if raw, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			*dst = d
		}
	}
}

// loadInt читает неотрицательное целое из env, игнорируя невалидные значения
func loadInt(key string, dst *int) {
	if raw, ok := os.LookupEnv(key); ok {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			*dst = v
		}
	}
}
