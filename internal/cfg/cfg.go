package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jimlawless/whereami"
	"github.com/synapse-net/go-backend/pkg/e"
	"github.com/synapse-net/go-backend/pkg/logger"
)

type Config struct {
	Http      *HTTPConfig
	Db        *PGDBCfg
	Qdrant    *QdrantCfg
	Redis     *RedisCfg
	Kafka     *KafkaCfg
	Embedding *EmbeddingCfg
	Impact    *ImpactCfg
	Spatial   *SpatialCfg
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PGDBCfg struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type QdrantCfg struct {
	Port           int
	Host           string
	ApiKey         string
	CollectionName string // коллекция goal-векторов
	UseTLS         bool
	VectorSize     uint64
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	ProfileTTL  time.Duration
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
}

// EmbeddingCfg описывает провайдера эмбеддингов.
// Provider: "local" — OpenAI-совместимый локальный сервис (BaseURL обязателен),
// "openai" — внешний API. Размерность фиксируется на весь деплой.
type EmbeddingCfg struct {
	Provider   string
	BaseURL    string
	APIKey     string
	Model      string
	Dimension  int
	Timeout    time.Duration
	MaxRetries int
}

// ImpactCfg описывает классификатор обратной связи.
// Classifier: "rule" — детерминированные правила, "llm" — внешняя модель.
type ImpactCfg struct {
	Classifier string
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
}

// SpatialCfg — параметры H3-индексации. Resolution фиксируется на весь деплой.
type SpatialCfg struct {
	Resolution   int
	DefaultRings int
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	db, err := loadPGDBCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	qdrant, err := loadQdrantCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	embedding, err := loadEmbeddingCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	impact, err := loadImpactCfg(embedding)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	spatial, err := loadSpatialCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:      http,
		Db:        db,
		Qdrant:    qdrant,
		Redis:     redis,
		Kafka:     kafka,
		Embedding: embedding,
		Impact:    impact,
		Spatial:   spatial,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         getEnvOrDefault("HTTP_PORT", defaultPort),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost    = "localhost"
		defaultPort    = "5432"
		defaultSSLMode = "disable"
	)

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	return &PGDBCfg{
		Host:     getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:     getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:     user,
		Password: password,
		DBName:   dbName,
		SSLMode:  getEnvOrDefault("SSL_MODE", defaultSSLMode),
	}, nil
}

func loadQdrantCfg(log logger.Logger) (*QdrantCfg, error) {
	const (
		defaultQdrantGRPCPort = "6334"
		defaultUseTLS         = false
		defaultVectorSize     = "384"
	)

	strPort := getEnvOrDefault("QDRANT_GRPC_PORT", defaultQdrantGRPCPort)
	port, err := strconv.Atoi(strPort)
	if err != nil {
		log.Errorf(err, "invalid QDRANT_GRPC_PORT")
		return nil, err
	}

	useTLS, err := strconv.ParseBool(getEnvOrDefault("QDRANT_USE_TLS", strconv.FormatBool(defaultUseTLS)))
	if err != nil {
		log.Errorf(err, "invalid QDRANT_USE_TLS")
		return nil, err
	}

	strVectorSize := getEnvOrDefault("VECTOR_SIZE", defaultVectorSize)
	vectorSize, err := strconv.ParseUint(strVectorSize, 10, 64)
	if err != nil {
		log.Errorf(err, "invalid VECTOR_SIZE")
		return nil, err
	}

	return &QdrantCfg{
		Host:           getEnv("QDRANT_HOST"),
		Port:           port,
		ApiKey:         getEnv("QDRANT__SERVICE__API_KEY"),
		CollectionName: getEnvOrDefault("COLLECTION_NAME", "goal_vectors"),
		UseTLS:         useTLS,
		VectorSize:     vectorSize,
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultProfileTTL   = 3 * time.Minute
	)

	dbStr := getEnvOrDefault("REDIS_DB_ID", strconv.Itoa(defaultDB))
	db, err := strconv.Atoi(dbStr)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetriesStr := getEnvOrDefault("MAX_RETRIES", strconv.Itoa(defaultMaxRetries))
	maxRetries, err := strconv.Atoi(maxRetriesStr)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	profileTTL, err := parseDurationEnv("PROFILE_TTL", defaultProfileTTL)
	if err != nil {
		log.Errorf(err, "invalid PROFILE_TTL")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        getEnvOrDefault("REDIS_ADDR", defaultAddr),
		Password:    getEnv("REDIS_PASSWORD"),
		User:        getEnv("REDIS_USER"),
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		ProfileTTL:  profileTTL,
	}, nil
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
	)

	brokerStr := os.Getenv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, fmt.Errorf("KAFKA_BROKERS environment variable is required")
	}
	brokers := strings.Split(brokerStr, ",")

	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		return nil, fmt.Errorf("KAFKA_TOPIC environment variable is required")
	}

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	return &KafkaCfg{
		Brokers:           brokers,
		Topic:             topic,
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
	}, nil
}

func loadEmbeddingCfg(log logger.Logger) (*EmbeddingCfg, error) {
	const (
		defaultProvider  = "local"
		defaultLocalURL  = "http://embedding-service:8000/v1"
		defaultModel     = "BAAI/bge-small-en-v1.5"
		defaultDimension = "384"
		defaultTimeout   = 15 * time.Second
		defaultRetries   = 3
	)

	provider := getEnvOrDefault("EMBEDDING_PROVIDER", defaultProvider)
	if provider != "local" && provider != "openai" {
		err := fmt.Errorf("EMBEDDING_PROVIDER must be 'local' or 'openai', got %q", provider)
		log.Errorf(err, "invalid EMBEDDING_PROVIDER")
		return nil, err
	}

	apiKey := getEnv("OPENAI_API_KEY")
	if provider == "openai" && apiKey == "" {
		err := fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		log.Errorf(err, "missing OPENAI_API_KEY")
		return nil, err
	}

	dimension, err := parseIntEnv("EMBEDDING_DIMENSION", 0)
	if err != nil {
		return nil, e.Wrap("EMBEDDING_DIMENSION", err)
	}
	if dimension == 0 {
		dimension, _ = strconv.Atoi(defaultDimension)
	}

	timeout, err := parseDurationEnv("EMBEDDING_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid EMBEDDING_TIMEOUT")
		return nil, err
	}

	maxRetries, err := parseIntEnv("EMBEDDING_MAX_RETRIES", defaultRetries)
	if err != nil {
		return nil, e.Wrap("EMBEDDING_MAX_RETRIES", err)
	}

	baseURL := getEnv("EMBEDDING_BASE_URL")
	if provider == "local" && baseURL == "" {
		baseURL = defaultLocalURL
	}

	model := getEnvOrDefault("EMBEDDING_MODEL", defaultModel)
	if provider == "openai" && getEnv("EMBEDDING_MODEL") == "" {
		model = "text-embedding-3-small"
	}

	return &EmbeddingCfg{
		Provider:   provider,
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Model:      model,
		Dimension:  dimension,
		Timeout:    timeout,
		MaxRetries: maxRetries,
	}, nil
}

func loadImpactCfg(embedding *EmbeddingCfg) (*ImpactCfg, error) {
	const (
		defaultClassifier = "rule"
		defaultModel      = "gpt-3.5-turbo"
		defaultTimeout    = 20 * time.Second
	)

	classifier := getEnvOrDefault("IMPACT_CLASSIFIER", defaultClassifier)
	if classifier != "rule" && classifier != "llm" {
		return nil, fmt.Errorf("IMPACT_CLASSIFIER must be 'rule' or 'llm', got %q", classifier)
	}

	if classifier == "llm" && embedding.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required for the llm classifier")
	}

	timeout, err := parseDurationEnv("IMPACT_TIMEOUT", defaultTimeout)
	if err != nil {
		return nil, e.Wrap("IMPACT_TIMEOUT", err)
	}

	return &ImpactCfg{
		Classifier: classifier,
		APIKey:     embedding.APIKey,
		BaseURL:    getEnv("IMPACT_BASE_URL"),
		Model:      getEnvOrDefault("IMPACT_MODEL", defaultModel),
		Timeout:    timeout,
	}, nil
}

func loadSpatialCfg() (*SpatialCfg, error) {
	const (
		defaultResolution = 8 // ~0.46 км длина ребра ячейки
		defaultRings      = 2
	)

	resolution, err := parseIntEnv("H3_RESOLUTION", defaultResolution)
	if err != nil {
		return nil, e.Wrap("H3_RESOLUTION", err)
	}
	if resolution < 0 || resolution > 15 {
		return nil, fmt.Errorf("H3_RESOLUTION must be in [0,15], got %d", resolution)
	}

	rings, err := parseIntEnv("MATCH_RINGS", defaultRings)
	if err != nil {
		return nil, e.Wrap("MATCH_RINGS", err)
	}

	return &SpatialCfg{
		Resolution:   resolution,
		DefaultRings: rings,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
