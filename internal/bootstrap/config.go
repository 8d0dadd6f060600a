package bootstrap

import (
	"os"
	"strconv"
)

type Config struct {
	ServerAddr string
	LogLevel   string

	SidecarToken string

	EncoderPath  string
	DecoderPath  string
	JoinerPath   string
	TokensPath   string
	NumThreads   int
	SampleRate   int
	FeatureDim   int
	ModelingUnit string
	BpeVocab     string

	// Empty values disable the optional subsystems.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DatabaseDSN   string
}

func LoadConfig() *Config {
	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8100"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		SidecarToken: getEnv("SIDECAR_TOKEN", ""),

		EncoderPath:  getEnv("ASR_ENCODER", "models/encoder.onnx"),
		DecoderPath:  getEnv("ASR_DECODER", "models/decoder.onnx"),
		JoinerPath:   getEnv("ASR_JOINER", "models/joiner.onnx"),
		TokensPath:   getEnv("ASR_TOKENS", "models/tokens.txt"),
		NumThreads:   getEnvInt("ASR_NUM_THREADS", 4),
		SampleRate:   getEnvInt("ASR_SAMPLE_RATE", 16000),
		FeatureDim:   getEnvInt("ASR_FEATURE_DIM", 80),
		ModelingUnit: getEnv("ASR_MODELING_UNIT", "bpe"),
		BpeVocab:     getEnv("ASR_BPE_VOCAB", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		DatabaseDSN:   getEnv("DATABASE_DSN", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
