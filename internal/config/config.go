package config

import (
	"os"
	"strconv"
)

type Config struct {
	ListenAddr     string
	SampleRate     int
	UnitAmplitude  float64
	MaxTones       int
	MaxRenderSec   float64
	OpusFrameMs    int
	LogDevelopment bool
}

func Load() *Config {
	return &Config{
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		SampleRate:     getEnvInt("SAMPLE_RATE", 16000),
		UnitAmplitude:  getEnvFloat("UNIT_AMPLITUDE", 0.2),
		MaxTones:       getEnvInt("MAX_TONES", 256),
		MaxRenderSec:   getEnvFloat("MAX_RENDER_SEC", 60),
		OpusFrameMs:    getEnvInt("OPUS_FRAME_MS", 20),
		LogDevelopment: getEnvBool("LOG_DEVELOPMENT", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return fallback
}
