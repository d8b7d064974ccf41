package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config carries everything read from the environment at startup. Vocabularies
// have Riyadh defaults and can be overridden with comma-separated env vars.
type Config struct {
	BotToken  string
	AdminID   int64
	GroupID   int64
	ChannelID int64

	// Geofence: listings must sit inside RadiusKM of the center.
	CenterLat float64
	CenterLon float64
	RadiusKM  float64

	OffTopicKeywords []string
	ExcludedCities   []string

	DatabaseURL string
	RedisURL    string
	Port        string
	CORSOrigin  string
}

var defaultOffTopic = []string{
	"سيارة", "سيارات", "وظيفة", "وظائف", "توظيف", "عملة", "عملات",
	"تسويق شبكي", "يوتيوب", "اشتراك", "car for sale", "job", "crypto",
	"forex", "subscribe",
}

var defaultExcludedCities = []string{
	"جدة", "جده", "الدمام", "مكة", "مكه", "المدينة المنورة", "الخبر",
	"الطائف", "أبها", "تبوك", "jeddah", "dammam", "makkah", "mecca",
	"medina", "khobar", "taif", "abha", "tabuk",
}

func Load() (*Config, error) {
	cfg := &Config{
		BotToken:         os.Getenv("BOT_TOKEN"),
		CenterLat:        24.7136,
		CenterLon:        46.6753,
		RadiusKM:         70,
		OffTopicKeywords: defaultOffTopic,
		ExcludedCities:   defaultExcludedCities,
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		Port:             os.Getenv("PORT"),
		CORSOrigin:       os.Getenv("CORS_ORIGIN"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	var err error
	if cfg.AdminID, err = envInt64("ADMIN_ID"); err != nil {
		return nil, err
	}
	if cfg.GroupID, err = envInt64("GROUP_ID"); err != nil {
		return nil, err
	}
	if cfg.ChannelID, err = envInt64("CHANNEL_ID"); err != nil {
		return nil, err
	}

	if v := os.Getenv("REGION_CENTER"); v != "" {
		parts := strings.SplitN(v, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("REGION_CENTER must be \"lat,lon\"")
		}
		if cfg.CenterLat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
			return nil, fmt.Errorf("invalid REGION_CENTER latitude: %v", err)
		}
		if cfg.CenterLon, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
			return nil, fmt.Errorf("invalid REGION_CENTER longitude: %v", err)
		}
	}
	if v := os.Getenv("REGION_RADIUS_KM"); v != "" {
		if cfg.RadiusKM, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("invalid REGION_RADIUS_KM: %v", err)
		}
	}

	if v := envList("OFFTOPIC_KEYWORDS"); v != nil {
		cfg.OffTopicKeywords = v
	}
	if v := envList("EXCLUDED_CITIES"); v != nil {
		cfg.ExcludedCities = v
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	return cfg, nil
}

func envInt64(name string) (int64, error) {
	v := os.Getenv(name)
	if v == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", name, err)
	}
	return id, nil
}

func envList(name string) []string {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
