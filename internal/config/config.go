package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	Env                string
	MongoURI           string
	MongoDB            string
	JWTSecret          string
	TokenTTLSeconds    int
	RedisAddr          string
	RabbitURL          string
	GithubToken        string
	GithubCacheSeconds int
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:      getenv("APP_PORT", "8080"),
		Env:       getenv("APP_ENV", "dev"),
		MongoURI:  getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getenv("MONGO_DB", "devlink"),
		JWTSecret: getenv("JWT_SECRET", "default_secret_key"),
		// the original issued tokens with expiresIn=360000, which jsonwebtoken
		// reads as seconds; keep the same default but let the env override it
		TokenTTLSeconds:    atoi(getenv("TOKEN_TTL_SECONDS", "360000")),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RabbitURL:          os.Getenv("RABBIT_URL"),
		GithubToken:        os.Getenv("GITHUB_TOKEN"),
		GithubCacheSeconds: atoi(getenv("GITHUB_CACHE_SECONDS", "300")),
	}
}

func atoi(s string) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return 0
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
