package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"SafeSphere/internal/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var ErrCacheMiss = errors.New("cache miss")

const (
	recentCommandsTTL    = 7 * 24 * time.Hour
	preferredLanguageTTL = 90 * 24 * time.Hour
)

type IRedis interface {
	PushRecentCommand(ctx context.Context, userID string, cmd entity.VoiceCommand, limit int) error
	RecentCommands(ctx context.Context, userID string, limit int) ([]entity.VoiceCommand, error)
	SetPreferredLanguage(ctx context.Context, userID string, code string) error
	GetPreferredLanguage(ctx context.Context, userID string) (string, error)
	Close() error
}

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func recentCommandsKey(userID string) string {
	return "voice:recent:" + userID
}

func preferredLanguageKey(userID string) string {
	return "voice:language:" + userID
}

// PushRecentCommand keeps the newest limit commands of a user, newest first.
func (r *redisClient) PushRecentCommand(ctx context.Context, userID string, cmd entity.VoiceCommand, limit int) error {
	payload, err := jsoniter.Marshal(cmd)
	if err != nil {
		return err
	}

	key := recentCommandsKey(userID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, payload)
		pipe.LTrim(ctx, key, 0, int64(limit-1))
		pipe.Expire(ctx, key, recentCommandsTTL)
		return nil
	})
	if err != nil {
		logrus.Error(fmt.Sprintf("Error pushing recent command for user %s: %v", userID, err))
		return err
	}
	return nil
}

func (r *redisClient) RecentCommands(ctx context.Context, userID string, limit int) ([]entity.VoiceCommand, error) {
	values, err := r.client.LRange(ctx, recentCommandsKey(userID), 0, int64(limit-1)).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error reading recent commands for user %s: %v", userID, err))
		return nil, err
	}
	return decodeRecentCommands(userID, values)
}

// decodeRecentCommands skips malformed entries and reports a miss when none
// survive, so callers fall back to the database.
func decodeRecentCommands(userID string, values []string) ([]entity.VoiceCommand, error) {
	commands := make([]entity.VoiceCommand, 0, len(values))
	for _, v := range values {
		var cmd entity.VoiceCommand
		if err := jsoniter.UnmarshalFromString(v, &cmd); err != nil {
			logrus.Warn(fmt.Sprintf("Skipping malformed recent command for user %s: %v", userID, err))
			continue
		}
		commands = append(commands, cmd)
	}
	if len(commands) == 0 {
		return nil, ErrCacheMiss
	}
	return commands, nil
}

func (r *redisClient) SetPreferredLanguage(ctx context.Context, userID string, code string) error {
	if err := r.client.Set(ctx, preferredLanguageKey(userID), code, preferredLanguageTTL).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error setting preferred language for user %s: %v", userID, err))
		return err
	}
	return nil
}

func (r *redisClient) GetPreferredLanguage(ctx context.Context, userID string) (string, error) {
	val, err := r.client.Get(ctx, preferredLanguageKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting preferred language for user %s: %v", userID, err))
		return "", err
	}
	return val, nil
}

func (r *redisClient) Close() error {
	return r.client.Close()
}
