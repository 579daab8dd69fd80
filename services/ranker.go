package services

import (
	"strconv"

	"github.com/go-redis/redis"
)

const DefaultRankKey = "rank:entry:likes"

// RankScore is one leaderboard position.
type RankScore struct {
	EntryID    uint
	LikesCount int64
}

// Ranker keeps an advisory leaderboard of entry like counts. Scores move
// by deltas so concurrent toggles commute.
type Ranker interface {
	Incr(entryID uint, delta int64) error
	Remove(entryID uint) error
	Top(n int) ([]RankScore, error)
}

// RedisRanker stores the leaderboard in a Redis sorted set.
type RedisRanker struct {
	client *redis.Client
	key    string
}

func NewRedisRanker(client *redis.Client, key string) *RedisRanker {
	if key == "" {
		key = DefaultRankKey
	}
	return &RedisRanker{client: client, key: key}
}

// Incr moves the entry's score by delta and drops members whose score is
// back at exactly zero, in one MULTI/EXEC. A decrement can land before the
// increment it undoes, so negative scores are kept until they return to
// zero; Top never reports them.
func (r *RedisRanker) Incr(entryID uint, delta int64) error {
	member := strconv.FormatUint(uint64(entryID), 10)
	pipe := r.client.TxPipeline()
	pipe.ZIncrBy(r.key, float64(delta), member)
	pipe.ZRemRangeByScore(r.key, "0", "0")
	_, err := pipe.Exec()
	return err
}

func (r *RedisRanker) Remove(entryID uint) error {
	return r.client.ZRem(r.key, strconv.FormatUint(uint64(entryID), 10)).Err()
}

func (r *RedisRanker) Top(n int) ([]RankScore, error) {
	if n <= 0 {
		return []RankScore{}, nil
	}
	zres, err := r.client.ZRevRangeWithScores(r.key, 0, int64(n-1)).Result()
	if err != nil {
		if err == redis.Nil {
			return []RankScore{}, nil
		}
		return nil, err
	}

	out := make([]RankScore, 0, len(zres))
	for _, z := range zres {
		if z.Score <= 0 {
			break
		}
		memberStr, _ := z.Member.(string)
		id, err := strconv.ParseUint(memberStr, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, RankScore{EntryID: uint(id), LikesCount: int64(z.Score)})
	}
	return out, nil
}
