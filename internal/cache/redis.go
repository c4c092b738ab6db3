package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"

	"github.com/scriptura/studyref/internal/model"
)

const cacheTTL = time.Hour

func ownerStudiesKey(ownerID string) string {
	return "owner:" + ownerID + ":studies"
}

func ownerTagsKey(ownerID string) string {
	return "owner:" + ownerID + ":tags"
}

var _ StudyCache = (*RedisStudyCache)(nil)

type RedisStudyCache struct {
	client *redis.Client
}

func NewRedisStudyCache(addr string) *RedisStudyCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // No password set
		DB:       0,  // Use default DB
		Protocol: 2,  // Connection protocol
	})

	return &RedisStudyCache{client: client}
}

func (r *RedisStudyCache) GetStudies(ctx context.Context, ownerID uuid.UUID) ([]*model.Study, error) {
	res := r.client.Get(ctx, ownerStudiesKey(ownerID.String()))
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return nil, nil
		}
		return nil, res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return nil, err
	}

	var studies []*model.Study
	if err := json.Unmarshal(buf, &studies); err != nil {
		return nil, err
	}

	return studies, nil
}

func (r *RedisStudyCache) SetStudies(ctx context.Context, ownerID uuid.UUID, studies []*model.Study) error {
	marshal, err := json.Marshal(studies)
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		if err := p.Set(ctx, ownerStudiesKey(ownerID.String()), marshal, cacheTTL).Err(); err != nil {
			return err
		}
		return nil
	})

	return err
}

func (r *RedisStudyCache) GetTags(ctx context.Context, ownerID uuid.UUID) ([]*model.Tag, error) {
	res := r.client.Get(ctx, ownerTagsKey(ownerID.String()))
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return nil, nil
		}
		return nil, res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return nil, err
	}

	var tags []*model.Tag
	if err := json.Unmarshal(buf, &tags); err != nil {
		return nil, err
	}

	return tags, nil
}

func (r *RedisStudyCache) SetTags(ctx context.Context, ownerID uuid.UUID, tags []*model.Tag) error {
	marshal, err := json.Marshal(tags)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, ownerTagsKey(ownerID.String()), marshal, cacheTTL).Err()
}

func (r *RedisStudyCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	return r.client.Del(ctx,
		ownerStudiesKey(ownerID.String()),
		ownerTagsKey(ownerID.String()),
	).Err()
}
