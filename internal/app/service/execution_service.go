package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"algoprep/internal/common"
	"algoprep/internal/domain/model"
	"algoprep/internal/platform/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const execResultKeyPrefix = "exec_result:"

// ExecutionService hands code off to the external executor via the Redis
// job queue. Jobs and results are ephemeral; results expire after the
// configured TTL. What "executing" means (sandboxing, limits) is entirely
// the executor's concern.
type ExecutionService struct {
	rdb *redis.Client
}

func NewExecutionService(rdb *redis.Client) *ExecutionService {
	return &ExecutionService{rdb: rdb}
}

type ExecuteRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
	Stdin    string `json:"input"`
}

func (s *ExecutionService) Enqueue(ctx context.Context, req ExecuteRequest) (string, error) {
	if req.Code == "" {
		return "", common.Errorf("no code provided: %w", common.ErrBadRequest)
	}
	if req.Language == "" {
		req.Language = "python"
	}

	job := model.ExecutionJob{
		ID:         uuid.NewString(),
		Language:   req.Language,
		Code:       req.Code,
		Stdin:      req.Stdin,
		EnqueuedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return "", common.Errorf("failed to marshal execution job: %w", err)
	}

	if err := s.rdb.LPush(ctx, config.AppConfig.ExecutionQueueName, payload).Err(); err != nil {
		return "", common.Errorf("failed to push job to Redis queue: %w", err)
	}
	log.Printf("Execution job %s enqueued.", job.ID)
	return job.ID, nil
}

// GetResult fetches the stored result for a job. A job that has not finished
// (or whose result already expired) reports as still queued.
func (s *ExecutionService) GetResult(ctx context.Context, jobID string) (*model.ExecutionResult, error) {
	raw, err := s.rdb.Get(ctx, execResultKeyPrefix+jobID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &model.ExecutionResult{JobID: jobID, Status: model.ExecStatusQueued}, nil
		}
		return nil, common.Errorf("failed to fetch execution result: %w", err)
	}

	var result model.ExecutionResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, common.Errorf("failed to unmarshal execution result: %w", err)
	}
	return &result, nil
}

// StoreResult persists a finished result under a TTL key. Used by the worker.
func (s *ExecutionService) StoreResult(ctx context.Context, result *model.ExecutionResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return common.Errorf("failed to marshal execution result: %w", err)
	}
	key := execResultKeyPrefix + result.JobID
	if err := s.rdb.Set(ctx, key, payload, config.AppConfig.ExecutionResultTTL).Err(); err != nil {
		return common.Errorf("failed to store execution result: %w", err)
	}
	return nil
}
