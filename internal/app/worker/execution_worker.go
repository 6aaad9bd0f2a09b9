package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"algoprep/internal/app/service"
	"algoprep/internal/domain/model"
	"algoprep/internal/platform/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ExecutionWorker drains the execution queue and calls the external executor
// service over HTTP. One job runs at a time across all instances, guarded by
// a Redis lock.
type ExecutionWorker struct {
	rdb         *redis.Client
	execService *service.ExecutionService
	httpClient  *http.Client
}

func NewExecutionWorker(rdb *redis.Client, execService *service.ExecutionService) *ExecutionWorker {
	return &ExecutionWorker{
		rdb:         rdb,
		execService: execService,
		httpClient:  &http.Client{Timeout: config.AppConfig.ExecutionTimeout + 5*time.Second},
	}
}

// executorRequest is the wire format sent to the external executor.
type executorRequest struct {
	JobID     string `json:"job_id"`
	Language  string `json:"language"`
	Code      string `json:"code"`
	Stdin     string `json:"stdin"`
	TimeoutMs int    `json:"timeout_ms"`
}

// executorResponse is what the executor reports back.
type executorResponse struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exit_code"`
	Error    string `json:"error,omitempty"`
}

func (w *ExecutionWorker) Start(ctx context.Context) {
	log.Println("Execution worker started, listening to queue:", config.AppConfig.ExecutionQueueName)
	for {
		select {
		case <-ctx.Done():
			log.Println("Execution worker stopping...")
			return
		default:
			popped, err := w.rdb.BRPop(ctx, 0*time.Second, config.AppConfig.ExecutionQueueName).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					log.Printf("Worker BRPop exiting or timed out: %v", err)
					time.Sleep(1 * time.Second)
					continue
				}
				log.Printf("ERROR: Failed to BRPop from Redis queue '%s': %v", config.AppConfig.ExecutionQueueName, err)
				time.Sleep(5 * time.Second)
				continue
			}

			// popped is [queueName, value]
			if len(popped) < 2 || popped[1] == "" {
				log.Println("WARN: BRPop returned empty payload.")
				continue
			}

			var job model.ExecutionJob
			if err := json.Unmarshal([]byte(popped[1]), &job); err != nil {
				log.Printf("ERROR: Dropping malformed execution job payload: %v", err)
				continue
			}
			w.processJobWithLock(ctx, &job)
		}
	}
}

func (w *ExecutionWorker) processJobWithLock(ctx context.Context, job *model.ExecutionJob) {
	lockValue := uuid.NewString()
	lockTTL := time.Duration(config.AppConfig.ExecutionLockTTLSeconds) * time.Second

	ok, err := w.rdb.SetNX(ctx, config.AppConfig.ExecutionLockKey, lockValue, lockTTL).Result()
	if err != nil {
		log.Printf("ERROR: Failed to attempt lock acquisition for job %s: %v", job.ID, err)
		w.requeueJob(ctx, job)
		return
	}
	if !ok {
		log.Printf("INFO: Could not acquire execution lock for job %s, another worker is busy. Re-queueing.", job.ID)
		w.requeueJob(ctx, job)
		return
	}

	defer func() {
		// Release only if we still hold the lock (CAS delete).
		script := redis.NewScript(`
            if redis.call("get", KEYS[1]) == ARGV[1] then
                return redis.call("del", KEYS[1])
            else
                return 0
            end`)
		if err := script.Run(ctx, w.rdb, []string{config.AppConfig.ExecutionLockKey}, lockValue).Err(); err != nil {
			log.Printf("ERROR: Failed to release execution lock for job %s: %v", job.ID, err)
		}
	}()

	result := w.runJob(ctx, job)
	if err := w.execService.StoreResult(ctx, result); err != nil {
		log.Printf("ERROR: Failed to store result for job %s: %v", job.ID, err)
	}
}

func (w *ExecutionWorker) runJob(ctx context.Context, job *model.ExecutionJob) *model.ExecutionResult {
	reqBody := executorRequest{
		JobID:     job.ID,
		Language:  job.Language,
		Code:      job.Code,
		Stdin:     job.Stdin,
		TimeoutMs: int(config.AppConfig.ExecutionTimeout / time.Millisecond),
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return errorResult(job.ID, fmt.Sprintf("failed to marshal executor request: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, config.AppConfig.ExecutorURL, bytes.NewReader(payload))
	if err != nil {
		return errorResult(job.ID, fmt.Sprintf("failed to build executor request: %v", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(httpReq)
	if err != nil {
		return errorResult(job.ID, fmt.Sprintf("executor call failed: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorResult(job.ID, fmt.Sprintf("failed to read executor response: %v", err))
	}
	if resp.StatusCode != http.StatusOK {
		return errorResult(job.ID, fmt.Sprintf("executor returned status %d: %s", resp.StatusCode, body))
	}

	var execResp executorResponse
	if err := json.Unmarshal(body, &execResp); err != nil {
		return errorResult(job.ID, fmt.Sprintf("failed to unmarshal executor response: %v", err))
	}
	if execResp.Error != "" {
		return errorResult(job.ID, execResp.Error)
	}

	return &model.ExecutionResult{
		JobID:    job.ID,
		Status:   model.ExecStatusFinished,
		Stdout:   execResp.Stdout,
		Stderr:   execResp.Stderr,
		ExitCode: execResp.ExitCode,
	}
}

func (w *ExecutionWorker) requeueJob(ctx context.Context, job *model.ExecutionJob) {
	payload, err := json.Marshal(job)
	if err != nil {
		log.Printf("ERROR: Failed to re-marshal job %s for requeue: %v", job.ID, err)
		return
	}
	if err := w.rdb.LPush(ctx, config.AppConfig.ExecutionQueueName, payload).Err(); err != nil {
		log.Printf("ERROR: Failed to requeue job %s: %v", job.ID, err)
	}
	time.Sleep(1 * time.Second) // Avoid tight requeue loops while the lock is held elsewhere
}

func errorResult(jobID, msg string) *model.ExecutionResult {
	return &model.ExecutionResult{JobID: jobID, Status: model.ExecStatusError, Error: msg}
}
