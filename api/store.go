package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TaskStore defines persistence operations for scan tasks.
type TaskStore interface {
	CreateTask(task *ScanTask) error
	GetTask(id string) (*ScanTask, error)
	UpdateTask(task *ScanTask) error
	PushToQueue(taskID string) error
	PopFromQueue() (string, error)
	QueueDepth() (int, error)
}

// ErrTaskNotFound indicates the requested task doesn't exist in the store.
var ErrTaskNotFound = errors.New("task not found")

// RedisStore implements TaskStore using Redis as backend.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a Redis-backed task store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) taskKey(id string) string {
	return fmt.Sprintf("scan:%s", id)
}

// CreateTask persists a new scan task in Redis.
func (s *RedisStore) CreateTask(task *ScanTask) error {
	data, err := serializeTask(task)
	if err != nil {
		return err
	}
	return s.client.HSet(context.Background(), s.taskKey(task.ID), data).Err()
}

// GetTask retrieves a task by ID.
func (s *RedisStore) GetTask(id string) (*ScanTask, error) {
	res, err := s.client.HGetAll(context.Background(), s.taskKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, ErrTaskNotFound
	}
	return deserializeTask(res)
}

// UpdateTask updates an existing task in Redis.
func (s *RedisStore) UpdateTask(task *ScanTask) error {
	data, err := serializeTask(task)
	if err != nil {
		return err
	}
	return s.client.HSet(context.Background(), s.taskKey(task.ID), data).Err()
}

// PushToQueue enqueues a task ID for workers to process.
func (s *RedisStore) PushToQueue(taskID string) error {
	return s.client.LPush(context.Background(), "scans:queue", taskID).Err()
}

// PopFromQueue blocks until a task ID is available.
func (s *RedisStore) PopFromQueue() (string, error) {
	res, err := s.client.BRPop(context.Background(), 0, "scans:queue").Result()
	if err != nil {
		return "", err
	}
	if len(res) != 2 {
		return "", errors.New("unexpected response size from BRPOP")
	}
	return res[1], nil
}

// QueueDepth reports how many task IDs are currently waiting to be
// picked up by a worker.
func (s *RedisStore) QueueDepth() (int, error) {
	n, err := s.client.LLen(context.Background(), "scans:queue").Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func serializeTask(task *ScanTask) (map[string]interface{}, error) {
	ipTargets, err := json.Marshal(task.IPTargets)
	if err != nil {
		return nil, err
	}
	portTargets, err := json.Marshal(task.PortTargets)
	if err != nil {
		return nil, err
	}

	var devicesData string
	if task.Devices != nil {
		encoded, err := json.Marshal(task.Devices)
		if err != nil {
			return nil, err
		}
		devicesData = string(encoded)
	}

	createdAt := task.CreatedAt.Format(time.RFC3339Nano)
	completedAt := ""
	if task.CompletedAt != nil {
		completedAt = task.CompletedAt.Format(time.RFC3339Nano)
	}

	return map[string]interface{}{
		"id":                task.ID,
		"status":            task.Status,
		"ip_targets":        string(ipTargets),
		"port_targets":      string(portTargets),
		"arp_only":          task.ArpOnly,
		"include_vendor":    task.IncludeVendor,
		"include_hostnames": task.IncludeHostNames,
		"devices":           devicesData,
		"created_at":        createdAt,
		"completed_at":      completedAt,
		"error":             task.Error,
	}, nil
}

func deserializeTask(data map[string]string) (*ScanTask, error) {
	var ipTargets, portTargets []string
	if raw, ok := data["ip_targets"]; ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &ipTargets); err != nil {
			return nil, err
		}
	}
	if raw, ok := data["port_targets"]; ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &portTargets); err != nil {
			return nil, err
		}
	}

	var devices []Device
	if raw, ok := data["devices"]; ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &devices); err != nil {
			return nil, err
		}
	}

	createdAt := time.Time{}
	if raw, ok := data["created_at"]; ok && raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, err
		}
		createdAt = t
	}

	var completedAt *time.Time
	if raw, ok := data["completed_at"]; ok && raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, err
		}
		completedAt = &t
	}

	task := &ScanTask{
		ID:               data["id"],
		Status:           data["status"],
		IPTargets:        ipTargets,
		PortTargets:      portTargets,
		ArpOnly:          data["arp_only"] == "1",
		IncludeVendor:    data["include_vendor"] == "1",
		IncludeHostNames: data["include_hostnames"] == "1",
		Devices:          devices,
		CreatedAt:        createdAt,
		CompletedAt:      completedAt,
		Error:            data["error"],
	}

	return task, nil
}
