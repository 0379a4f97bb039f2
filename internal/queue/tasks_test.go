package queue

import (
	"encoding/json"
	"testing"

	"github.com/pharmadirect/internal/config"
)

func TestNewDiscountEngineRunTask(t *testing.T) {
	task, err := NewDiscountEngineRunTask(DiscountEngineRunPayload{Trigger: "cron"})
	if err != nil {
		t.Fatalf("build task error: %v", err)
	}
	if task.Type() != TaskDiscountEngineRun {
		t.Fatalf("task type want %s got %s", TaskDiscountEngineRun, task.Type())
	}

	var payload DiscountEngineRunPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("unmarshal payload error: %v", err)
	}
	if payload.Trigger != "cron" {
		t.Fatalf("trigger want cron got %s", payload.Trigger)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	redisOpt, serverCfg := BuildServerConfig(&config.QueueConfig{})
	if redisOpt.Addr == "" {
		t.Fatalf("expected default redis addr")
	}
	if serverCfg.Concurrency <= 0 {
		t.Fatalf("expected positive default concurrency, got %d", serverCfg.Concurrency)
	}
	if len(serverCfg.Queues) == 0 {
		t.Fatalf("expected default queue weights")
	}
}

func TestClientDisabled(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client error: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueDiscountEngineRun(DiscountEngineRunPayload{Trigger: "admin"}); err != nil {
		t.Fatalf("disabled client should no-op, got %v", err)
	}
}
