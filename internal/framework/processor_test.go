package framework

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bitleak/lmstfy/client"

	"dip/backend/pkg/lmstfyx"
)

func testProcessorConfig() *ProcessorConfig {
	return &ProcessorConfig{
		Concurrency: 1,
		BufferSize:  8,
		Timeout:     time.Second,
	}
}

func procReturning(action lmstfyx.JobRespStatus, seen *[]string, mu *sync.Mutex) lmstfyx.Proc {
	return func(ctx context.Context, job *client.Job) *lmstfyx.JobResp {
		mu.Lock()
		*seen = append(*seen, job.ID)
		mu.Unlock()
		return &lmstfyx.JobResp{Action: action}
	}
}

func runOneMessage(t *testing.T, action lmstfyx.JobRespStatus) (*fakeSource, []string) {
	t.Helper()

	source := &fakeSource{}
	var mu sync.Mutex
	var seen []string

	proc := NewProcessor(testProcessorConfig(), procReturning(action, &seen, &mu), source, nopLogger{})
	inputChan := make(chan *Message, 8)

	if err := proc.Start(context.Background(), inputChan); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	inputChan <- &Message{ID: "m1", Queue: "test_queue", Data: []byte(`{}`)}

	proc.SignalShutdown()
	proc.Wait()

	mu.Lock()
	defer mu.Unlock()
	out := make([]string, len(seen))
	copy(out, seen)
	return source, out
}

func TestProcessorAcksOnSuccess(t *testing.T) {
	source, seen := runOneMessage(t, lmstfyx.JobRespStatusSuccess)

	if len(seen) != 1 || seen[0] != "m1" {
		t.Fatalf("message not processed: %v", seen)
	}
	acked := source.ackedIDs()
	if len(acked) != 1 || acked[0] != "m1" {
		t.Fatalf("success must ack the message, acked = %v", acked)
	}
}

func TestProcessorAcksOnBury(t *testing.T) {
	// 终态失败已落库，消息同样 ACK 删除
	source, seen := runOneMessage(t, lmstfyx.JobRespStatusBury)

	if len(seen) != 1 {
		t.Fatalf("message not processed: %v", seen)
	}
	if acked := source.ackedIDs(); len(acked) != 1 {
		t.Fatalf("bury must ack the message, acked = %v", acked)
	}
}

func TestProcessorReleasesWithoutAck(t *testing.T) {
	// 可重试失败不 ACK，TTR 到期后队列重投
	source, seen := runOneMessage(t, lmstfyx.JobRespStatusRelease)

	if len(seen) != 1 {
		t.Fatalf("message not processed: %v", seen)
	}
	if acked := source.ackedIDs(); len(acked) != 0 {
		t.Fatalf("release must not ack the message, acked = %v", acked)
	}
}

func TestProcessorDrainsBufferedMessages(t *testing.T) {
	source := &fakeSource{}
	var mu sync.Mutex
	var seen []string

	proc := NewProcessor(testProcessorConfig(), procReturning(lmstfyx.JobRespStatusSuccess, &seen, &mu), source, nopLogger{})
	inputChan := make(chan *Message, 8)

	// 先填充缓冲，再启动并立即要求退出：Drain 模式必须处理完剩余消息
	for _, id := range []string{"m1", "m2", "m3"} {
		inputChan <- &Message{ID: id, Queue: "test_queue", Data: []byte(`{}`)}
	}

	if err := proc.Start(context.Background(), inputChan); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	proc.SignalShutdown()
	proc.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 3 {
		t.Fatalf("drain must process all buffered messages, got %d", len(seen))
	}
}
