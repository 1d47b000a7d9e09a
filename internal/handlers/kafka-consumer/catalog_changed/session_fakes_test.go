package catalog_changed_test

import (
	"context"
	"sync"

	"github.com/IBM/sarama"
)

type fakeSession struct {
	ctx    context.Context
	mu     sync.Mutex
	marked []int64
}

func newFakeSession(ctx context.Context) *fakeSession {
	return &fakeSession{ctx: ctx}
}

func (s *fakeSession) Claims() map[string][]int32               { return nil }
func (s *fakeSession) MemberID() string                         { return "member-1" }
func (s *fakeSession) GenerationID() int32                      { return 1 }
func (s *fakeSession) MarkOffset(string, int32, int64, string)  {}
func (s *fakeSession) Commit()                                  {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}
func (s *fakeSession) Context() context.Context                 { return s.ctx }

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked = append(s.marked, msg.Offset)
}

func (s *fakeSession) markedOffsets() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64{}, s.marked...)
}

type fakeClaim struct {
	messages chan *sarama.ConsumerMessage
}

// newFakeClaim отдаёт сообщения и закрывает канал.
func newFakeClaim(values ...string) *fakeClaim {
	messages := make(chan *sarama.ConsumerMessage, len(values))
	for i, value := range values {
		messages <- &sarama.ConsumerMessage{
			Topic:  "catalog.changed",
			Offset: int64(i),
			Value:  []byte(value),
		}
	}
	close(messages)
	return &fakeClaim{messages: messages}
}

func (c *fakeClaim) Topic() string                            { return "catalog.changed" }
func (c *fakeClaim) Partition() int32                         { return 0 }
func (c *fakeClaim) InitialOffset() int64                     { return 0 }
func (c *fakeClaim) HighWaterMarkOffset() int64               { return int64(len(c.messages)) }
func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }
