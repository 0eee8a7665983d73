package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/skilledwork/worker_service/internal/domain"
	"github.com/skilledwork/worker_service/internal/helper"
	"github.com/skilledwork/worker_service/internal/ratelimit"
	"github.com/skilledwork/worker_service/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type published struct {
	Key   string
	Value string
}

type fakeProducer struct {
	mu       sync.Mutex
	fail     bool
	messages []published
}

func (p *fakeProducer) PublishMessage(key, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return fmt.Errorf("broker unavailable")
	}
	p.messages = append(p.messages, published{Key: string(key), Value: string(value)})
	return nil
}

func (p *fakeProducer) setFail(fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fail = fail
}

func (p *fakeProducer) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages)
}

func (p *fakeProducer) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.messages))
	for _, m := range p.messages {
		keys = append(keys, m.Key)
	}
	return keys
}

type testEnv struct {
	db       *gorm.DB
	users    UserService
	workers  WorkerService
	producer *fakeProducer
	cooldown *ratelimit.MemoryCooldown
	auth     helper.Auth
}

var dbSeq int

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbSeq++
	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.WorkerProfile{}))

	producer := &fakeProducer{}
	cooldown := ratelimit.NewMemoryCooldown(ratelimit.ResendWindow)
	auth := helper.SetupAuth("test-secret")

	workerSvc := NewWorkerService(
		repository.NewWorkerRepository(db),
		repository.NewUserRepository(db),
		nil,
	)
	userSvc := NewUserService(
		repository.NewUserRepository(db),
		workerSvc,
		producer,
		cooldown,
		auth,
	)

	return &testEnv{
		db:       db,
		users:    userSvc,
		workers:  workerSvc,
		producer: producer,
		cooldown: cooldown,
		auth:     auth,
	}
}

func (e *testEnv) waitForMessages(t *testing.T, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if e.producer.count() >= n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d published messages, got %d", n, e.producer.count())
}
