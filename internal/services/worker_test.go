package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/krinol/resume-analyzer/internal/llm"
	"github.com/krinol/resume-analyzer/internal/models"
)

func awaitJob(t *testing.T, job *Job) {
	t.Helper()
	select {
	case <-job.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for job to finish")
	}
}

func TestWorkerProcessesEnqueuedJobs(t *testing.T) {
	repo := newMemoryResumeRepo()
	id := seedResume(t, repo)
	pipeline := newTestPipeline(repo,
		&stubTextExtractor{text: "resume text"},
		&stubModelClient{response: extractedAliceResponse},
		&stubModelClient{response: validScoreResponse})

	w := NewWorker(pipeline, 2, 10, zap.NewNop())
	w.Start(context.Background())
	defer w.Stop()

	job := w.Enqueue(id, "/tmp/resume.pdf")
	awaitJob(t, job)

	resume, err := repo.FindByID(id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, resume.Status)
}

// pathTextExtractor returns a scripted markdown result per file path.
type pathTextExtractor struct {
	texts map[string]string
}

func (p *pathTextExtractor) ExtractMarkdown(filePath string) (string, error) {
	return p.texts[filePath], nil
}

// markerDelayClient stalls only the calls whose prompt carries the marker,
// so one document's model latency can be controlled in a shared pool.
type markerDelayClient struct {
	inner  *stubModelClient
	marker string
	delay  time.Duration
}

func (c *markerDelayClient) ChatCompletion(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error) {
	for _, m := range messages {
		if strings.Contains(m.Content, c.marker) {
			select {
			case <-time.After(c.delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			break
		}
	}
	return c.inner.ChatCompletion(ctx, messages, opts)
}

func TestWorkerJobsCompleteIndependently(t *testing.T) {
	repo := newMemoryResumeRepo()
	slowID := seedResume(t, repo)
	fastID := seedResume(t, repo)

	extractor := &pathTextExtractor{texts: map[string]string{
		"/tmp/slow.pdf": "slow document body",
		"/tmp/fast.pdf": "fast document body",
	}}
	client := &markerDelayClient{
		inner:  &stubModelClient{response: extractedAliceResponse},
		marker: "slow document body",
		delay:  500 * time.Millisecond,
	}
	log := zap.NewNop()
	fields := NewFieldExtractor(client, llm.Options{}, log)
	scorer := NewScorer(&stubModelClient{response: validScoreResponse}, emptyRuleData(), llm.Options{}, log)
	pipeline := NewPipeline(repo, extractor, fields, scorer, log)

	w := NewWorker(pipeline, 2, 10, log)
	w.Start(context.Background())
	defer w.Stop()

	slowJob := w.Enqueue(slowID, "/tmp/slow.pdf")
	require.Eventually(t, func() bool {
		resume, err := repo.FindByID(slowID)
		return err == nil && resume.Status == models.StatusProcessing
	}, 2*time.Second, 10*time.Millisecond)

	fastJob := w.Enqueue(fastID, "/tmp/fast.pdf")
	awaitJob(t, fastJob)

	fastResume, err := repo.FindByID(fastID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, fastResume.Status)

	// the fast document finished while the slow one was still mid-call
	slowResume, err := repo.FindByID(slowID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, slowResume.Status)

	awaitJob(t, slowJob)

	slowResume, err = repo.FindByID(slowID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, slowResume.Status)
}

func TestWorkerSharedPoolDrainsAllJobs(t *testing.T) {
	repo := newMemoryResumeRepo()
	pipeline := newTestPipeline(repo,
		&stubTextExtractor{text: "resume text"},
		&stubModelClient{response: extractedAliceResponse, delay: 10 * time.Millisecond},
		&stubModelClient{response: validScoreResponse})

	w := NewWorker(pipeline, 3, 20, zap.NewNop())
	w.Start(context.Background())
	defer w.Stop()

	var jobs []*Job
	var ids []uuid.UUID
	for i := 0; i < 8; i++ {
		id := seedResume(t, repo)
		ids = append(ids, id)
		jobs = append(jobs, w.Enqueue(id, "/tmp/resume.pdf"))
	}

	for _, job := range jobs {
		awaitJob(t, job)
	}

	for _, id := range ids {
		resume, err := repo.FindByID(id)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, resume.Status)
	}
}

func TestWorkerStopDrainsQueuedJobs(t *testing.T) {
	repo := newMemoryResumeRepo()
	busyID := seedResume(t, repo)
	queuedID := seedResume(t, repo)

	pipeline := newTestPipeline(repo,
		&stubTextExtractor{text: "resume text"},
		&stubModelClient{response: extractedAliceResponse, delay: 200 * time.Millisecond},
		&stubModelClient{response: validScoreResponse})

	w := NewWorker(pipeline, 1, 10, zap.NewNop())
	w.Start(context.Background())

	busyJob := w.Enqueue(busyID, "/tmp/busy.pdf")
	require.Eventually(t, func() bool {
		resume, err := repo.FindByID(busyID)
		return err == nil && resume.Status == models.StatusProcessing
	}, 2*time.Second, 10*time.Millisecond)

	queuedJob := w.Enqueue(queuedID, "/tmp/queued.pdf")
	w.Stop()

	// the in-flight job ran to completion, the queued one was dropped but
	// still resolved
	awaitJob(t, busyJob)
	awaitJob(t, queuedJob)

	busyResume, err := repo.FindByID(busyID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, busyResume.Status)

	queuedResume, err := repo.FindByID(queuedID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUploaded, queuedResume.Status)
}

func TestWorkerEnqueueAfterStop(t *testing.T) {
	repo := newMemoryResumeRepo()
	pipeline := newTestPipeline(repo,
		&stubTextExtractor{text: "resume text"},
		&stubModelClient{response: extractedAliceResponse},
		&stubModelClient{response: validScoreResponse})

	w := NewWorker(pipeline, 1, 1, zap.NewNop())
	w.Start(context.Background())
	w.Stop()

	id := seedResume(t, repo)
	job := w.Enqueue(id, "/tmp/resume.pdf")

	// dropped jobs resolve immediately so callers never hang
	awaitJob(t, job)

	resume, err := repo.FindByID(id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUploaded, resume.Status)
}
