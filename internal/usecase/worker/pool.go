package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/repositories"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/summarizer"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/transcription"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
	"github.com/johnquangdev/meeting-summarizer/pkg/jobcontext"
)

// zombieTimeout is how long a job may sit in processing before it is
// assumed orphaned and reset.
const zombieTimeout = 10 * time.Minute

// Pool runs the background job workers. A single dispatcher polls for
// pending jobs and hands them to a bounded set of worker slots, so no two
// workers ever claim the same job.
type Pool struct {
	jobs          repositories.JobRepository
	summarization *summarizer.Service
	transcription *transcription.Service
	cfg           config.WorkerConfig
	logger        *zap.Logger

	slots    chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
}

// NewPool constructs the worker pool
func NewPool(
	jobs repositories.JobRepository,
	summarization *summarizer.Service,
	transcriptionSvc *transcription.Service,
	cfg config.WorkerConfig,
	logger *zap.Logger,
) *Pool {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 3 * time.Second
	}
	return &Pool{
		jobs:          jobs,
		summarization: summarization,
		transcription: transcriptionSvc,
		cfg:           cfg,
		logger:        logger,
		slots:         make(chan struct{}, cfg.Concurrency),
	}
}

// Start launches the dispatcher and the zombie job sweeper
func (p *Pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return fmt.Errorf("worker pool already running")
	}
	p.running = true
	p.stopChan = make(chan struct{})

	p.logger.Info("🚀 Starting worker pool",
		zap.Int("concurrency", p.cfg.Concurrency),
		zap.Duration("poll_interval", p.cfg.PollInterval))

	p.wg.Add(2)
	go p.dispatch(ctx)
	go p.sweepZombies(ctx)

	return nil
}

// Stop signals all workers and waits for in-flight jobs to finish
func (p *Pool) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return fmt.Errorf("worker pool not running")
	}

	p.logger.Info("🛑 Stopping worker pool...")
	close(p.stopChan)
	p.wg.Wait()
	p.running = false
	p.logger.Info("✅ Worker pool stopped")

	return nil
}

// dispatch polls for pending jobs and hands each to a worker slot
func (p *Pool) dispatch(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			jobs, err := p.jobs.ListPending(ctx, p.cfg.Concurrency*2)
			if err != nil {
				p.logger.Error("❌ Failed to poll pending jobs", zap.Error(err))
				continue
			}

			for i := range jobs {
				job := jobs[i]

				// Claim before dispatch so the next poll skips it
				job.MarkAsProcessing()
				if err := p.jobs.Update(ctx, &job); err != nil {
					p.logger.Error("❌ Failed to claim job",
						zap.String("job_id", job.ID.String()),
						zap.Error(err))
					continue
				}

				select {
				case p.slots <- struct{}{}:
				case <-p.stopChan:
					return
				}

				p.wg.Add(1)
				go func(job entities.ProcessingJob) {
					defer p.wg.Done()
					defer func() { <-p.slots }()
					p.runJob(ctx, &job)
				}(job)
			}
		}
	}
}

// runJob executes one claimed job through the job context wrapper
func (p *Pool) runJob(ctx context.Context, job *entities.ProcessingJob) {
	workerID := len(p.slots)

	p.logger.Info("👷 Worker picked up job",
		zap.String("job_id", job.ID.String()),
		zap.String("meeting_id", job.MeetingID),
		zap.String("job_type", string(job.JobType)),
		zap.Int("retry_count", job.RetryCount))

	jobCtx, cancel := jobcontext.JobBegin(ctx, job.ID, string(job.JobType), workerID)
	defer cancel()

	err := jobcontext.JobEnd(jobCtx, func(c context.Context) error {
		return p.process(c, job)
	})
	if err == nil {
		return
	}

	if job.RetryCount < p.cfg.MaxRetries && jobcontext.IsRetryableError(err) {
		p.logger.Warn("🔁 Job failed, scheduling retry",
			zap.String("job_id", job.ID.String()),
			zap.Int("retry_count", job.RetryCount+1),
			zap.Error(err))
		if rerr := p.jobs.IncrementRetry(ctx, job.ID, err.Error()); rerr != nil {
			p.logger.Error("❌ Failed to schedule retry", zap.String("job_id", job.ID.String()), zap.Error(rerr))
		}
		return
	}

	p.logger.Error("❌ Job failed permanently",
		zap.String("job_id", job.ID.String()),
		zap.String("meeting_id", job.MeetingID),
		zap.Error(err))
	if ferr := p.jobs.MarkAsFailed(ctx, job.ID, err.Error()); ferr != nil {
		p.logger.Error("❌ Failed to mark job as failed", zap.String("job_id", job.ID.String()), zap.Error(ferr))
	}
}

func (p *Pool) process(ctx context.Context, job *entities.ProcessingJob) error {
	switch job.JobType {
	case entities.JobTypeSummarization:
		return p.summarization.ProcessJob(ctx, job)
	case entities.JobTypeTranscription:
		return p.transcription.ProcessJob(ctx, job)
	default:
		return fmt.Errorf("unknown job type %q", job.JobType)
	}
}

// sweepZombies resets jobs stuck in processing, which happens when the
// process died mid-job.
func (p *Pool) sweepZombies(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			jobs, err := p.jobs.ListByStatus(ctx, entities.JobStatusProcessing, 0)
			if err != nil {
				continue
			}
			for i := range jobs {
				job := jobs[i]
				if time.Since(job.UpdatedAt) < zombieTimeout {
					continue
				}
				p.logger.Warn("🧹 Resetting zombie job",
					zap.String("job_id", job.ID.String()),
					zap.Time("updated_at", job.UpdatedAt))
				job.Status = entities.JobStatusPending
				job.UpdatedAt = time.Now()
				if err := p.jobs.Update(ctx, &job); err != nil {
					p.logger.Error("❌ Failed to reset zombie job", zap.String("job_id", job.ID.String()), zap.Error(err))
				}
			}
		}
	}
}
