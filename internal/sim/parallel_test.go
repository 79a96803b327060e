package sim_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/horyzen/internal/geodesic"
	"github.com/san-kum/horyzen/internal/sim"
)

var errBoom = errors.New("boom")

// tagged returns NumSteps samples whose T carries the job's Omega so the
// test can tell which job produced which trajectory.
func tagged(job geodesic.Job) geodesic.Trajectory {
	traj := make(geodesic.Trajectory, job.NumSteps)
	for i := range traj {
		traj[i] = geodesic.Sample{T: job.Omega, R: float64(i)}
	}
	return traj
}

func makeJobs(n, steps int) []geodesic.Job {
	jobs := make([]geodesic.Job, n)
	for i := range jobs {
		jobs[i] = geodesic.Job{
			NumSteps:   steps,
			Omega:      float64(i),
			SourcePath: fmt.Sprintf("job-%d.yml", i),
		}
	}
	return jobs
}

// tracker records how many integrations are in flight at once.
type tracker struct {
	active, peak int32
}

func (t *tracker) enter() {
	n := atomic.AddInt32(&t.active, 1)
	for {
		p := atomic.LoadInt32(&t.peak)
		if n <= p || atomic.CompareAndSwapInt32(&t.peak, p, n) {
			return
		}
	}
}

func (t *tracker) leave() { atomic.AddInt32(&t.active, -1) }

func (t *tracker) Peak() int32 { return atomic.LoadInt32(&t.peak) }

var _ = Describe("Scheduler", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("returns results in job order regardless of completion order", func() {
		rng := rand.New(rand.NewSource(7))
		delays := make([]time.Duration, 16)
		for i := range delays {
			delays[i] = time.Duration(rng.Intn(20)) * time.Millisecond
		}
		integ := geodesic.IntegratorFunc(func(ctx context.Context, job geodesic.Job) (geodesic.Trajectory, error) {
			time.Sleep(delays[int(job.Omega)])
			return tagged(job), nil
		})

		trajs, err := sim.New(integ, 4, nil).Run(ctx, makeJobs(16, 5))
		Expect(err).NotTo(HaveOccurred())
		Expect(trajs).To(HaveLen(16))
		for i, traj := range trajs {
			Expect(traj).To(HaveLen(5))
			Expect(traj[0].T).To(Equal(float64(i)))
		}
	})

	It("returns nothing for an empty batch", func() {
		integ := geodesic.IntegratorFunc(func(ctx context.Context, job geodesic.Job) (geodesic.Trajectory, error) {
			Fail("integrator should not be called")
			return nil, nil
		})
		trajs, err := sim.New(integ, 2, nil).Run(ctx, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(trajs).To(BeEmpty())
	})

	It("never runs more jobs at once than it has workers", func() {
		tr := &tracker{}
		integ := geodesic.IntegratorFunc(func(ctx context.Context, job geodesic.Job) (geodesic.Trajectory, error) {
			tr.enter()
			defer tr.leave()
			time.Sleep(5 * time.Millisecond)
			return tagged(job), nil
		})

		_, err := sim.New(integ, 3, nil).Run(ctx, makeJobs(12, 2))
		Expect(err).NotTo(HaveOccurred())
		Expect(tr.Peak()).To(BeNumerically("<=", 3))
		Expect(tr.Peak()).To(BeNumerically(">=", 1))
	})

	It("defaults the worker count to GOMAXPROCS", func() {
		s := sim.New(geodesic.IntegratorFunc(nil), 0, nil)
		Expect(s.Workers()).To(BeNumerically(">=", 1))
	})

	It("fails the whole batch on the first error and names the config", func() {
		var started int32
		integ := geodesic.IntegratorFunc(func(ctx context.Context, job geodesic.Job) (geodesic.Trajectory, error) {
			atomic.AddInt32(&started, 1)
			if job.Omega == 0 {
				return nil, errBoom
			}
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(50 * time.Millisecond):
			}
			return tagged(job), nil
		})

		trajs, err := sim.New(integ, 1, nil).Run(ctx, makeJobs(8, 3))
		Expect(trajs).To(BeNil())
		Expect(err).To(MatchError(errBoom))

		var simErr *geodesic.SimulationError
		Expect(errors.As(err, &simErr)).To(BeTrue())
		Expect(simErr.SourcePath).To(Equal("job-0.yml"))
		Expect(simErr.Index).To(Equal(0))
		Expect(atomic.LoadInt32(&started)).To(BeNumerically("<", 8))
	})

	It("rejects a trajectory with the wrong number of samples", func() {
		integ := geodesic.IntegratorFunc(func(ctx context.Context, job geodesic.Job) (geodesic.Trajectory, error) {
			return tagged(job)[:job.NumSteps-1], nil
		})

		_, err := sim.New(integ, 2, nil).Run(ctx, makeJobs(2, 4))
		Expect(err).To(MatchError(geodesic.ErrStepCount))
	})

	It("stops when the caller cancels", func() {
		cctx, cancel := context.WithCancel(ctx)
		integ := geodesic.IntegratorFunc(func(ctx context.Context, job geodesic.Job) (geodesic.Trajectory, error) {
			cancel()
			<-ctx.Done()
			return nil, ctx.Err()
		})

		_, err := sim.New(integ, 2, nil).Run(cctx, makeJobs(4, 1))
		Expect(err).To(MatchError(context.Canceled))
	})

	Describe("Submit", func() {
		It("resolves the future with the trajectory", func() {
			integ := geodesic.IntegratorFunc(func(ctx context.Context, job geodesic.Job) (geodesic.Trajectory, error) {
				return tagged(job), nil
			})
			job := makeJobs(3, 6)[2]

			f := sim.New(integ, 1, nil).Submit(ctx, 2, job)
			Eventually(f.Done()).Should(BeClosed())

			traj, err := f.Wait()
			Expect(err).NotTo(HaveOccurred())
			Expect(traj).To(HaveLen(6))
			Expect(traj[0].T).To(Equal(2.0))
		})

		It("resolves the future with a simulation error", func() {
			integ := geodesic.IntegratorFunc(func(ctx context.Context, job geodesic.Job) (geodesic.Trajectory, error) {
				return nil, errBoom
			})

			_, err := sim.New(integ, 1, nil).Submit(ctx, 5, makeJobs(1, 1)[0]).Wait()
			Expect(err).To(MatchError(errBoom))

			var simErr *geodesic.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Index).To(Equal(5))
		})

		It("shares the worker limit across submissions", func() {
			tr := &tracker{}
			integ := geodesic.IntegratorFunc(func(ctx context.Context, job geodesic.Job) (geodesic.Trajectory, error) {
				tr.enter()
				defer tr.leave()
				time.Sleep(2 * time.Millisecond)
				return tagged(job), nil
			})

			s := sim.New(integ, 1, nil)
			jobs := makeJobs(16, 2)
			futures := make([]*sim.Future, len(jobs))
			for i, job := range jobs {
				futures[i] = s.Submit(ctx, i, job)
			}
			for i, f := range futures {
				traj, err := f.Wait()
				Expect(err).NotTo(HaveOccurred())
				Expect(traj[0].T).To(Equal(float64(i)))
			}
			Expect(tr.Peak()).To(Equal(int32(1)))
		})

		It("gives up waiting for a worker when the context ends", func() {
			release := make(chan struct{})
			integ := geodesic.IntegratorFunc(func(ctx context.Context, job geodesic.Job) (geodesic.Trajectory, error) {
				<-release
				return tagged(job), nil
			})

			s := sim.New(integ, 1, nil)
			busy := s.Submit(ctx, 0, makeJobs(1, 1)[0])

			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := s.Submit(cctx, 1, makeJobs(1, 1)[0]).Wait()
			Expect(err).To(MatchError(context.Canceled))

			close(release)
			_, err = busy.Wait()
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
