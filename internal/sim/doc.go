// Package sim schedules batches of geodesic simulations.
//
// A [Scheduler] runs at most Workers integrations at once. Run submits
// every job and gathers the futures into an index-addressed slice, so result i always belongs
// to job i no matter which job finishes first:
//
//	s := sim.New(integ, 0, logger)
//	trajs, err := s.Run(ctx, jobs)
//
// The first failing job cancels the batch and Run returns a
// [geodesic.SimulationError] naming the job's configuration file.
package sim
