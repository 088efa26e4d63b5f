package power

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"trendkit/domain/core"
	"trendkit/domain/trend"
	"trendkit/internal"
	"trendkit/ports"
)

// Options configures a minimum-sample-size search. Zero values for the
// tunable fields fall back to the documented defaults; Beta, Delta, StdDev
// and Seed are always caller-supplied.
type Options struct {
	// Beta is the probability of falsely accepting the null hypothesis;
	// statistical power is 1 - Beta.
	Beta float64
	// Delta is the change per sampling period of the simulated linear trend.
	Delta float64
	// StdDev is the standard deviation of the simulated noise.
	StdDev float64
	// Alpha is the significance level of the trend test (default 0.05).
	Alpha float64
	// StartN is the initial candidate sample size (default 4).
	StartN int
	// NumIter is the number of Monte-Carlo trials per cycle (default 1000).
	NumIter int
	// Tol decides when the detection probability is close enough to the
	// target power (default 1e-6).
	Tol float64
	// NumCycles bounds the total number of search cycles (default 10000).
	NumCycles int
	// M is the lookback used to detect the search cycling between the same
	// sample sizes when Tol is too tight (default 5).
	M int
	// Seed drives all random draws. Runs with equal options and seed return
	// identical results.
	Seed int64
	// MaxConcurrency bounds how many trials of one cycle run at once
	// (default GOMAXPROCS). Trials are independent; the per-cycle detection
	// probability is aggregated only after every trial has finished.
	MaxConcurrency int
	// Progress, when non-nil, receives one event per completed cycle.
	Progress ProgressFunc
}

func (o *Options) applyDefaults() {
	if o.Alpha == 0 {
		o.Alpha = 0.05
	}
	if o.StartN == 0 {
		o.StartN = 4
	}
	if o.NumIter == 0 {
		o.NumIter = 1000
	}
	if o.Tol == 0 {
		o.Tol = 1e-6
	}
	if o.NumCycles == 0 {
		o.NumCycles = 10000
	}
	if o.M == 0 {
		o.M = 5
	}
	if o.MaxConcurrency == 0 {
		o.MaxConcurrency = runtime.GOMAXPROCS(0)
	}
}

// ProgressEvent describes one completed search cycle.
type ProgressEvent struct {
	Cycle                int     `json:"cycle"`
	SampleSize           int     `json:"sample_size"`
	DetectionProbability float64 `json:"detection_probability"`
	Direction            string  `json:"direction"` // "increase", "decrease" or "stop"
}

// ProgressFunc observes search progress. Diagnostic only; events are not
// part of the estimation contract.
type ProgressFunc func(ProgressEvent)

// LoggerProgress adapts the leveled logger into a progress hook.
func LoggerProgress(l *internal.Logger) ProgressFunc {
	return func(ev ProgressEvent) {
		l.Debug("cycle %d: n=%d P_d=%.4f (%s)", ev.Cycle, ev.SampleSize, ev.DetectionProbability, ev.Direction)
	}
}

// Reason tags how a search terminated.
type Reason string

const (
	// ReasonPowerMatched: the detection probability landed within Tol of the
	// target power.
	ReasonPowerMatched Reason = "power_matched"
	// ReasonConverged: the search revisited an extreme sample size with no
	// change for M cycles; the returned n is approximate.
	ReasonConverged Reason = "converged"
	// ReasonBudgetExhausted: NumCycles elapsed; the returned n is the
	// best-effort answer, not an error.
	ReasonBudgetExhausted Reason = "budget_exhausted"
)

// EstimateResult is the outcome of a sample-size search.
type EstimateResult struct {
	SampleSize           int     `json:"sample_size"`
	DetectionProbability float64 `json:"detection_probability"`
	Cycles               int     `json:"cycles"`
	Reason               Reason  `json:"reason"`
}

// Estimator searches for the minimum series length at which a Mann-Kendall
// test detects a linear trend of a given magnitude at a target power, by
// simulating noisy trend series and counting how often the test flags them.
// The method follows Tomer's Monte-Carlo procedure for trend detectability;
// it approximates the required n when the real trend is non-linear.
type Estimator struct {
	rng ports.RNGPort
}

// NewEstimator creates an estimator drawing randomness from the given port.
func NewEstimator(rng ports.RNGPort) *Estimator {
	return &Estimator{rng: rng}
}

// Estimate runs the search. The context is the caller's budget, distinct
// from NumCycles: cancellation or deadline expiry stops the search between
// trials and returns the context error alongside the state reached so far.
func (e *Estimator) Estimate(ctx context.Context, opts Options) (EstimateResult, error) {
	opts.applyDefaults()
	if opts.Beta <= 0 || opts.Beta >= 1 {
		return EstimateResult{}, fmt.Errorf("%w: beta must be in (0, 1), got %v", core.ErrInvalidInput, opts.Beta)
	}
	if opts.StartN < 1 {
		return EstimateResult{}, core.ErrZeroSampleSize
	}

	targetPower := 1 - opts.Beta
	n := opts.StartN
	pd := 0.0
	minDiff := math.Abs(pd - targetPower)
	bestPd := pd

	maxN, minN := n, n
	maxNCycle, minNCycle := 1, 1

	cycle := 0
	for math.Abs(pd-targetPower) > opts.Tol && cycle < opts.NumCycles {
		cycle++

		var err error
		pd, err = e.runCycle(ctx, opts, n, cycle)
		if err != nil {
			return EstimateResult{SampleSize: n, DetectionProbability: pd, Cycles: cycle}, err
		}

		if math.Abs(pd-targetPower) <= opts.Tol {
			e.emit(opts, cycle, n, pd, "stop")
			return EstimateResult{SampleSize: n, DetectionProbability: pd, Cycles: cycle, Reason: ReasonPowerMatched}, nil
		}

		// Track the estimate closest to the target power seen so far.
		if diff := math.Abs(pd - targetPower); minDiff > diff {
			minDiff = diff
			bestPd = pd
		}

		// Track the extremes of the visited sample sizes, and stop once the
		// search keeps bouncing off one of them: Tol is then too tight for
		// NumIter and n is as settled as it will get.
		if n > maxN && math.Abs(bestPd-pd) < opts.Tol {
			maxN = n
			maxNCycle = cycle
		} else if n < minN && math.Abs(bestPd-pd) < opts.Tol {
			minN = n
			minNCycle = cycle
		} else if (n == maxN && cycle-maxNCycle >= opts.M) ||
			(n == minN && cycle-minNCycle >= opts.M) {
			e.emit(opts, cycle, n, pd, "stop")
			return EstimateResult{SampleSize: n, DetectionProbability: pd, Cycles: cycle, Reason: ReasonConverged}, nil
		}

		if pd < targetPower {
			n++
			e.emit(opts, cycle, n, pd, "increase")
		} else {
			n--
			e.emit(opts, cycle, n, pd, "decrease")
			if n == 0 {
				return EstimateResult{}, core.ErrZeroSampleSize
			}
		}
	}

	return EstimateResult{SampleSize: n, DetectionProbability: pd, Cycles: cycle, Reason: ReasonBudgetExhausted}, nil
}

// runCycle simulates NumIter series of length n and returns the fraction on
// which the trend test rejects at Alpha. Trials run concurrently under the
// MaxConcurrency bound; the fraction is computed only after all trials have
// joined. Each trial draws from its own (seed, cycle, trial) stream so the
// result is independent of scheduling.
func (e *Estimator) runCycle(ctx context.Context, opts Options, n, cycle int) (float64, error) {
	sem := semaphore.NewWeighted(int64(opts.MaxConcurrency))
	var wg sync.WaitGroup

	detected := make([]bool, opts.NumIter)
	for trial := 0; trial < opts.NumIter; trial++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return 0, fmt.Errorf("sample-size search interrupted: %w", err)
		}

		wg.Add(1)
		go func(trial int) {
			defer wg.Done()
			defer sem.Release(1)

			r := e.rng.TrialStream(opts.Seed, cycle, trial)
			x := make(trend.Series, n)
			for k := range x {
				x[k] = r.NormFloat64()*opts.StdDev + opts.Delta*float64(k)
			}

			res, err := trend.MannKendall(x)
			if err == nil && res.P <= opts.Alpha {
				detected[trial] = true
			}
		}(trial)
	}
	wg.Wait()

	count := 0
	for _, d := range detected {
		if d {
			count++
		}
	}
	return float64(count) / float64(opts.NumIter), nil
}

func (e *Estimator) emit(opts Options, cycle, n int, pd float64, direction string) {
	if opts.Progress != nil {
		opts.Progress(ProgressEvent{
			Cycle:                cycle,
			SampleSize:           n,
			DetectionProbability: pd,
			Direction:            direction,
		})
	}
}
