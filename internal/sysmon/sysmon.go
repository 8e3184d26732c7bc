// Package sysmon samples OS-level resource counters for a spawned
// benchmark-runner process on a fixed interval.
package sysmon

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cloudbench/gcsbench/internal/logging"
)

// Measurement is one sampled value with its unix timestamp.
type Measurement struct {
	Time  int64
	Value float64
}

// Measurements collects the sampled series for one runner invocation.
type Measurements struct {
	// CPUBusy is the fraction of non-idle CPU time per interval,
	// system wide.
	CPUBusy []Measurement
	// MemAvailableKB is MemAvailable from /proc/meminfo.
	MemAvailableKB []Measurement
	// ProcessRSSKB is the runner process's VmRSS.
	ProcessRSSKB []Measurement
}

// Summary condenses a run's measurements for the run log.
type Summary struct {
	Samples     int
	MeanCPUBusy float64
	PeakRSSKB   float64
}

// Sampler polls procfs until stopped. Start it after the runner
// process exists and stop it once the process has exited.
type Sampler struct {
	pid      int
	interval time.Duration
	procRoot string

	stop *atomic.Bool
	wg   *sync.WaitGroup

	mu sync.Mutex
	m  Measurements
}

// NewSampler creates a sampler for the given pid.
func NewSampler(pid int, interval time.Duration) *Sampler {
	return &Sampler{
		pid:      pid,
		interval: interval,
		procRoot: "/proc",
		stop:     &atomic.Bool{},
		wg:       &sync.WaitGroup{},
	}
}

// Start launches the sampling loop.
func (s *Sampler) Start() {
	s.wg.Add(1)
	go s.run()
}

// Stop signals the sampling loop to exit after its current iteration.
func (s *Sampler) Stop() {
	s.stop.Store(true)
}

// Wait blocks until the sampling loop has exited.
func (s *Sampler) Wait() {
	s.wg.Wait()
}

// Measurements returns a snapshot of the sampled series.
func (s *Sampler) Measurements() Measurements {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Measurements{
		CPUBusy:        append([]Measurement(nil), s.m.CPUBusy...),
		MemAvailableKB: append([]Measurement(nil), s.m.MemAvailableKB...),
		ProcessRSSKB:   append([]Measurement(nil), s.m.ProcessRSSKB...),
	}
}

// Summary condenses the sampled series.
func (s *Sampler) Summary() Summary {
	m := s.Measurements()
	sum := Summary{Samples: len(m.CPUBusy)}
	for _, cpu := range m.CPUBusy {
		sum.MeanCPUBusy += cpu.Value
	}
	if len(m.CPUBusy) > 0 {
		sum.MeanCPUBusy /= float64(len(m.CPUBusy))
	}
	for _, rss := range m.ProcessRSSKB {
		if rss.Value > sum.PeakRSSKB {
			sum.PeakRSSKB = rss.Value
		}
	}
	return sum
}

func (s *Sampler) run() {
	defer s.wg.Done()

	var prevCPU *cpuTimeStat
	lastWakeTime := time.Now()
	for {
		if s.stop.Load() {
			return
		}

		jitter := time.Since(lastWakeTime) - s.interval
		if jitter > s.interval {
			logging.Eventf("sysmon: sample loop overran interval by %s", jitter)
		}
		lastWakeTime = time.Now()

		now := time.Now().Unix()

		if buf, err := os.ReadFile(filepath.Join(s.procRoot, "stat")); err == nil {
			currCPU := parseCPUTimeStat(buf)
			if prevCPU != nil && currCPU != nil {
				s.appendCPU(now, currCPU, prevCPU)
			}
			prevCPU = currCPU
		}

		if buf, err := os.ReadFile(filepath.Join(s.procRoot, "meminfo")); err == nil {
			if kb := parseMemInfoKB(buf, "MemAvailable"); kb >= 0 {
				s.append(&s.m.MemAvailableKB, Measurement{Time: now, Value: kb})
			}
		}

		if buf, err := os.ReadFile(filepath.Join(s.procRoot, strconv.Itoa(s.pid), "status")); err == nil {
			if kb := parseStatusRSSKB(buf); kb >= 0 {
				s.append(&s.m.ProcessRSSKB, Measurement{Time: now, Value: kb})
			}
		}

		time.Sleep(s.interval)
	}
}

func (s *Sampler) appendCPU(now int64, curr, prev *cpuTimeStat) {
	totalDelta := float64(curr.totalCPUTime() - prev.totalCPUTime())
	if totalDelta <= 0 {
		return
	}
	idleDelta := float64(curr.idleCPUTime() - prev.idleCPUTime())
	s.append(&s.m.CPUBusy, Measurement{Time: now, Value: 1 - idleDelta/totalDelta})
}

func (s *Sampler) append(series *[]Measurement, m Measurement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*series = append(*series, m)
}
