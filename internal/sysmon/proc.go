package sysmon

import (
	"strconv"
	"strings"
)

type cpuTimeStat struct {
	user    int
	nice    int
	system  int
	idle    int
	iowait  int
	irq     int
	softIrq int
	steal   int
}

func (ts *cpuTimeStat) totalCPUTime() int {
	return ts.user + ts.nice + ts.system + ts.idle + ts.iowait + ts.irq + ts.softIrq + ts.steal
}

func (ts *cpuTimeStat) idleCPUTime() int {
	return ts.idle + ts.iowait
}

func parseCPUTimeStat(buf []byte) *cpuTimeStat {
	for _, line := range strings.Split(string(buf), "\n") {
		// Only the aggregate line; ignore per-core entries.
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 9 {
			return nil
		}
		user, _ := strconv.Atoi(parts[1])
		nice, _ := strconv.Atoi(parts[2])
		system, _ := strconv.Atoi(parts[3])
		idle, _ := strconv.Atoi(parts[4])
		iowait, _ := strconv.Atoi(parts[5])
		irq, _ := strconv.Atoi(parts[6])
		softIrq, _ := strconv.Atoi(parts[7])
		steal, _ := strconv.Atoi(parts[8])
		return &cpuTimeStat{
			user:    user,
			nice:    nice,
			system:  system,
			idle:    idle,
			iowait:  iowait,
			irq:     irq,
			softIrq: softIrq,
			steal:   steal,
		}
	}
	return nil
}

// parseMemInfoKB extracts a kB-valued field like MemAvailable from
// /proc/meminfo. Returns -1 when the field is absent.
func parseMemInfoKB(buf []byte, field string) float64 {
	prefix := field + ":"
	for _, line := range strings.Split(string(buf), "\n") {
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			return -1
		}
		value, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return -1
		}
		return value
	}
	return -1
}

// parseStatusRSSKB extracts VmRSS from a /proc/<pid>/status buffer.
// Returns -1 when absent (kernel threads, or a process that exited).
func parseStatusRSSKB(buf []byte) float64 {
	return parseMemInfoKB(buf, "VmRSS")
}
