package app

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

const cpuHistoryLen = 8

// StatsMsg carries a CPU and memory sample for the menu bar.
type StatsMsg struct {
	CPU float64
	RAM float64
	Err error
}

// sampleStats is swapped out in tests.
var sampleStats = func() StatsMsg {
	var msg StatsMsg
	// interval 0 compares against the previous call
	if pct, err := cpu.Percent(0, false); err != nil {
		msg.Err = err
	} else if len(pct) > 0 {
		msg.CPU = pct[0]
	}
	if vm, err := mem.VirtualMemory(); err != nil {
		msg.Err = err
	} else {
		msg.RAM = vm.UsedPercent
	}
	return msg
}

// StatsCmd schedules the next sample.
func StatsCmd() tea.Cmd {
	if !config.ShowStats {
		return nil
	}
	return tea.Tick(config.StatsUpdateInterval, func(time.Time) tea.Msg {
		return sampleStats()
	})
}

func (m *OS) applyStats(msg StatsMsg) {
	if msg.Err != nil {
		m.LogWarn("stats: %v", msg.Err)
		return
	}
	m.CPUUsage = msg.CPU
	m.RAMUsage = msg.RAM
	m.CPUHistory = append(m.CPUHistory, msg.CPU)
	if len(m.CPUHistory) > cpuHistoryLen {
		m.CPUHistory = m.CPUHistory[len(m.CPUHistory)-cpuHistoryLen:]
	}
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// sparkline renders percentages as block characters.
func sparkline(values []float64) string {
	var b strings.Builder
	for _, v := range values {
		if config.UseASCIIOnly {
			b.WriteByte(".:-=+*#%"[min(max(int(v/12.5), 0), 7)])
			continue
		}
		b.WriteRune(sparkBlocks[min(max(int(v/12.5), 0), len(sparkBlocks)-1)])
	}
	return b.String()
}
