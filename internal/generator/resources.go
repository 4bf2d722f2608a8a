package generator

import (
	"log"
	"os"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/lucas-reyes/ragtime-go/internal/ragconfig"
)

// reportResources logs this process's RSS and CPU share. The driver calls it
// on every checkpoint save, so long batch runs can be correlated against
// memory growth without a separate polling loop. Only logs when Debug is
// enabled, matching the rest of the module's diagnostic output.
func reportResources() {
	if !ragconfig.Debug {
		return
	}
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Printf("[generator] process handle: %v", err)
		return
	}
	mi, err := p.MemoryInfo()
	if err != nil {
		log.Printf("[generator] process memory: %v", err)
		return
	}
	pct, err := p.CPUPercent()
	if err != nil {
		log.Printf("[generator] process cpu: %v", err)
		return
	}
	ragconfig.DebugLog("[resources] cpu=%.1f%% rss=%d MB", pct, mi.RSS/1024/1024)
}
