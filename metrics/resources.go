// Copyright 2025 Meddollina
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package metrics

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/shirou/gopsutil/v3/process"
)

const bytesPerKB = 1024

// bytesPerFloat32 is the storage cost of one embedding vector component.
const bytesPerFloat32 = 4

// ResourceSampler measures resource utilization of the current process and
// tracks the cumulative size of embeddings generated during a session.
type ResourceSampler struct {
	proc           *process.Process
	embeddingBytes atomic.Int64
}

// NewResourceSampler creates a sampler bound to the current process.
func NewResourceSampler() (*ResourceSampler, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("attach to current process: %w", err)
	}
	return &ResourceSampler{proc: proc}, nil
}

// CPUUtilization returns the process CPU utilization as a percentage.
// Sampling errors yield 0.
func (s *ResourceSampler) CPUUtilization() float64 {
	pct, err := s.proc.CPUPercent()
	if err != nil {
		return 0
	}
	return pct
}

// MemoryUsageBytes returns the process resident set size in bytes.
// Sampling errors yield 0.
func (s *ResourceSampler) MemoryUsageBytes() uint64 {
	info, err := s.proc.MemoryInfo()
	if err != nil || info == nil {
		return 0
	}
	return info.RSS
}

// MemoryUsageKB returns the process resident set size in kilobytes.
func (s *ResourceSampler) MemoryUsageKB() float64 {
	return float64(s.MemoryUsageBytes()) / bytesPerKB
}

// RecordEmbedding adds the storage size of one embedding vector to the
// running total. Safe for concurrent use.
func (s *ResourceSampler) RecordEmbedding(vector []float32) {
	s.embeddingBytes.Add(int64(len(vector) * bytesPerFloat32))
}

// TotalEmbeddingKB returns the cumulative size of recorded embeddings in
// kilobytes.
func (s *ResourceSampler) TotalEmbeddingKB() float64 {
	return float64(s.embeddingBytes.Load()) / bytesPerKB
}
